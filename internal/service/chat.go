package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService yukti-ai/internal/service ChatService

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/conversation"
)

// UnavailableText is shown to the user when the completion endpoint fails.
const UnavailableText = "Sorry, I encountered an error. Please make sure Ollama is running and try again."

// Responder produces the assistant reply for one user utterance.
type Responder interface {
	Respond(ctx context.Context, userText string) (Reply, error)
}

// MessageLog is the part of the conversation store the chat service writes to.
type MessageLog interface {
	Append(role conversation.Role, content string) conversation.Message
	Messages() []conversation.Message
	Clear()
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	Message string
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Reply     string
	Timestamp time.Time
	// Command names the built-in command that answered, if any.
	Command string
	Cleared bool
	// Failed is set when the completion endpoint was unavailable and Reply is the apology.
	Failed bool
}

// ChatService provides chat functionality.
type ChatService interface {
	// ProcessChat answers a message and records the exchange in the conversation.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	// History returns the conversation so far.
	History() []conversation.Message
	// Clear empties the conversation.
	Clear()
}

// chatService implements ChatService.
type chatService struct {
	responder Responder
	log       MessageLog
	inFlight  atomic.Bool
}

// NewChatService creates a new ChatService.
func NewChatService(responder Responder, log MessageLog) ChatService {
	return &chatService{
		responder: responder,
		log:       log,
	}
}

// ProcessChat processes a chat request.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		logger.WarnContext(ctx, "empty message in chat request")
		return ChatResponse{}, &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	// The guard spans the append so the next prompt already sees this exchange.
	if !s.inFlight.CompareAndSwap(false, true) {
		logger.WarnContext(ctx, "chat request rejected, response in flight")
		return ChatResponse{}, ErrBusy
	}
	defer s.inFlight.Store(false)

	reply, err := s.responder.Respond(ctx, message)
	if err != nil {
		if errors.Is(err, ErrCompletionUnavailable) {
			logger.ErrorContext(ctx, "completion unavailable, replying with apology", "error", err)
			s.log.Append(conversation.RoleUser, message)
			msg := s.log.Append(conversation.RoleAssistant, UnavailableText)
			return ChatResponse{Reply: msg.Content, Timestamp: msg.Timestamp, Failed: true}, nil
		}
		logger.ErrorContext(ctx, "failed to respond", "error", err)
		return ChatResponse{}, WrapError(err, "failed to respond")
	}

	// A clear wipes the user's own line too; only the confirmation remains.
	if reply.Effect != EffectCleared {
		s.log.Append(conversation.RoleUser, message)
	}
	msg := s.log.Append(conversation.RoleAssistant, reply.Text)

	logger.InfoContext(ctx, "chat request processed successfully",
		"message_length", len(message),
		"reply_length", len(reply.Text),
		"command", reply.Command,
	)
	return ChatResponse{
		Reply:     msg.Content,
		Timestamp: msg.Timestamp,
		Command:   reply.Command,
		Cleared:   reply.Effect == EffectCleared,
	}, nil
}

// History returns a copy of the conversation.
func (s *chatService) History() []conversation.Message {
	return s.log.Messages()
}

// Clear empties the conversation.
func (s *chatService) Clear() {
	s.log.Clear()
}
