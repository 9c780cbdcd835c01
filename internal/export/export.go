// Package export serializes the conversation for download.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"yukti-ai/internal/conversation"
)

// MimeType is the content type of an exported conversation.
const MimeType = "application/json"

// JSON returns the messages as an indented JSON array. An empty history yields "[]".
func JSON(messages []conversation.Message) ([]byte, error) {
	if messages == nil {
		messages = []conversation.Message{}
	}
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode conversation: %w", err)
	}
	return data, nil
}

// Filename returns the download name for an export made at t, e.g. yukti_chat_2024-05-01.json.
func Filename(t time.Time) string {
	return "yukti_chat_" + t.Format(time.DateOnly) + ".json"
}
