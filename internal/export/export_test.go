package export

import (
	"encoding/json"
	"testing"
	"time"

	"yukti-ai/internal/conversation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEmpty(t *testing.T) {
	for _, messages := range [][]conversation.Message{nil, {}} {
		data, err := JSON(messages)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}
}

func TestJSONShape(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	messages := []conversation.Message{
		{Role: conversation.RoleUser, Content: "Hi", Timestamp: ts},
		{Role: conversation.RoleAssistant, Content: "Hello.", Timestamp: ts.Add(time.Second)},
	}

	data, err := JSON(messages)
	require.NoError(t, err)

	want := `[
  {
    "role": "user",
    "content": "Hi",
    "timestamp": "2024-05-01T09:30:00Z"
  },
  {
    "role": "assistant",
    "content": "Hello.",
    "timestamp": "2024-05-01T09:30:01Z"
  }
]`
	assert.Equal(t, want, string(data))

	var decoded []conversation.Message
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, messages, decoded)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "single digit month and day", at: time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC), want: "yukti_chat_2024-05-01.json"},
		{name: "end of year", at: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), want: "yukti_chat_2023-12-31.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.at))
		})
	}
}
