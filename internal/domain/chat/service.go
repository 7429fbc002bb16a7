package chat

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/carelink/carelink/internal/domain/apperr"
	"github.com/carelink/carelink/internal/platform/websocket"
)

const maxMessageLength = 2000

type Service struct {
	messages Repository
	events   websocket.EventPublisher
}

func NewService(messages Repository) *Service {
	return &Service{messages: messages}
}

// SetEventPublisher attaches an optional live-update publisher.
func (s *Service) SetEventPublisher(pub websocket.EventPublisher) {
	s.events = pub
}

// Send validates and persists one message, then broadcasts it so open chat
// windows update without polling.
func (s *Service) Send(ctx context.Context, m *Message) error {
	if m.Conversation == "" {
		return apperr.NewValidationError("conversation", "conversation is required")
	}
	if strings.TrimSpace(m.Body) == "" {
		return apperr.NewValidationError("body", "message body is required")
	}
	if len(m.Body) > maxMessageLength {
		return apperr.NewValidationError("body", "message body is too long")
	}
	if m.SenderRole == "" {
		m.SenderRole = "subject"
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return err
	}
	if s.events != nil {
		data, _ := json.Marshal(m)
		_ = s.events.Publish(ctx, websocket.Event{
			Type:         "chat.message",
			Topic:        websocket.TopicChat,
			ResourceType: "chat_message",
			ResourceID:   m.ID.String(),
			Timestamp:    time.Now().UTC(),
			Data:         data,
		})
	}
	return nil
}

func (s *Service) History(ctx context.Context, conversation string, limit, offset int) ([]*Message, int, error) {
	if conversation == "" {
		return nil, 0, apperr.NewValidationError("conversation", "conversation is required")
	}
	return s.messages.ListByConversation(ctx, conversation, limit, offset)
}
