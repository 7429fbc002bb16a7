package chat

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) error
	ListByConversation(ctx context.Context, conversation string, limit, offset int) ([]*Message, int, error)
}
