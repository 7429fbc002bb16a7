package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is one support-chat message. Conversations are identified by an
// opaque string key; the subject side uses its subject identifier, the staff
// side replies into the same conversation.
type Message struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Conversation string    `db:"conversation" json:"conversation"`
	SenderID     string    `db:"sender_id" json:"sender_id"`
	SenderRole   string    `db:"sender_role" json:"sender_role"`
	Body         string    `db:"body" json:"body"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
