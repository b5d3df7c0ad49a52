package repositories

import (
	"context"

	"clinicrecord-backend/internal/models"
)

// MessageRepositoryContract defines persistence for doctor<->patient messages.
type MessageRepositoryContract interface {
	Create(ctx context.Context, message *models.Message) error
	// ListByRecipient returns the recipient's inbox newest first, optionally
	// restricted to one sender.
	ListByRecipient(ctx context.Context, recipientID uint64, senderID *uint64) ([]models.Message, error)
	// MarkRead flags a message read; reports whether a matching row existed.
	MarkRead(ctx context.Context, id, recipientID uint64) (bool, error)
}
