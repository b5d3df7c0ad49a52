package repositories

import (
	"context"

	"clinicrecord-backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

var _ MessageRepositoryContract = (*MessageRepository)(nil)

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepository) ListByRecipient(ctx context.Context, recipientID uint64, senderID *uint64) ([]models.Message, error) {
	query := r.db.WithContext(ctx).
		Preload("SenderUser").
		Where("recipient_id = ?", recipientID)
	if senderID != nil {
		query = query.Where("sender_id = ?", *senderID)
	}

	var messages []models.Message
	err := query.Order("timestamp desc").Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) MarkRead(ctx context.Context, id, recipientID uint64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	return result.RowsAffected > 0, result.Error
}
