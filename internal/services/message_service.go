package services

import (
	"context"
	"fmt"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/internal/repositories"
)

// MessageService handles doctor<->patient messaging. Same-role messaging is
// rejected in both directions.
type MessageService struct {
	users    repositories.UserRepositoryContract
	messages repositories.MessageRepositoryContract
}

func NewMessageService(users repositories.UserRepositoryContract, messages repositories.MessageRepositoryContract) *MessageService {
	return &MessageService{users: users, messages: messages}
}

// Send stores a new message addressed by email.
func (s *MessageService) Send(ctx context.Context, caller models.Caller, input models.SendMessageInput) (*models.Message, error) {
	if input.RecipientEmail == "" || input.Content == "" {
		return nil, fmt.Errorf("%w: recipient_email and content are required", ErrValidation)
	}

	recipient, err := s.users.FindByEmail(ctx, input.RecipientEmail)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, fmt.Errorf("%w: no recipient with this email", ErrNotFound)
	}

	if caller.IsPatient && recipient.IsPatient {
		return nil, fmt.Errorf("%w: patients cannot message other patients", ErrNotAuthorized)
	}
	if caller.IsDoctor && recipient.IsDoctor {
		return nil, fmt.Errorf("%w: doctors cannot message other doctors", ErrNotAuthorized)
	}

	message := &models.Message{
		SenderID:    caller.ID,
		RecipientID: recipient.ID,
		Content:     input.Content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Inbox lists messages received by the caller, newest first. A non-empty
// senderEmail narrows the listing to that sender.
func (s *MessageService) Inbox(ctx context.Context, caller models.Caller, senderEmail string) ([]models.Message, error) {
	var senderID *uint64
	if senderEmail != "" {
		sender, err := s.users.FindByEmail(ctx, senderEmail)
		if err != nil {
			return nil, err
		}
		if sender == nil {
			return nil, fmt.Errorf("%w: no sender with this email", ErrNotFound)
		}
		senderID = &sender.ID
	}
	return s.messages.ListByRecipient(ctx, caller.ID, senderID)
}

// MarkRead flags one of the caller's received messages as read.
func (s *MessageService) MarkRead(ctx context.Context, caller models.Caller, messageID uint64) error {
	ok, err := s.messages.MarkRead(ctx, messageID, caller.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
	}
	return nil
}
