package repositories

import (
	"context"

	"clinicrecord-backend/internal/models"
)

// UserRepositoryContract defines persistence operations for user accounts.
// Finders return (nil, nil) when no row matches; callers decide whether that
// is a 404 or a validation error.
type UserRepositoryContract interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFCMToken(ctx context.Context, id uint64, token string) error
	Delete(ctx context.Context, id uint64) error
}
