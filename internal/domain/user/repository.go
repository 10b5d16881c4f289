package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetPasswordResetToken(ctx context.Context, userID, token string, sentAt time.Time) error
	GetByPasswordResetToken(ctx context.Context, token string) (User, error)
	ClearPasswordResetToken(ctx context.Context, userID string) error
}
