package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByVerificationToken finds a pending token regardless of its expiry.
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	// ConsumeVerificationToken marks the owner of an unexpired token verified
	// and clears the token in one statement. ErrorNotFound when no row matched.
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	SetHousehold(ctx context.Context, userID, householdID string) error
}
