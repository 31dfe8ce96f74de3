package accounts

import (
	"context"

	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, a *models.Account) (*models.Account, error)
	// GetForUser returns the account only when userID owns it.
	GetForUser(ctx context.Context, id, userID string) (*models.Account, error)
	// ListByUser returns the user's accounts, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Account, error)
	// AdjustBalance adds delta to the stored balance in place and returns
	// the new balance.
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
}
