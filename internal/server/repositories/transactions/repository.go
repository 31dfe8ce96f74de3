package transactions

import (
	"context"

	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	// List returns one page of matching transactions, date descending.
	List(ctx context.Context, f models.TransactionFilter, limit, offset int) ([]models.Transaction, error)
	// Count returns the number of transactions matching f.
	Count(ctx context.Context, f models.TransactionFilter) (int, error)
}
