package categories

import (
	"context"

	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type Repository interface {
	// List returns categories of typ (all when empty), defaults first then by name.
	List(ctx context.Context, typ models.TransactionType) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
}
