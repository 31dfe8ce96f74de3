package households

import (
	"context"

	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type Repository interface {
	// CreateIfAbsent inserts h unless its owner already owns a household.
	// The returned bool is false when the owner's existing row is returned.
	CreateIfAbsent(ctx context.Context, h *models.Household) (*models.Household, bool, error)
	GetByID(ctx context.Context, id string) (*models.Household, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Household, error)
}
