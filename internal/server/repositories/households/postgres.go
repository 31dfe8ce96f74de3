package households

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/dbx"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, h *models.Household) (*models.Household, bool, error) {

	query :=
		`INSERT INTO households (id, name, owner_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (owner_id) DO NOTHING
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query, h.ID, h.Name, h.OwnerID, h.CreatedAt).Scan(&id)

	switch {
	case err == nil:
		return h, true, nil
	case errors.Is(err, sql.ErrNoRows):
		// lost the race or already owned: hand back the existing row
		existing, err := r.GetByOwner(ctx, h.OwnerID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case dbx.IsForeignKeyViolation(err):
		return nil, false, common.ErrorValidation
	default:
		return nil, false, fmt.Errorf("db error: %w", err)
	}
}

func (r *PostgresRepository) get(ctx context.Context, where string, arg string) (*models.Household, error) {
	query := `SELECT id, name, owner_id, created_at FROM households
		 WHERE ` + where + ` = $1
		 `

	h := &models.Household{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&h.ID, &h.Name, &h.OwnerID, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Household, error) {
	return r.get(ctx, "id", id)
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Household, error) {
	return r.get(ctx, "owner_id", ownerID)
}
