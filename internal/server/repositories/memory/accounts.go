package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/shopspring/decimal"
)

type accountRepo struct {
	h handle
}

func (r *accountRepo) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	defer r.h.lock()()
	st := r.h.m.st

	if _, ok := st.users[a.UserID]; !ok {
		return nil, common.ErrorValidation
	}
	if _, ok := st.households[a.HouseholdID]; !ok {
		return nil, common.ErrorValidation
	}
	if _, ok := st.accounts[a.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	st.accounts[a.ID] = *a
	return a, nil
}

func (r *accountRepo) GetForUser(_ context.Context, id, userID string) (*models.Account, error) {
	defer r.h.lock()()

	a, ok := r.h.m.st.accounts[id]
	if !ok || a.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *accountRepo) ListByUser(_ context.Context, userID string) ([]models.Account, error) {
	defer r.h.lock()()

	result := make([]models.Account, 0)
	for _, a := range r.h.m.st.accounts {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *accountRepo) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	defer r.h.lock()()
	st := r.h.m.st

	a, ok := st.accounts[id]
	if !ok {
		return decimal.Zero, common.ErrorNotFound
	}
	a.Balance = a.Balance.Add(delta)
	a.UpdatedAt = time.Now().UTC()
	st.accounts[id] = a
	return a.Balance, nil
}
