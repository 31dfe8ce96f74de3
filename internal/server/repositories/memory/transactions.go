package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type transactionRepo struct {
	h handle
}

func (r *transactionRepo) Create(_ context.Context, t *models.Transaction) (*models.Transaction, error) {
	defer r.h.lock()()
	st := r.h.m.st

	if _, ok := st.users[t.UserID]; !ok {
		return nil, common.ErrorValidation
	}
	if _, ok := st.accounts[t.AccountID]; !ok {
		return nil, common.ErrorValidation
	}
	if _, ok := st.categories[t.CategoryID]; !ok {
		return nil, common.ErrorValidation
	}

	st.transactions = append(st.transactions, *t)
	return t, nil
}

func matches(t models.Transaction, f models.TransactionFilter) bool {
	if t.UserID != f.UserID {
		return false
	}
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	return true
}

func (r *transactionRepo) List(_ context.Context, f models.TransactionFilter, limit, offset int) ([]models.Transaction, error) {
	defer r.h.lock()()

	all := make([]models.Transaction, 0)
	for _, t := range r.h.m.st.transactions {
		if matches(t, f) {
			all = append(all, t)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset < 0 || limit < 0 {
		return nil, common.ErrorValidation
	}
	if offset >= len(all) {
		return []models.Transaction{}, nil
	}
	end := len(all)
	if limit < end-offset {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *transactionRepo) Count(_ context.Context, f models.TransactionFilter) (int, error) {
	defer r.h.lock()()

	n := 0
	for _, t := range r.h.m.st.transactions {
		if matches(t, f) {
			n++
		}
	}
	return n, nil
}
