package memory

import (
	"context"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type householdRepo struct {
	h handle
}

func (r *householdRepo) CreateIfAbsent(_ context.Context, h *models.Household) (*models.Household, bool, error) {
	defer r.h.lock()()
	st := r.h.m.st

	if _, ok := st.users[h.OwnerID]; !ok {
		return nil, false, common.ErrorValidation
	}
	for _, existing := range st.households {
		if existing.OwnerID == h.OwnerID {
			return &existing, false, nil
		}
	}
	if _, ok := st.households[h.ID]; ok {
		return nil, false, common.ErrorAlreadyExists
	}

	st.households[h.ID] = *h
	return h, true, nil
}

func (r *householdRepo) GetByID(_ context.Context, id string) (*models.Household, error) {
	defer r.h.lock()()

	if h, ok := r.h.m.st.households[id]; ok {
		return &h, nil
	}
	return nil, common.ErrorNotFound
}

func (r *householdRepo) GetByOwner(_ context.Context, ownerID string) (*models.Household, error) {
	defer r.h.lock()()

	for _, h := range r.h.m.st.households {
		if h.OwnerID == ownerID {
			return &h, nil
		}
	}
	return nil, common.ErrorNotFound
}
