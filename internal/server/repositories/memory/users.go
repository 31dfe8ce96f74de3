package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

type userRepo struct {
	h handle
}

func (r *userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	defer r.h.lock()()
	st := r.h.m.st

	if _, ok := st.users[u.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, existing := range st.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
		if u.VerificationToken != nil && existing.VerificationToken != nil &&
			*existing.VerificationToken == *u.VerificationToken {
			return nil, common.ErrorAlreadyExists
		}
	}

	st.users[u.ID] = *u
	return u, nil
}

func (r *userRepo) find(match func(models.User) bool) (*models.User, error) {
	defer r.h.lock()()

	for _, u := range r.h.m.st.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *userRepo) GetByVerificationToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u models.User) bool {
		return u.VerificationToken != nil && *u.VerificationToken == token
	})
}

func (r *userRepo) ConsumeVerificationToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	defer r.h.lock()()
	st := r.h.m.st

	for id, u := range st.users {
		if u.VerificationToken == nil || *u.VerificationToken != token {
			continue
		}
		if u.VerificationExpires == nil || !u.VerificationExpires.After(now) {
			return nil, common.ErrorNotFound
		}
		u.EmailVerified = true
		u.VerificationToken = nil
		u.VerificationExpires = nil
		st.users[id] = u
		return &u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) SetHousehold(_ context.Context, userID, householdID string) error {
	defer r.h.lock()()
	st := r.h.m.st

	if _, ok := st.households[householdID]; !ok {
		return common.ErrorValidation
	}
	u, ok := st.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.HouseholdID = &householdID
	st.users[userID] = u
	return nil
}
