// Package services contains server-side business logic: credentials and
// sessions, email verification, households, and the account ledger.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/dbx"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// newID is a seam for tests.
var newID = uuid.NewString

// internal marks err as an unexpected failure while keeping its text for logs.
func internal(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}

// passOr returns err unchanged when it is one of the known sentinels and
// an internal error otherwise.
func passOr(err error, known ...error) error {
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return internal(err)
}

func householdName(userName string) string {
	return strings.TrimSpace(userName) + "'s household"
}

// ensureHousehold returns the user's household, creating and linking one
// named after the user when there is none. It must run inside a transaction.
func ensureHousehold(ctx context.Context, rm repomanager.RepositoryManager, tx dbx.DBTX, u *models.User, at time.Time) (*models.Household, error) {
	if u.HouseholdID != nil {
		h, err := rm.Households(tx).GetByID(ctx, *u.HouseholdID)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
	}

	h, _, err := rm.Households(tx).CreateIfAbsent(ctx, &models.Household{
		ID:        newID(),
		Name:      householdName(u.Name),
		OwnerID:   u.ID,
		CreatedAt: at,
	})
	if err != nil {
		return nil, err
	}
	if err := rm.Users(tx).SetHousehold(ctx, u.ID, h.ID); err != nil {
		return nil, err
	}
	u.HouseholdID = &h.ID
	return h, nil
}
