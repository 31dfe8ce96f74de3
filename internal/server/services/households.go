package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/dbx"
	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/repomanager"
)

// HouseholdService creates households explicitly, e.g. during onboarding.
type HouseholdService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewHouseholdService(m repomanager.RepositoryManager, l logging.Logger) *HouseholdService {
	return &HouseholdService{repomanager: m, logger: l.With("module", "households"), now: time.Now}
}

// Create makes userID the owner of a new household named name and links
// them to it. A user who already has a household gets ErrorHouseholdExists;
// of two concurrent calls only one can win the owner key.
func (s *HouseholdService) Create(ctx context.Context, userID, name string) (*models.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}

	var result *models.Household
	err := s.repomanager.DB().InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return passOr(err, common.ErrorNotFound)
		}
		if user.HouseholdID != nil {
			return common.ErrorHouseholdExists
		}

		h, created, err := s.repomanager.Households(tx).CreateIfAbsent(ctx, &models.Household{
			ID:        newID(),
			Name:      name,
			OwnerID:   userID,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return passOr(err, common.ErrorValidation)
		}
		if !created {
			return common.ErrorHouseholdExists
		}

		if err := s.repomanager.Users(tx).SetHousehold(ctx, userID, h.ID); err != nil {
			return passOr(err, common.ErrorNotFound)
		}

		result = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "household created", "household_id", result.ID, "owner_id", userID)
	return result, nil
}
