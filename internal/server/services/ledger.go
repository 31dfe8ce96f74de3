package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/dbx"
	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// Pagination defaults for transaction listings.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// AccountInput describes a new account.
type AccountInput struct {
	Name    string
	Type    models.AccountType
	Balance decimal.Decimal
}

// AccountList is the user's accounts plus their summed balance.
type AccountList struct {
	Accounts     []models.Account
	TotalBalance decimal.Decimal
}

// TransactionInput describes a movement to record. Date defaults to now.
type TransactionInput struct {
	AccountID   string
	CategoryID  string
	Amount      decimal.Decimal
	Type        models.TransactionType
	Description *string
	Date        *time.Time
}

// TransactionQuery selects one page of a user's transactions. Zero Page and
// Limit mean the defaults.
type TransactionQuery struct {
	AccountID string
	Type      models.TransactionType
	Page      int
	Limit     int
}

// TransactionPage is one page of a listing. Total counts every matching
// transaction, not only this page.
type TransactionPage struct {
	Items []models.Transaction
	Page  int
	Limit int
	Total int
	Pages int
}

// LedgerService keeps account balances equal to their opening balance plus
// the signed sum of their transactions.
type LedgerService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewLedgerService(m repomanager.RepositoryManager, l logging.Logger) *LedgerService {
	return &LedgerService{repomanager: m, logger: l.With("module", "ledger"), now: time.Now}
}

// hasCents reports whether d fits the two-decimal money column exactly.
func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// CreateAccount opens an account for userID, creating the user's household
// first when they have none.
func (s *LedgerService) CreateAccount(ctx context.Context, userID string, in AccountInput) (*models.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.Type.Valid() || !hasCents(in.Balance) {
		return nil, common.ErrorValidation
	}

	var result *models.Account
	err := s.repomanager.DB().InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return passOr(err, common.ErrorNotFound)
		}

		now := s.now().UTC()
		h, err := ensureHousehold(ctx, s.repomanager, tx, user, now)
		if err != nil {
			return passOr(err, common.ErrorNotFound, common.ErrorValidation)
		}

		a, err := s.repomanager.Accounts(tx).Create(ctx, &models.Account{
			ID:          newID(),
			UserID:      userID,
			HouseholdID: h.ID,
			Name:        name,
			Type:        in.Type,
			Balance:     in.Balance,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return passOr(err, common.ErrorValidation)
		}

		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account created", "account_id", result.ID, "user_id", userID, "type", result.Type)
	return result, nil
}

// ListAccounts returns the user's accounts newest first with their total.
func (s *LedgerService) ListAccounts(ctx context.Context, userID string) (*AccountList, error) {
	list, err := s.repomanager.Accounts(s.repomanager.DB().Conn()).ListByUser(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}

	total := decimal.Zero
	for _, a := range list {
		total = total.Add(a.Balance)
	}

	return &AccountList{Accounts: list, TotalBalance: total}, nil
}

// CreateTransaction records a movement and applies it to the account
// balance as one atomic unit. The account must belong to userID; a foreign
// account is reported exactly like a missing one.
func (s *LedgerService) CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	if in.AccountID == "" || in.CategoryID == "" || !in.Type.Valid() ||
		!in.Amount.IsPositive() || !hasCents(in.Amount) {
		return nil, common.ErrorValidation
	}

	conn := s.repomanager.DB().Conn()
	if _, err := s.repomanager.Categories(conn).GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorValidation
		}
		return nil, internal(err)
	}

	now := s.now().UTC()
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}

	var result *models.Transaction
	err := s.repomanager.DB().InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.repomanager.Accounts(tx).GetForUser(ctx, in.AccountID, userID)
		if err != nil {
			return passOr(err, common.ErrorNotFound)
		}

		t, err := s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			ID:          newID(),
			UserID:      userID,
			AccountID:   account.ID,
			CategoryID:  in.CategoryID,
			Amount:      in.Amount,
			Type:        in.Type,
			Description: in.Description,
			Date:        date,
			CreatedAt:   now,
		})
		if err != nil {
			return passOr(err, common.ErrorValidation)
		}

		if _, err := s.repomanager.Accounts(tx).AdjustBalance(ctx, account.ID, in.Type.Delta(in.Amount)); err != nil {
			return passOr(err, common.ErrorNotFound)
		}

		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "transaction recorded",
		"transaction_id", result.ID, "account_id", result.AccountID, "type", result.Type, "amount", result.Amount.String())
	return result, nil
}

// ListTransactions returns one page of the user's transactions, newest
// date first.
func (s *LedgerService) ListTransactions(ctx context.Context, userID string, q TransactionQuery) (*TransactionPage, error) {
	if q.Page < 0 || q.Limit < 0 || (q.Type != "" && !q.Type.Valid()) {
		return nil, common.ErrorValidation
	}
	page, limit := q.Page, q.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	filter := models.TransactionFilter{UserID: userID, AccountID: q.AccountID, Type: q.Type}
	repo := s.repomanager.Transactions(s.repomanager.DB().Conn())

	// A page whose offset would not fit in an int lies past any real data.
	items := []models.Transaction{}
	if page-1 <= (math.MaxInt-limit)/limit {
		var err error
		items, err = repo.List(ctx, filter, limit, (page-1)*limit)
		if err != nil {
			return nil, internal(err)
		}
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, internal(err)
	}

	return &TransactionPage{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// ListCategories returns categories of typ, or all of them when typ is empty.
func (s *LedgerService) ListCategories(ctx context.Context, typ models.TransactionType) ([]models.Category, error) {
	if typ != "" && typ != models.TransactionIncome && typ != models.TransactionExpense {
		return nil, common.ErrorValidation
	}

	list, err := s.repomanager.Categories(s.repomanager.DB().Conn()).List(ctx, typ)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}
