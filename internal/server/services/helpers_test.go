package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/dbx"
	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/dmitrijs2005/duoledger/internal/server/notify"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/memory"
	usersrepo "github.com/dmitrijs2005/duoledger/internal/server/repositories/users"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	errBoom = errors.New("boom")
	t0      = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
)

// Seeded by the migrations.
const (
	categoryGroceries = "7b1d7c4e-0a51-4c8e-9f0e-1a0000000011"
	categorySalary    = "7b1d7c4e-0a51-4c8e-9f0e-1a0000000001"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, m notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return f.err
}

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

// seedVerifiedUser writes a verified user straight into the store so ledger
// tests do not pay for bcrypt.
func seedVerifiedUser(t *testing.T, m *memory.Manager, id, name string) *models.User {
	t.Helper()
	u, err := m.Users(m.Conn()).Create(context.Background(), &models.User{
		ID: id, Email: id + "@x.io", Name: name, EmailVerified: true, CreatedAt: t0,
	})
	require.NoError(t, err)
	return u
}

func newLedger(m *memory.Manager) *LedgerService {
	s := NewLedgerService(m, logging.Nop{})
	s.now = fixedNow(t0)
	return s
}

func mustAccount(t *testing.T, s *LedgerService, userID string, balance string) *models.Account {
	t.Helper()
	a, err := s.CreateAccount(context.Background(), userID, AccountInput{
		Name: "Main", Type: models.AccountChecking, Balance: decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	return a
}

// brokenUsers wraps the memory manager and fails every user lookup.
type brokenUsers struct {
	*memory.Manager
}

func (b brokenUsers) Users(dbx.DBTX) usersrepo.Repository { return failingUsersRepo{} }

type failingUsersRepo struct{ usersrepo.Repository }

func (failingUsersRepo) GetByEmail(context.Context, string) (*models.User, error) { return nil, errBoom }
func (failingUsersRepo) GetByID(context.Context, string) (*models.User, error)    { return nil, errBoom }

// failingBalance wraps the memory manager so balance updates fail after the
// transaction row has been written.
type failingBalance struct {
	*memory.Manager
}

func (f failingBalance) Accounts(db dbx.DBTX) accounts.Repository {
	return failingAdjust{f.Manager.Accounts(db)}
}

type failingAdjust struct{ accounts.Repository }

func (failingAdjust) AdjustBalance(context.Context, string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, errBoom
}
