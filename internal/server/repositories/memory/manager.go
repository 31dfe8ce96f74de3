// Package memory is an in-process RepositoryManager. It keeps the same
// contracts as the PostgreSQL repositories (unique keys, foreign keys,
// atomic transactions) so it can stand in for the database in development
// and in end-to-end tests.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/duoledger/internal/dbx"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/categories"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/households"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/users"
)

var errRawSQL = errors.New("memory store does not execute SQL")

type store struct {
	users        map[string]models.User
	households   map[string]models.Household
	accounts     map[string]models.Account
	transactions []models.Transaction
	categories   map[string]models.Category
}

func newStore() *store {
	s := &store{
		users:      make(map[string]models.User),
		households: make(map[string]models.Household),
		accounts:   make(map[string]models.Account),
		categories: make(map[string]models.Category),
	}
	for _, c := range defaultCategories {
		s.categories[c.ID] = c
	}
	return s
}

// clone copies every table. Rows are values, so a copy of the maps is a
// full snapshot.
func (s *store) clone() *store {
	c := &store{
		users:        make(map[string]models.User, len(s.users)),
		households:   make(map[string]models.Household, len(s.households)),
		accounts:     make(map[string]models.Account, len(s.accounts)),
		transactions: append([]models.Transaction(nil), s.transactions...),
		categories:   make(map[string]models.Category, len(s.categories)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.households {
		c.households[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	return c
}

// Manager implements repomanager.RepositoryManager in memory.
type Manager struct {
	mu sync.Mutex
	st *store
}

func NewManager() *Manager {
	return &Manager{st: newStore()}
}

var _ repomanager.RepositoryManager = (*Manager)(nil)

// handle is the DBTX given to repositories. A tx handle is only handed out
// while InTx holds the lock, so repositories skip locking for it.
type handle struct {
	m  *Manager
	tx bool
}

func (h handle) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errRawSQL
}

func (h handle) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errRawSQL
}

// QueryRowContext cannot build a *sql.Row carrying an error; callers must
// not issue raw SQL against this store.
func (h handle) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func (h handle) lock() func() {
	if h.tx {
		return func() {}
	}
	h.m.mu.Lock()
	return h.m.mu.Unlock
}

func (m *Manager) handleFor(db dbx.DBTX) handle {
	if h, ok := db.(handle); ok && h.m == m {
		return h
	}
	return handle{m: m}
}

// Conn returns a handle whose every call is its own atomic unit.
func (m *Manager) Conn() dbx.DBTX {
	return handle{m: m}
}

// InTx runs fn with exclusive access to the store. On error, panic or a
// cancelled context the store is restored to its state before fn ran.
func (m *Manager) InTx(ctx context.Context, fn dbx.TxFunc) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	defer func() {
		if p := recover(); p != nil {
			m.st = snapshot
			panic(p)
		}
		if err != nil {
			m.st = snapshot
		}
	}()

	if err = fn(ctx, handle{m: m, tx: true}); err != nil {
		return err
	}
	return ctx.Err()
}

func (m *Manager) DB() dbx.Runner { return m }

func (m *Manager) RunMigrations(context.Context) error { return nil }

func (m *Manager) Ping(context.Context) error { return nil }

func (m *Manager) Close() error { return nil }

func (m *Manager) Users(db dbx.DBTX) users.Repository {
	return &userRepo{h: m.handleFor(db)}
}

func (m *Manager) Households(db dbx.DBTX) households.Repository {
	return &householdRepo{h: m.handleFor(db)}
}

func (m *Manager) Accounts(db dbx.DBTX) accounts.Repository {
	return &accountRepo{h: m.handleFor(db)}
}

func (m *Manager) Transactions(db dbx.DBTX) transactions.Repository {
	return &transactionRepo{h: m.handleFor(db)}
}

func (m *Manager) Categories(db dbx.DBTX) categories.Repository {
	return &categoryRepo{h: m.handleFor(db)}
}
