package repomanager

import (
	"context"

	"github.com/dmitrijs2005/duoledger/internal/dbx"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/categories"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/households"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a handle taken from DB(),
// either the plain connection or a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	DB() dbx.Runner
	Users(db dbx.DBTX) users.Repository
	Households(db dbx.DBTX) households.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Categories(db dbx.DBTX) categories.Repository
	Ping(ctx context.Context) error
	Close() error
}
