package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/txledger/internal/dbx"
	"github.com/dmitrijs2005/txledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/txledger/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a caller supplied handle, so
// the same code path works on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
