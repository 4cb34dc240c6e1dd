// Package memory is an in-memory repomanager.RepositoryManager. It follows
// the PostgreSQL repositories' contracts (owner scoping, sorting, filtering,
// pagination, sentinel errors) and backs the tests of the layers above them.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/txledger/internal/dbx"
	"github.com/dmitrijs2005/txledger/internal/server/models"
	"github.com/dmitrijs2005/txledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/txledger/internal/server/repositories/users"
)

// Manager keeps all rows in maps guarded by one mutex. The DBTX passed to
// Users and Transactions is ignored, so writes made inside dbx.WithTx are not
// rolled back.
type Manager struct {
	mu sync.Mutex

	// Now stamps new transactions. Tests replace it to control dates.
	Now func() time.Time

	users        map[int64]*models.User
	transactions map[int64]*models.Transaction
	lastUserID   int64
	lastTxID     int64
}

func NewManager() *Manager {
	return &Manager{
		Now:          time.Now,
		users:        make(map[int64]*models.User),
		transactions: make(map[int64]*models.Transaction),
	}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository { return &userRepo{m: m} }

func (m *Manager) Transactions(dbx.DBTX) transactions.Repository { return &txRepo{m: m} }
