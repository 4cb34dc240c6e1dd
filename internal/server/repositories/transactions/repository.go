// Package transactions declares and implements owner-scoped persistence of
// ledger transactions, including the filtered and sorted listing.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/txledger/internal/server/models"
)

// Repository stores transactions. Every method takes the owner's id and only
// ever touches that owner's rows; a row owned by someone else is reported as
// common.ErrorNotFound, exactly like a missing one.
type Repository interface {
	// Create inserts tx and fills in its ID and server-assigned Date.
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	Get(ctx context.Context, ownerID, id int64) (*models.Transaction, error)

	// UpdateStatus replaces only the status column and returns the updated row.
	UpdateStatus(ctx context.Context, ownerID, id int64, status models.Status) (*models.Transaction, error)

	// List expects a normalized query (see models.ListQuery.Normalize).
	List(ctx context.Context, ownerID int64, q models.ListQuery) ([]*models.Transaction, error)
}
