package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/server/models"
	"github.com/dmitrijs2005/txledger/internal/server/repositories/repomanager"
)

// TransactionService is the owner-scoped ledger. Every method takes the id of
// the authenticated caller and never reaches rows of another owner.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m}
}

// Create records a transfer for ownerID. An empty status defaults to red.
func (s *TransactionService) Create(ctx context.Context, ownerID int64, from, to string, amount float64, status string) (*models.Transaction, error) {

	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		Status:      st,
		OwnerID:     ownerID,
	}

	created, err := s.repomanager.Transactions(s.db).Create(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, ownerID, id int64) (*models.Transaction, error) {
	return s.repomanager.Transactions(s.db).Get(ctx, ownerID, id)
}

// UpdateStatus changes only the status of the caller's transaction id.
func (s *TransactionService) UpdateStatus(ctx context.Context, ownerID, id int64, status string) (*models.Transaction, error) {

	if status == "" {
		return nil, fmt.Errorf("%w: status is required", common.ErrValidation)
	}

	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Transactions(s.db).UpdateStatus(ctx, ownerID, id, st)
}

// List returns one page of the caller's transactions. The query is normalized
// first; an invalid query yields common.ErrValidation.
func (s *TransactionService) List(ctx context.Context, ownerID int64, q models.ListQuery) ([]*models.Transaction, error) {

	if err := q.Normalize(); err != nil {
		return nil, err
	}

	items, err := s.repomanager.Transactions(s.db).List(ctx, ownerID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	return items, nil
}
