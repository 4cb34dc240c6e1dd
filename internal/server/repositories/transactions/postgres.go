package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/dbx"
	"github.com/dmitrijs2005/txledger/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s rowScanner) (*models.Transaction, error) {
	tx := &models.Transaction{}
	var status string
	if err := s.Scan(&tx.ID, &tx.Date, &tx.FromAccount, &tx.ToAccount, &tx.Amount, &status, &tx.OwnerID); err != nil {
		return nil, err
	}
	tx.Date = tx.Date.UTC()
	tx.Status = models.Status(status)
	return tx, nil
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (from_account, to_account, amount, status, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date
	`
	err := r.db.QueryRowContext(ctx, query,
		tx.FromAccount, tx.ToAccount, tx.Amount, string(tx.Status), tx.OwnerID).Scan(&tx.ID, &tx.Date)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	tx.Date = tx.Date.UTC()
	return tx, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id int64) (*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions
		WHERE id = $1 AND owner_id = $2
	`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tx, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, ownerID, id int64, status models.Status) (*models.Transaction, error) {
	query := `
		UPDATE transactions SET status = $1
		WHERE id = $2 AND owner_id = $3
		RETURNING ` + selectColumns

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, string(status), id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tx, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID int64, q models.ListQuery) ([]*models.Transaction, error) {
	query, args, err := buildListQuery(ownerID, q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
