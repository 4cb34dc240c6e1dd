package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/server/models"
)

type txRepo struct {
	m *Manager
}

func (r *txRepo) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.lastTxID++
	tx.ID = r.m.lastTxID
	tx.Date = r.m.Now().UTC()

	stored := *tx
	r.m.transactions[tx.ID] = &stored
	return tx, nil
}

func (r *txRepo) Get(ctx context.Context, ownerID, id int64) (*models.Transaction, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	tx, ok := r.m.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	out := *tx
	return &out, nil
}

func (r *txRepo) UpdateStatus(ctx context.Context, ownerID, id int64, status models.Status) (*models.Transaction, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	tx, ok := r.m.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	tx.Status = status
	out := *tx
	return &out, nil
}

func compareBy(key models.SortKey) func(a, b *models.Transaction) int {
	var primary func(a, b *models.Transaction) int
	switch key {
	case models.SortByAmount:
		primary = func(a, b *models.Transaction) int { return cmp.Compare(a.Amount, b.Amount) }
	case models.SortByContractor:
		primary = func(a, b *models.Transaction) int { return strings.Compare(a.ToAccount, b.ToAccount) }
	default:
		primary = func(a, b *models.Transaction) int { return a.Date.Compare(b.Date) }
	}
	return func(a, b *models.Transaction) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}

func (r *txRepo) List(ctx context.Context, ownerID int64, q models.ListQuery) ([]*models.Transaction, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	start, end, byDate := q.DayRange()
	needle := strings.ToLower(q.Contractor)

	matched := make([]*models.Transaction, 0)
	for _, tx := range r.m.transactions {
		if tx.OwnerID != ownerID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(tx.ToAccount), needle) {
			continue
		}
		if byDate && (tx.Date.Before(start) || !tx.Date.Before(end)) {
			continue
		}
		out := *tx
		matched = append(matched, &out)
	}

	compare := compareBy(q.SortBy)
	if q.Order == models.OrderDesc {
		slices.SortFunc(matched, func(a, b *models.Transaction) int { return compare(b, a) })
	} else {
		slices.SortFunc(matched, compare)
	}

	if q.Skip >= len(matched) {
		return []*models.Transaction{}, nil
	}
	matched = matched[q.Skip:]
	if q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}
