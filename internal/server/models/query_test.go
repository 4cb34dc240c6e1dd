package models

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_NormalizeDefaults(t *testing.T) {
	q := ListQuery{}
	require.NoError(t, q.Normalize())

	assert.Equal(t, SortByDate, q.SortBy)
	assert.Equal(t, OrderAsc, q.Order)
	assert.Equal(t, 0, q.Skip)
	assert.Equal(t, DefaultLimit, q.Limit)
}

func TestListQuery_NormalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		q       ListQuery
		wantErr bool
	}{
		{name: "contractor desc", q: ListQuery{SortBy: SortByContractor, Order: OrderDesc}},
		{name: "limit max", q: ListQuery{Limit: MaxLimit}},
		{name: "limit one", q: ListQuery{Limit: 1, Skip: 10}},
		{name: "unknown sort key", q: ListQuery{SortBy: "to_account"}, wantErr: true},
		{name: "unknown order", q: ListQuery{Order: "up"}, wantErr: true},
		{name: "negative skip", q: ListQuery{Skip: -1}, wantErr: true},
		{name: "limit too big", q: ListQuery{Limit: MaxLimit + 1}, wantErr: true},
		{name: "negative limit", q: ListQuery{Limit: -5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Normalize()
			if tt.wantErr {
				assert.True(t, errors.Is(err, common.ErrValidation), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestListQuery_DayRange(t *testing.T) {
	q := ListQuery{}
	_, _, ok := q.DayRange()
	assert.False(t, ok)

	d := time.Date(2024, 5, 17, 18, 45, 12, 0, time.FixedZone("X", 3*3600))
	q.Date = &d

	start, end, ok := q.DayRange()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC), end)
}
