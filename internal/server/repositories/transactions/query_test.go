package transactions

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(t *testing.T, q models.ListQuery) models.ListQuery {
	t.Helper()
	require.NoError(t, q.Normalize())
	return q
}

func TestBuildListQuery_Defaults(t *testing.T) {
	query, args, err := buildListQuery(7, normalized(t, models.ListQuery{}))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, date, from_account, to_account, amount, status, owner_id FROM transactions WHERE owner_id = $1"+
			" ORDER BY date ASC, id ASC OFFSET $2 LIMIT $3",
		query)
	assert.Equal(t, []any{int64(7), 0, 50}, args)
}

func TestBuildListQuery_SortKeyMapping(t *testing.T) {
	tests := []struct {
		key   models.SortKey
		order models.SortOrder
		want  string
	}{
		{models.SortByDate, models.OrderDesc, " ORDER BY date DESC, id DESC"},
		{models.SortByAmount, models.OrderAsc, " ORDER BY amount ASC, id ASC"},
		{models.SortByContractor, models.OrderDesc, " ORDER BY to_account DESC, id DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key)+"_"+string(tt.order), func(t *testing.T) {
			query, _, err := buildListQuery(1, normalized(t, models.ListQuery{SortBy: tt.key, Order: tt.order}))
			require.NoError(t, err)
			assert.Contains(t, query, tt.want)
		})
	}
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	day := time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC)
	q := normalized(t, models.ListQuery{
		Contractor: "Acme",
		Date:       &day,
		SortBy:     models.SortByAmount,
		Order:      models.OrderDesc,
		Skip:       20,
		Limit:      10,
	})

	query, args, err := buildListQuery(3, q)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, date, from_account, to_account, amount, status, owner_id FROM transactions WHERE owner_id = $1"+
			` AND to_account ILIKE $2 ESCAPE '\'`+
			" AND date >= $3 AND date < $4"+
			" ORDER BY amount DESC, id DESC OFFSET $5 LIMIT $6",
		query)
	assert.Equal(t, []any{
		int64(3),
		"%Acme%",
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		20, 10,
	}, args)
}

func TestBuildListQuery_ContractorWildcardsAreLiteral(t *testing.T) {
	_, args, err := buildListQuery(1, normalized(t, models.ListQuery{Contractor: `50%_off\`}))
	require.NoError(t, err)
	assert.Equal(t, `%50\%\_off\\%`, args[1])
}

func TestBuildListQuery_RejectsUnknownKeys(t *testing.T) {
	_, _, err := buildListQuery(1, models.ListQuery{SortBy: "owner_id; DROP TABLE users", Order: models.OrderAsc})
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, _, err = buildListQuery(1, models.ListQuery{SortBy: models.SortByDate, Order: "sideways"})
	assert.True(t, errors.Is(err, common.ErrValidation))
}
