package transactions

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/server/models"
)

// sortColumns maps public sort keys to physical columns. The contractor key
// sorts by the recipient account.
var sortColumns = map[models.SortKey]string{
	models.SortByDate:       "date",
	models.SortByAmount:     "amount",
	models.SortByContractor: "to_account",
}

var sortDirections = map[models.SortOrder]string{
	models.OrderAsc:  "ASC",
	models.OrderDesc: "DESC",
}

const selectColumns = `id, date, from_account, to_account, amount, status, owner_id`

// likeEscaper makes a user supplied term match literally inside ILIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery renders the SELECT for q and its positional arguments.
// Identifiers come only from the lookup tables above; values are always bound.
func buildListQuery(ownerID int64, q models.ListQuery) (string, []any, error) {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown sort key %q", common.ErrValidation, q.SortBy)
	}
	direction, ok := sortDirections[q.Order]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown sort order %q", common.ErrValidation, q.Order)
	}

	var sb strings.Builder
	args := []any{ownerID}

	sb.WriteString("SELECT " + selectColumns + " FROM transactions WHERE owner_id = $1")

	if q.Contractor != "" {
		args = append(args, "%"+likeEscaper.Replace(q.Contractor)+"%")
		fmt.Fprintf(&sb, ` AND to_account ILIKE $%d ESCAPE '\'`, len(args))
	}

	if start, end, ok := q.DayRange(); ok {
		args = append(args, start, end)
		fmt.Fprintf(&sb, " AND date >= $%d AND date < $%d", len(args)-1, len(args))
	}

	fmt.Fprintf(&sb, " ORDER BY %s %s, id %s", column, direction, direction)

	args = append(args, q.Skip, q.Limit)
	fmt.Fprintf(&sb, " OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	return sb.String(), args, nil
}
