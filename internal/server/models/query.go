package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/txledger/internal/common"
)

// SortKey is the public name of a sortable transaction attribute.
type SortKey string

const (
	SortByDate       SortKey = "date"
	SortByAmount     SortKey = "amount"
	SortByContractor SortKey = "contractor"
)

// SortOrder is the direction of a listing.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Pagination bounds.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ListQuery describes a filtered, sorted page of an owner's transactions.
// Zero values mean "not set"; Normalize fills in the defaults.
type ListQuery struct {
	// Contractor is matched case-insensitively as a substring of ToAccount.
	Contractor string
	// Date restricts results to the calendar day of this value.
	Date *time.Time

	SortBy SortKey
	Order  SortOrder

	Skip  int
	Limit int
}

// Normalize applies defaults and validates the query. Limit 0 means the
// default page size.
func (q *ListQuery) Normalize() error {
	if q.SortBy == "" {
		q.SortBy = SortByDate
	}
	if q.Order == "" {
		q.Order = OrderAsc
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}

	switch q.SortBy {
	case SortByDate, SortByAmount, SortByContractor:
	default:
		return fmt.Errorf("%w: sort_by must be one of date, amount, contractor", common.ErrValidation)
	}
	switch q.Order {
	case OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("%w: order must be asc or desc", common.ErrValidation)
	}
	if q.Skip < 0 {
		return fmt.Errorf("%w: skip must be greater than or equal to 0", common.ErrValidation)
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", common.ErrValidation, MaxLimit)
	}
	return nil
}

// DayRange returns the half-open UTC interval [start, start+24h) covering the
// calendar day of Date. ok is false when no date filter is set.
func (q *ListQuery) DayRange() (start, end time.Time, ok bool) {
	if q.Date == nil {
		return time.Time{}, time.Time{}, false
	}
	y, m, d := q.Date.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour), true
}
