// Package models holds the client-side view of the ledger API payloads.
package models

import (
	"net/url"
	"strconv"
	"time"
)

// Statuses accepted by the server.
var Statuses = []string{"red", "yellow", "green"}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Transaction struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	FromAccount string    `json:"from_account"`
	ToAccount   string    `json:"to_account"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
}

// NewTransaction is the create request body. An empty Status lets the
// server apply its default.
type NewTransaction struct {
	FromAccount string  `json:"from_account"`
	ToAccount   string  `json:"to_account"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status,omitempty"`
}

// ListParams are the list endpoint query parameters. Zero values are not sent.
type ListParams struct {
	Skip       int
	Limit      int
	SortBy     string
	Order      string
	Contractor string
	Date       string
}

// Values encodes the non-zero parameters.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Skip != 0 {
		v.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit != 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	if p.Contractor != "" {
		v.Set("contractor", p.Contractor)
	}
	if p.Date != "" {
		v.Set("date", p.Date)
	}
	return v
}
