package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/txledger/internal/common"
)

// Status is the tri-state review flag of a transaction.
type Status string

const (
	StatusRed    Status = "red"
	StatusYellow Status = "yellow"
	StatusGreen  Status = "green"
)

// DefaultStatus is assigned to transactions created without an explicit status.
const DefaultStatus = StatusRed

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusRed, StatusYellow, StatusGreen:
		return true
	}
	return false
}

// ParseStatus validates raw; an empty value yields DefaultStatus.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return DefaultStatus, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: status must be one of red, yellow, green", common.ErrValidation)
	}
	return s, nil
}

// Transaction is a transfer record owned by exactly one user.
type Transaction struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	FromAccount string    `json:"from_account"`
	ToAccount   string    `json:"to_account"`
	Amount      float64   `json:"amount"`
	Status      Status    `json:"status"`
	OwnerID     int64     `json:"-"`
}
