// Package users declares and implements persistence of registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/txledger/internal/server/models"
)

// Repository stores users. Lookups return common.ErrorNotFound for absent
// rows; Create returns common.ErrDuplicateUsername on a username clash.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
