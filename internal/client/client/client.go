package client

import (
	"context"

	"github.com/dmitrijs2005/txledger/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error)
	ListTransactions(ctx context.Context, p models.ListParams) ([]*models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Transaction, error)
	Ping(ctx context.Context) error
}
