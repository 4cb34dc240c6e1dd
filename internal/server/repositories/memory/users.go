package memory

import (
	"context"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/server/models"
)

type userRepo struct {
	m *Manager
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.UserName == user.UserName {
			return nil, common.ErrDuplicateUsername
		}
	}

	r.m.lastUserID++
	stored := *user
	stored.ID = r.m.lastUserID
	stored.CreatedAt = r.m.Now().UTC()
	r.m.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.UserName == userName {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}
