// Package services holds the server's use cases: the credential store, the
// session authenticator and the owner-scoped transaction ledger. Services bind
// repositories per call through a repomanager.RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/dbx"
	"github.com/dmitrijs2005/txledger/internal/server/auth"
	"github.com/dmitrijs2005/txledger/internal/server/models"
	"github.com/dmitrijs2005/txledger/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.BcryptHasher
	codec       auth.SessionCodec
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.BcryptHasher, codec auth.SessionCodec) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		codec:       codec,
	}
}

// Register creates an account for username. The password is stored only as a
// bcrypt hash. An existing exact username yields common.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password must not exceed 72 bytes", common.ErrValidation)
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByLogin(ctx, username)
		if err == nil {
			return common.ErrDuplicateUsername
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Verify checks the credentials. An unknown username and a wrong password
// both yield common.ErrInvalidCredentials.
func (s *UserService) Verify(ctx context.Context, username, password string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// Login verifies the credentials and issues a session token for the user.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {

	user, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.codec.Encode(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error issuing session token: %w", err)
	}

	return user, token, nil
}

// Resolve maps a session token back to its user. An empty token yields
// common.ErrUnauthenticated; a token that does not decode, or that names a
// user who does not exist, yields common.ErrInvalidSession.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {

	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	id, err := s.codec.Decode(token)
	if err != nil {
		return nil, common.ErrInvalidSession
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidSession
		}
		return nil, fmt.Errorf("error resolving session: %w", err)
	}

	return user, nil
}
