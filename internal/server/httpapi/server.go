// Package httpapi exposes the ledger over HTTP with gin: account
// registration, cookie sessions and the owner-scoped transaction endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/txledger/internal/logging"
	"github.com/dmitrijs2005/txledger/internal/server/config"
	"github.com/dmitrijs2005/txledger/internal/server/models"
	"github.com/gin-gonic/gin"
)

// UserService is the credential store and session authenticator used by the
// handlers. *services.UserService implements it.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// TransactionService is the owner-scoped ledger used by the handlers.
// *services.TransactionService implements it.
type TransactionService interface {
	Create(ctx context.Context, ownerID int64, from, to string, amount float64, status string) (*models.Transaction, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, ownerID, id int64, status string) (*models.Transaction, error)
	List(ctx context.Context, ownerID int64, q models.ListQuery) ([]*models.Transaction, error)
}

// Pinger reports storage health; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	address         string
	shutdownTimeout time.Duration
	cookieSecure    bool
	allowedOrigins  []string

	logger       logging.Logger
	users        UserService
	transactions TransactionService
	db           Pinger

	router *gin.Engine
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us UserService, ts TransactionService, db Pinger) *HTTPServer {
	s := &HTTPServer{
		address:         cfg.EndpointAddrHTTP,
		shutdownTimeout: cfg.ShutdownTimeout,
		cookieSecure:    cfg.CookieSecure,
		allowedOrigins:  cfg.AllowedOrigins(),
		logger:          l.With("module", "http_server"),
		users:           us,
		transactions:    ts,
		db:              db,
	}
	s.router = s.newRouter()
	return s
}

// Handler returns the routed gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
