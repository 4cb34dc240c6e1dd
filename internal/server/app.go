// Package server assembles the ledger server: it opens PostgreSQL, applies
// the embedded migrations, builds the services and runs the HTTP API until
// the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/txledger/internal/logging"
	"github.com/dmitrijs2005/txledger/internal/server/auth"
	"github.com/dmitrijs2005/txledger/internal/server/config"
	"github.com/dmitrijs2005/txledger/internal/server/httpapi"
	"github.com/dmitrijs2005/txledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/txledger/internal/server/services"
	"github.com/gin-gonic/gin"
)

// seams for tests
var (
	openDB         = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	gin.SetMode(c.GinMode)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	codec, err := auth.NewSessionCodec(c.SessionMode, c.SecretKey, c.SessionValidityDuration)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session codec init error: %w", err)
	}

	us := services.NewUserService(db, rm, hasher, codec)
	ts := services.NewTransactionService(db, rm)

	srv := httpapi.NewHTTPServer(c, logger, us, ts, db)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then closes the database pool.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "session_mode", app.config.SessionMode)

	app.initSignalHandler(ctx, cancelFunc)

	err := app.server.Run(ctx)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "error closing database", "error", cerr.Error())
	}

	if err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
