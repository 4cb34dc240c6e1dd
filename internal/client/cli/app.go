package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dmitrijs2005/txledger/internal/client/client"
	"github.com/dmitrijs2005/txledger/internal/client/config"
)

type App struct {
	config   *config.Config
	api      client.Client
	reader   *bufio.Reader
	out      io.Writer
	faker    *gofakeit.Faker
	userName string
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		faker:  gofakeit.New(0),
	}, nil
}

// Run checks that the server answers and then blocks in the REPL until the
// user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerEndpointAddr, err)
	}
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "guest"
	}
	return a.userName
}
