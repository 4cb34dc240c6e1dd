package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dmitrijs2005/txledger/internal/client/client"
	"github.com/dmitrijs2005/txledger/internal/client/config"
	"github.com/dmitrijs2005/txledger/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	registered []string
	loginErr   error
	logoutErr  error
	createErr  error
	failAfter  int

	created []models.NewTransaction
	params  models.ListParams
	items   []*models.Transaction
	status  map[int64]string
}

func (f *fakeClient) Register(ctx context.Context, username, password string) (*models.User, error) {
	f.registered = append(f.registered, username+":"+password)
	return &models.User{ID: int64(len(f.registered)), Username: username}, nil
}

func (f *fakeClient) Login(ctx context.Context, username, password string) error {
	return f.loginErr
}

func (f *fakeClient) Logout(ctx context.Context) error { return f.logoutErr }

func (f *fakeClient) CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error) {
	if f.createErr != nil && len(f.created) >= f.failAfter {
		return nil, f.createErr
	}
	f.created = append(f.created, tx)
	status := tx.Status
	if status == "" {
		status = "red"
	}
	return &models.Transaction{
		ID:          int64(len(f.created)),
		Date:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		FromAccount: tx.FromAccount,
		ToAccount:   tx.ToAccount,
		Amount:      tx.Amount,
		Status:      status,
	}, nil
}

func (f *fakeClient) ListTransactions(ctx context.Context, p models.ListParams) ([]*models.Transaction, error) {
	f.params = p
	return f.items, nil
}

func (f *fakeClient) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	for _, tx := range f.items {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Detail: "Transaction not found"}
}

func (f *fakeClient) UpdateStatus(ctx context.Context, id int64, status string) (*models.Transaction, error) {
	tx, err := f.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *tx
	cp.Status = status
	return &cp, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func newTestApp(api client.Client, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		config: &config.Config{ServerEndpointAddr: "http://127.0.0.1:8000"},
		api:    api,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
		faker:  gofakeit.New(42),
	}, &out
}

func withPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(w io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(&config.Config{ServerEndpointAddr: "http://localhost:8000", RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "guest", app.status())

	_, err = NewApp(&config.Config{ServerEndpointAddr: "ftp://localhost"})
	assert.Error(t, err)
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	withPassword(t, "pw")
	api := &fakeClient{}
	app, out := newTestApp(api, "alice\n")

	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, []string{"alice:pw"}, api.registered)
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Registered alice (id 1)")
}

func TestLoginLogout(t *testing.T) {
	withPassword(t, "pw")
	api := &fakeClient{}
	app, _ := newTestApp(api, "alice\n")

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "alice", app.status())

	api.logoutErr = client.ErrUnavailable
	err := app.Logout(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, app.isLoggedIn())
}

func TestLogin_Rejected(t *testing.T) {
	withPassword(t, "bad")
	api := &fakeClient{loginErr: &client.APIError{StatusCode: 401, Detail: "Incorrect username or password"}}
	app, _ := newTestApp(api, "alice\n")

	err := app.Login(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, app.isLoggedIn())
}

func TestLogin_PasswordError(t *testing.T) {
	orig := getPassword
	getPassword = func(w io.Writer) ([]byte, error) { return nil, errors.New("no tty") }
	t.Cleanup(func() { getPassword = orig })

	app, _ := newTestApp(&fakeClient{}, "alice\n")
	assert.EqualError(t, app.Login(context.Background()), "no tty")
}

func TestAdd(t *testing.T) {
	api := &fakeClient{}
	app, out := newTestApp(api, "checking\nAcme Corp\n12.50\n\n")

	require.NoError(t, app.Add(context.Background()))
	require.Len(t, api.created, 1)
	assert.Equal(t, models.NewTransaction{FromAccount: "checking", ToAccount: "Acme Corp", Amount: 12.5}, api.created[0])
	assert.Contains(t, out.String(), "Acme Corp")
	assert.Contains(t, out.String(), "12.50")
	assert.Contains(t, out.String(), "red")
}

func TestAdd_InvalidAmount(t *testing.T) {
	api := &fakeClient{}
	app, _ := newTestApp(api, "checking\nAcme\nlots\n")

	assert.EqualError(t, app.Add(context.Background()), `invalid amount "lots"`)
	assert.Empty(t, api.created)
}

func TestParseListArgs(t *testing.T) {
	p, err := parseListArgs([]string{"skip=2", "limit=5", "sort=contractor", "order=desc", "contractor=acme", "date=2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, models.ListParams{Skip: 2, Limit: 5, SortBy: "contractor", Order: "desc", Contractor: "acme", Date: "2024-03-01"}, p)

	p, err = parseListArgs([]string{"sort_by=amount"})
	require.NoError(t, err)
	assert.Equal(t, "amount", p.SortBy)

	_, err = parseListArgs([]string{"limit=ten"})
	assert.EqualError(t, err, "limit must be an integer")

	_, err = parseListArgs([]string{"color=blue"})
	assert.EqualError(t, err, `unknown list option "color"`)

	_, err = parseListArgs([]string{"amount"})
	assert.ErrorIs(t, err, errUsage)
}

func TestList(t *testing.T) {
	api := &fakeClient{}
	app, out := newTestApp(api, "")

	require.NoError(t, app.List(context.Background(), []string{"contractor=ac"}))
	assert.Equal(t, "ac", api.params.Contractor)
	assert.Equal(t, "No transactions\n", out.String())

	out.Reset()
	api.items = []*models.Transaction{
		{ID: 7, Date: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), FromAccount: "cash", ToAccount: "Acme", Amount: 3, Status: "green"},
	}
	require.NoError(t, app.List(context.Background(), nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "DATE", "FROM", "TO", "AMOUNT", "STATUS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"7", "2024-03-01", "09:30:00", "cash", "Acme", "3.00", "green"}, strings.Fields(lines[1]))
}

func TestShowAndSetStatus(t *testing.T) {
	api := &fakeClient{items: []*models.Transaction{{ID: 3, ToAccount: "Acme", Status: "red"}}}
	app, out := newTestApp(api, "")
	ctx := context.Background()

	require.NoError(t, app.Show(ctx, []string{"3"}))
	assert.Contains(t, out.String(), "Acme")

	out.Reset()
	require.NoError(t, app.SetStatus(ctx, []string{"3", "yellow"}))
	assert.Contains(t, out.String(), "yellow")

	assert.ErrorIs(t, app.Show(ctx, []string{"9"}), client.ErrNotFound)
	assert.ErrorIs(t, app.Show(ctx, nil), errUsage)
	assert.ErrorIs(t, app.SetStatus(ctx, []string{"3"}), errUsage)
	assert.EqualError(t, app.Show(ctx, []string{"x"}), `invalid transaction id "x"`)
}

func TestSeed(t *testing.T) {
	api := &fakeClient{}
	app, out := newTestApp(api, "")

	require.NoError(t, app.Seed(context.Background(), []string{"4"}))
	require.Len(t, api.created, 4)
	for _, tx := range api.created {
		assert.Contains(t, seedAccounts, tx.FromAccount)
		assert.NotEmpty(t, tx.ToAccount)
		assert.GreaterOrEqual(t, tx.Amount, 1.0)
		assert.LessOrEqual(t, tx.Amount, 1000.0)
		assert.Contains(t, models.Statuses, tx.Status)
	}
	assert.Equal(t, "Seeded 4 transactions\n", out.String())

	api.created = nil
	require.NoError(t, app.Seed(context.Background(), nil))
	assert.Len(t, api.created, defaultSeedCount)
}

func TestSeed_Deterministic(t *testing.T) {
	a := &fakeClient{}
	b := &fakeClient{}
	appA, _ := newTestApp(a, "")
	appB, _ := newTestApp(b, "")

	require.NoError(t, appA.Seed(context.Background(), []string{"3"}))
	require.NoError(t, appB.Seed(context.Background(), []string{"3"}))
	assert.Equal(t, a.created, b.created)
}

func TestSeed_Errors(t *testing.T) {
	api := &fakeClient{createErr: client.ErrUnavailable, failAfter: 2}
	app, _ := newTestApp(api, "")
	ctx := context.Background()

	err := app.Seed(ctx, []string{"5"})
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, err.Error(), "seeded 2 of 5")

	assert.EqualError(t, app.Seed(ctx, []string{"0"}), "count must be between 1 and 100")
	assert.EqualError(t, app.Seed(ctx, []string{"101"}), "count must be between 1 and 100")
	assert.ErrorIs(t, app.Seed(ctx, []string{"1", "2"}), errUsage)
}
