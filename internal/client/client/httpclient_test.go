package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/txledger/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger mimics the server's session handling: /login/ sets a Secure
// cookie, /logout/ expires it and /transactions/ demands it.
func fakeLedger(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("POST /users/", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		if c.Username == "taken" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Username already registered"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 4, "username": c.Username})
	})
	mux.HandleFunc("POST /login/", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		if c.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "4", Path: "/", Secure: true, HttpOnly: true, SameSite: http.SameSiteLaxMode})
		writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
	})
	mux.HandleFunc("POST /logout/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
	})
	requireSession := func(w http.ResponseWriter, r *http.Request) bool {
		c, err := r.Cookie("session")
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication required"})
			return false
		}
		if c.Value != "4" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid session"})
			return false
		}
		return true
	}
	mux.HandleFunc("GET /transactions/", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}
		q := r.URL.Query()
		assert.Equal(t, "amount", q.Get("sort_by"))
		assert.Equal(t, "2", q.Get("limit"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "date": "2024-01-02T10:00:00Z", "from_account": "A", "to_account": "B", "amount": 1.5, "status": "red"},
		})
	})
	mux.HandleFunc("POST /transactions/", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}
		var nt map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&nt))
		_, hasStatus := nt["status"]
		assert.False(t, hasStatus, "empty status must be omitted")
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "from_account": nt["from_account"], "to_account": nt["to_account"], "amount": nt["amount"], "status": "red"})
	})
	mux.HandleFunc("GET /transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}
		if r.PathValue("id") != "9" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Transaction not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "status": "red"})
	})
	mux.HandleFunc("PUT /transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "status": body["status"]})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, url string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(url, 2*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_InvalidAddress(t *testing.T) {
	_, err := NewHTTPClient("127.0.0.1:8000", time.Second)
	assert.Error(t, err)

	_, err = NewHTTPClient("ftp://host", time.Second)
	assert.Error(t, err)
}

func TestHTTPClient_SessionLifecycle(t *testing.T) {
	srv := fakeLedger(t)
	c := newTestClient(t, srv.URL+"/")
	ctx := context.Background()

	_, err := c.ListTransactions(ctx, models.ListParams{})
	assert.True(t, errors.Is(err, ErrUnauthorized), "got %v", err)

	u, err := c.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 4, Username: "alice"}, *u)

	require.NoError(t, c.Login(ctx, "alice", "pw"))
	assert.Equal(t, "4", c.session)

	items, err := c.ListTransactions(ctx, models.ListParams{SortBy: "amount", Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].ToAccount)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), items[0].Date.UTC())

	created, err := c.CreateTransaction(ctx, models.NewTransaction{FromAccount: "A", ToAccount: "B", Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "red", created.Status)

	got, err := c.GetTransaction(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)

	_, err = c.GetTransaction(ctx, 10)
	assert.True(t, errors.Is(err, ErrNotFound))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Transaction not found", apiErr.Detail)

	updated, err := c.UpdateStatus(ctx, 9, "green")
	require.NoError(t, err)
	assert.Equal(t, "green", updated.Status)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.session)

	_, err = c.GetTransaction(ctx, 9)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestHTTPClient_Errors(t *testing.T) {
	srv := fakeLedger(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := c.Register(ctx, "taken", "pw")
	assert.True(t, errors.Is(err, ErrRejected))
	assert.EqualError(t, err, "server returned 400: Username already registered")

	err = c.Login(ctx, "alice", "bad")
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, c.session)

	require.NoError(t, c.Ping(ctx))
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	err := c.Ping(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)

	c.session = "4"
	err = c.Logout(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Empty(t, c.session, "logout forgets the session even offline")
}

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnprocessableEntity, ErrRejected},
		{http.StatusServiceUnavailable, ErrUnavailable},
	}
	for _, tt := range tests {
		err := &APIError{StatusCode: tt.code}
		assert.True(t, errors.Is(err, tt.want), "code %d", tt.code)
	}
	assert.Equal(t, "server returned 503", (&APIError{StatusCode: 503}).Error())
}
