package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/txledger/internal/client/models"
	"github.com/dmitrijs2005/txledger/internal/common"
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	session string
}

func NewHTTPClient(endpointURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(endpointURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server address %q: scheme must be http or https", endpointURL)
	}
	return &HTTPClient{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {

	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: c.session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.storeSession(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Detail string `json:"detail"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Detail = e.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) storeSession(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Name != common.SessionCookieName {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			c.session = ""
		} else {
			c.session = ck.Value
		}
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/users/", nil, credentials{username, password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	if err := c.do(ctx, http.MethodPost, "/login/", nil, credentials{username, password}, nil); err != nil {
		return err
	}
	if c.session == "" {
		return fmt.Errorf("%w: no session cookie in login response", ErrUnauthorized)
	}
	return nil
}

// Logout asks the server to clear the cookie and forgets the session locally
// even when the server cannot be reached.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout/", nil, nil, nil)
	c.session = ""
	return err
}

func (c *HTTPClient) CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions/", nil, tx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListTransactions(ctx context.Context, p models.ListParams) ([]*models.Transaction, error) {
	out := make([]*models.Transaction, 0)
	if err := c.do(ctx, http.MethodGet, "/transactions/", p.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateStatus(ctx context.Context, id int64, status string) (*models.Transaction, error) {
	var out models.Transaction
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPut, "/transactions/"+strconv.FormatInt(id, 10), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}
