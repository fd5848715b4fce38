package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/glebk/userlist-bot/internal/domain"
)

// Client talks to a paginated users backend over HTTP/JSON
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// listQuery is the query string of GET /users
type listQuery struct {
	Limit  int    `url:"limit"`
	Skip   int    `url:"skip"`
	SortBy string `url:"sortBy,omitempty"`
	Order  string `url:"order,omitempty"`
}

// New creates a new Client. Requests taking longer than timeout fail.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListUsers fetches one page of users
func (c *Client) ListUsers(ctx context.Context, limit, skip int, sortBy, order string) (*domain.UserPage, error) {
	values, err := query.Values(listQuery{Limit: limit, Skip: skip, SortBy: sortBy, Order: order})
	if err != nil {
		return nil, &domain.TransportError{Op: "list users", Err: err}
	}

	page := &domain.UserPage{}
	if err := c.do(ctx, http.MethodGet, "/users?"+values.Encode(), nil, page); err != nil {
		return nil, err
	}

	return page, nil
}

// CreateUser posts a new user to the backend
func (c *Client) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	payload := struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Age       int    `json:"age"`
	}{user.FirstName, user.LastName, user.Email, user.Age}

	created := &domain.User{}
	if err := c.do(ctx, http.MethodPost, "/users/add", payload, created); err != nil {
		return nil, err
	}

	return created, nil
}

// do sends a JSON request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.TransportError{Op: op, Err: fmt.Errorf("failed to encode body: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Error requesting %s: %v", op, err)
		return &domain.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &domain.TransportError{Op: op, StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Printf("Error requesting %s: status %d", op, res.StatusCode)
		return &domain.TransportError{Op: op, StatusCode: res.StatusCode, Err: fmt.Errorf("%s", strings.TrimSpace(string(data)))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.TransportError{Op: op, StatusCode: res.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
