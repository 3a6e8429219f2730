package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Veraticus/money-tracker/internal/model"
)

// ErrNoUser means /users/me answered without an identifiable account.
var ErrNoUser = errors.New("failed to parse response: no user in body")

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

// RegisterRequest creates an account. Only superadmins may call it.
type RegisterRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Role == "" {
		req.Role = model.RoleUser
	}

	var resp struct {
		Message string     `json:"message"`
		User    model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Me returns the user the current token belongs to. A body of null, {} or a
// user without id or username yields ErrNoUser.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user *model.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" || user.Username == "" {
		return nil, ErrNoUser
	}
	return user, nil
}

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/health", nil, &resp)
}
