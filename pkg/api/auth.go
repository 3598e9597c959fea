package api

import (
	"context"
	"net/http"
)

// LoginRequest carries credentials to the login endpoint. Verification is the
// backend's job; the password travels as entered.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

// AuthResult is the payload returned by login and register.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	var out struct {
		envelope
		AuthResult
	}
	if err := c.do(ctx, http.MethodPost, "/login", req, &out); err != nil {
		return nil, err
	}
	return &out.AuthResult, nil
}

// Register creates an account and returns the initial session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var out struct {
		envelope
		AuthResult
	}
	if err := c.do(ctx, http.MethodPost, "/register", req, &out); err != nil {
		return nil, err
	}
	return &out.AuthResult, nil
}

// Logout invalidates the server-side session. A failure here is not fatal to
// the local logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// Profile fetches the current user profile.
func (c *Client) Profile(ctx context.Context) (*UserProfile, error) {
	var out struct {
		envelope
		User UserProfile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
