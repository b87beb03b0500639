package client

import (
	"context"
	"fmt"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, loginRequest{Email: email, Password: password}, &s, "Login failed"); err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, &APIError{Message: "Login failed", Err: fmt.Errorf("response carried no token")}
	}
	if err := c.setSession(&s); err != nil {
		return nil, err
	}
	return c.Session(), nil
}

// Logout revokes the token on the server. The local session is cleared
// whether or not the server call succeeds; the server error, if any, is
// still returned.
func (c *Client) Logout(ctx context.Context) error {
	var serverErr error
	if c.token() != "" {
		serverErr = c.do(ctx, http.MethodPost, "/api/logout", nil, nil, nil, "Logout failed")
	}
	if err := c.setSession(nil); err != nil {
		return err
	}
	return serverErr
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, nil, &u, "Failed to fetch user"); err != nil {
		return nil, err
	}
	return &u, nil
}
