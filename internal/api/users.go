package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges admin credentials for a backend token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	err := c.do(ctx, request{method: fiber.MethodPost, path: "api/user/login", json: credentials{Email: email, Password: password}}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// Check validates the current token and returns a refreshed one.
func (c *Client) Check(ctx context.Context) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/user/auth", access: authed}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*domain.UserInfo, error) {
	var out domain.UserInfo
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/user/me", access: authed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
