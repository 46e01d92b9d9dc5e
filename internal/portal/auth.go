package portal

import (
	"context"
	"fmt"
	"net/http"
)

// UserClaim данные пользователя из ответа на логин
type UserClaim struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// LoginResult токен и идентификация пользователя
type LoginResult struct {
	Token string    `json:"token"`
	User  UserClaim `json:"user"`
}

// Login выполняет вход на портал и возвращает bearer-токен
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/users/login", "", body, &result)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if result.Token == "" {
		return nil, fmt.Errorf("login: empty token in response")
	}

	return &result, nil
}
