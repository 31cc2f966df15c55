package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stockops/adjustment-e2e/internal/config"
)

// ErrLoginRejected is returned when the application refuses the suite credentials
var ErrLoginRejected = errors.New("login rejected")

// AuthClient obtains access tokens from the application under test
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
}

// HTTPAuthClient implements AuthClient over the application's login endpoint
type HTTPAuthClient struct {
	httpClient *resty.Client
	authPath   string
}

// NewAuthClient creates a login client for the configured API
func NewAuthClient(cfg *config.E2EConfig) AuthClient {
	httpClient := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.NetworkTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &HTTPAuthClient{
		httpClient: httpClient,
		authPath:   cfg.AuthPath,
	}
}

// LoginRequest is the body posted to the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse covers the token field names the login endpoint is known to use
type LoginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	Data        struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

// AccessTokenValue returns the first non-empty token field
func (r *LoginResponse) AccessTokenValue() string {
	for _, tok := range []string{r.AccessToken, r.Token, r.Data.AccessToken, r.Data.Token} {
		if tok != "" {
			return tok
		}
	}
	return ""
}

// Login posts the credentials and returns the decoded response
func (c *HTTPAuthClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var result LoginResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(&LoginRequest{Username: username, Password: password}).
		SetResult(&result).
		Post(c.authPath)
	if err != nil {
		return nil, fmt.Errorf("failed to send login request: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrLoginRejected, resp.StatusCode(), resp.String())
	}

	if result.AccessTokenValue() == "" {
		return nil, fmt.Errorf("%w: response carried no token", ErrLoginRejected)
	}

	return &result, nil
}
