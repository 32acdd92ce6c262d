package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/httpclient"
)

// TokenProvider fetches a bearer credential for report delivery.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenClient obtains bearer tokens from a username/password credential
// endpoint that answers with an "access" field.
type TokenClient struct {
	client   *httpclient.Client
	tokenURL string
	username string
	password string
}

// NewTokenClient creates a token client for the given credential endpoint.
func NewTokenClient(client *httpclient.Client, tokenURL, username, password string) *TokenClient {
	return &TokenClient{
		client:   client,
		tokenURL: tokenURL,
		username: username,
		password: password,
	}
}

var _ TokenProvider = (*TokenClient)(nil)

// Token requests a fresh access token.
func (c *TokenClient) Token(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return "", fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if payload.Access == "" {
		return "", fmt.Errorf("token endpoint response has no access token")
	}

	return payload.Access, nil
}
