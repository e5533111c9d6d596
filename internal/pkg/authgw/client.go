// Package authgw talks to the external auth token gateway. The gateway
// owns identity; this service only exchanges an opaque token for the
// member profile behind it.
package authgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// User is the member profile the gateway returns for a valid token.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// exchangeResponse is the gateway envelope: success=true carries the user,
// success=false carries error+message.
type exchangeResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError is an application-level gateway failure.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Client represents the auth gateway HTTP client.
type Client struct {
	baseURL string
	ua      string
	http    *http.Client
}

// NewClient creates a new auth gateway client.
func NewClient(baseURL string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ua:      ua,
		http:    &http.Client{Timeout: timeout},
	}
}

// ExchangeToken trades an opaque token for the member profile.
func (c *Client) ExchangeToken(ctx context.Context, token string) (*User, error) {
	if strings.TrimSpace(c.baseURL) == "" {
		return nil, fmt.Errorf("authgw config error: base_url is empty")
	}

	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("authgw request error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/authToken", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("authgw request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("authgw timeout: %w", err)
		}
		return nil, fmt.Errorf("authgw network error: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("authgw http error: status=%d body=<failed to read body: %v>", resp.StatusCode, readErr)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authgw network error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var exchange exchangeResponse
	if err := json.Unmarshal(body, &exchange); err != nil {
		return nil, fmt.Errorf("authgw decode error: %w", err)
	}
	if !exchange.Success {
		return nil, &APIError{Code: exchange.Error, Message: exchange.Message}
	}
	if exchange.User == nil {
		return nil, fmt.Errorf("authgw decode error: success without user")
	}
	return exchange.User, nil
}
