package authgw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExchangeTokenSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/authToken" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid request"))
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["token"] != "opaque-token" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid body"))
			return
		}
		_, _ = w.Write([]byte(`{
			"success": true,
			"user": {"id": 42, "name": "김철수", "phone": "010-1234-5678", "email": "kim@example.com"}
		}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, time.Second, "fairway-api/1.0")
	user, err := client.ExchangeToken(context.Background(), "opaque-token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 42 || user.Name != "김철수" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestExchangeTokenRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "INVALID_TOKEN", "message": "만료된 토큰입니다"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, time.Second, "fairway-api/1.0")
	_, err := client.ExchangeToken(context.Background(), "bad-token")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != "INVALID_TOKEN" {
		t.Fatalf("unexpected code: %q", apiErr.Code)
	}
}

func TestExchangeTokenHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, time.Second, "fairway-api/1.0")
	_, err := client.ExchangeToken(context.Background(), "token")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "status=502") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestExchangeTokenSuccessWithoutUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, time.Second, "fairway-api/1.0")
	if _, err := client.ExchangeToken(context.Background(), "token"); err == nil {
		t.Fatal("expected error for missing user payload")
	}
}
