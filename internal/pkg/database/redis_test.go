package database

import "testing"

func TestNewRedisOptionalWhenUnconfigured(t *testing.T) {
	client, err := NewRedis("")
	if err != nil {
		t.Fatalf("expected no error without a URL, got %v", err)
	}
	if client != nil {
		t.Fatal("expected a nil client without a URL")
	}
}

func TestNewRedisRejectsMalformedURL(t *testing.T) {
	if _, err := NewRedis("not-a-redis-url"); err == nil {
		t.Fatal("expected a parse error for a malformed URL")
	}
}
