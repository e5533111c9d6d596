package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fairway/fairway-api/internal/pkg/jwt"
	"github.com/fairway/fairway-api/internal/pkg/response"
)

type contextKey string

const (
	MemberKeyKey  contextKey = "member_key"
	MemberNameKey contextKey = "member_name"
)

// Auth returns middleware that validates the session JWT
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			// Check Bearer prefix
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			// Validate token
			claims, err := jwtService.ValidateSessionToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			// Add claims to context
			ctx := context.WithValue(r.Context(), MemberKeyKey, claims.MemberKey)
			ctx = context.WithValue(ctx, MemberNameKey, claims.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetMemberKey extracts the ERP member key from context
func GetMemberKey(ctx context.Context) int64 {
	if key, ok := ctx.Value(MemberKeyKey).(int64); ok {
		return key
	}
	return 0
}

// GetMemberName extracts the member display name from context
func GetMemberName(ctx context.Context) string {
	if name, ok := ctx.Value(MemberNameKey).(string); ok {
		return name
	}
	return ""
}
