package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const tokenTypeSession = "session"

// Claims represents session JWT claims issued after a gateway token exchange.
type Claims struct {
	MemberKey int64  `json:"member_key"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// Service handles JWT operations
type Service struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewService creates JWT service
func NewService(secret string, sessionTTL time.Duration) *Service {
	return &Service{secret: []byte(secret), sessionTTL: sessionTTL}
}

// GenerateSessionToken generates a signed session token for a member
func (s *Service) GenerateSessionToken(memberKey int64, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		MemberKey: memberKey,
		Name:      name,
		Type:      tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateSessionToken validates and parses a session token
func (s *Service) ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != tokenTypeSession {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) GetSessionTTL() time.Duration { return s.sessionTTL }
