package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/fairway/fairway-api/internal/pkg/authgw"
	"github.com/fairway/fairway-api/internal/pkg/jwt"
)

const profileKeyPrefix = "golf:profile:"

var ErrProfileNotFound = errors.New("profile not found")

// AuthGateway is the slice of the auth gateway client this service needs.
type AuthGateway interface {
	ExchangeToken(ctx context.Context, token string) (*authgw.User, error)
}

// Service exchanges gateway tokens for session tokens and caches the
// member profile. Identity itself stays with the gateway; nothing here
// verifies credentials.
type Service struct {
	gateway    AuthGateway
	jwtService *jwt.Service
	redis      *redis.Client
	profileTTL time.Duration
}

// NewService creates a session service. The redis client may be nil, in
// which case profiles are not cached.
func NewService(gateway AuthGateway, jwtService *jwt.Service, redisClient *redis.Client, profileTTL time.Duration) *Service {
	return &Service{
		gateway:    gateway,
		jwtService: jwtService,
		redis:      redisClient,
		profileTTL: profileTTL,
	}
}

func profileKey(memberKey int64) string {
	return profileKeyPrefix + strconv.FormatInt(memberKey, 10)
}

// Login exchanges an opaque gateway token for a signed session token.
func (s *Service) Login(ctx context.Context, token string) (LoginResponse, error) {
	user, err := s.gateway.ExchangeToken(ctx, token)
	if err != nil {
		return LoginResponse{}, err
	}

	sessionToken, err := s.jwtService.GenerateSessionToken(user.ID, user.Name)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.cacheProfile(ctx, user)

	return LoginResponse{
		Token:     sessionToken,
		ExpiresIn: int64(s.jwtService.GetSessionTTL().Seconds()),
		User:      *user,
	}, nil
}

// Profile returns the cached member profile.
func (s *Service) Profile(ctx context.Context, memberKey int64) (authgw.User, error) {
	if s.redis == nil {
		return authgw.User{}, ErrProfileNotFound
	}

	data, err := s.redis.Get(ctx, profileKey(memberKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return authgw.User{}, ErrProfileNotFound
		}
		return authgw.User{}, fmt.Errorf("failed to load profile: %w", err)
	}

	var user authgw.User
	if err := json.Unmarshal(data, &user); err != nil {
		return authgw.User{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return user, nil
}

// cacheProfile stores the profile best-effort; a cache failure never
// fails the login.
func (s *Service) cacheProfile(ctx context.Context, user *authgw.User) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, profileKey(user.ID), data, s.profileTTL).Err(); err != nil {
		log.Warn().Err(err).Int64("member_key", user.ID).Msg("Failed to cache member profile")
	}
}
