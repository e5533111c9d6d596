package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Only the region subset of Filters persists across sessions; tee-time,
// fee, player and payment selections are ephemeral per page load.
const regionFilterKeyPrefix = "golf:filters:regions:"

// PreferenceRepository stores the persisted region-filter subset per
// member.
type PreferenceRepository interface {
	SaveRegions(ctx context.Context, memberKey int64, regions []string) error
	LoadRegions(ctx context.Context, memberKey int64) ([]string, error)
}

// RedisPreferenceRepository is the redis-backed preference store. A nil
// redis client degrades to a no-op so the service still runs without
// redis in development.
type RedisPreferenceRepository struct {
	client *redis.Client
}

// NewPreferenceRepository creates a redis-backed preference repository.
func NewPreferenceRepository(client *redis.Client) *RedisPreferenceRepository {
	return &RedisPreferenceRepository{client: client}
}

func regionFilterKey(memberKey int64) string {
	return regionFilterKeyPrefix + strconv.FormatInt(memberKey, 10)
}

// SaveRegions stores the member's region selections. An empty selection
// removes the entry.
func (r *RedisPreferenceRepository) SaveRegions(ctx context.Context, memberKey int64, regions []string) error {
	if r.client == nil {
		return nil
	}

	key := regionFilterKey(memberKey)
	if len(regions) == 0 {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to clear region filters: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(regions)
	if err != nil {
		return fmt.Errorf("failed to encode region filters: %w", err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save region filters: %w", err)
	}
	return nil
}

// LoadRegions returns the member's stored region selections, nil when
// none are stored.
func (r *RedisPreferenceRepository) LoadRegions(ctx context.Context, memberKey int64) ([]string, error) {
	if r.client == nil {
		return nil, nil
	}

	data, err := r.client.Get(ctx, regionFilterKey(memberKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load region filters: %w", err)
	}

	var regions []string
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("failed to decode region filters: %w", err)
	}
	return regions, nil
}
