package layouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

const (
	// Key patterns
	layoutKeyPrefix = "layout:"
	levelLayoutsKey = "level:%s:layouts"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient // Required
	TimeProvider TimeProvider          // Optional
	// LayoutTTL expires stored layouts; zero keeps them until deleted
	LayoutTTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
	layoutTTL    time.Duration
}

// NewRedisRepository creates a new Redis-backed layout repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	repo := &redisRepository{
		client:       cfg.Client,
		timeProvider: cfg.TimeProvider,
		layoutTTL:    cfg.LayoutTTL,
	}
	if repo.timeProvider == nil {
		repo.timeProvider = realTimeProvider{}
	}

	return repo
}

// NewRedis creates a Redis-backed layout repository with default configuration
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// Create stores a new layout and indexes it under its level
func (r *redisRepository) Create(ctx context.Context, layout *dungeon.Layout) error {
	if err := validateLayout(layout); err != nil {
		return err
	}

	key := layoutKeyPrefix + layout.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check layout in Redis: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("layout with ID %s already exists", layout.ID).
			WithMeta("layout_id", layout.ID)
	}

	if layout.CreatedAt.IsZero() {
		layout.CreatedAt = r.timeProvider.Now()
	}

	jsonData, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, string(jsonData), r.layoutTTL)
	pipe.SAdd(ctx, fmt.Sprintf(levelLayoutsKey, layout.LevelName), layout.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store layout in Redis: %w", err)
	}

	return nil
}

// Get retrieves a layout by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*dungeon.Layout, error) {
	jsonData, err := r.client.Get(ctx, layoutKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("failed to get layout from Redis: %w", err)
	}

	var layout dungeon.Layout
	if err := json.Unmarshal(jsonData, &layout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout: %w", err)
	}

	return &layout, nil
}

// Update replaces an existing layout
func (r *redisRepository) Update(ctx context.Context, layout *dungeon.Layout) error {
	if err := validateLayout(layout); err != nil {
		return err
	}

	key := layoutKeyPrefix + layout.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check layout in Redis: %w", err)
	}
	if exists == 0 {
		return notFound(layout.ID)
	}

	jsonData, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if err := r.client.Set(ctx, key, string(jsonData), r.layoutTTL).Err(); err != nil {
		return fmt.Errorf("failed to update layout in Redis: %w", err)
	}

	return nil
}

// Delete removes a layout and its level index entry. An expired layout
// reports NotFound; ListByLevel prunes its index entry.
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	layout, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, layoutKeyPrefix+id)
	pipe.SRem(ctx, fmt.Sprintf(levelLayoutsKey, layout.LevelName), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete layout from Redis: %w", err)
	}

	return nil
}

// ListByLevel retrieves every layout indexed under a level. Index entries
// whose layout has expired are skipped and pruned from the index.
func (r *redisRepository) ListByLevel(ctx context.Context, levelName string) ([]*dungeon.Layout, error) {
	indexKey := fmt.Sprintf(levelLayoutsKey, levelName)
	layoutIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get level layouts from Redis: %w", err)
	}

	found := make([]*dungeon.Layout, len(layoutIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range layoutIDs {
		g.Go(func() error {
			layout, err := r.Get(gctx, id)
			if err != nil {
				if dnderr.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("failed to get layout %s: %w", id, err)
			}
			found[i] = layout
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	layouts := make([]*dungeon.Layout, 0, len(found))
	var stale []any
	for i, layout := range found {
		if layout == nil {
			stale = append(stale, layoutIDs[i])
			continue
		}
		layouts = append(layouts, layout)
	}

	if len(stale) > 0 {
		// A failed prune is retried on the next listing
		_ = r.client.SRem(ctx, indexKey, stale...).Err()
	}

	return layouts, nil
}
