package levels

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// inMemoryRepository keeps levels in a map. Levels are read-only once
// registered, so the same pointer is handed to every caller.
type inMemoryRepository struct {
	mu     sync.RWMutex
	levels map[string]*dungeon.Level
}

// NewInMemoryRepository creates a level registry holding levels
func NewInMemoryRepository(levels ...*dungeon.Level) Repository {
	repo := &inMemoryRepository{
		levels: make(map[string]*dungeon.Level, len(levels)),
	}
	for _, level := range levels {
		if level != nil {
			repo.levels[level.Name] = level
		}
	}
	return repo
}

// Get retrieves a level by name
func (r *inMemoryRepository) Get(ctx context.Context, name string) (*dungeon.Level, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	level, exists := r.levels[name]
	if !exists {
		return nil, dnderr.NotFoundf("level not found: %s", name).WithMeta("level", name)
	}

	return level, nil
}

// List returns every registered level name
func (r *inMemoryRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.levels))
	for name := range r.levels {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// Put registers a level
func (r *inMemoryRepository) Put(ctx context.Context, level *dungeon.Level) error {
	if level == nil {
		return dnderr.InvalidArgument("level cannot be nil")
	}
	if level.Name == "" {
		return dnderr.InvalidArgument("level name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.levels[level.Name] = level
	return nil
}
