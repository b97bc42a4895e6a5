package layouts

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu           sync.RWMutex
	layouts      map[string]*dungeon.Layout
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory layout repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		layouts:      make(map[string]*dungeon.Layout),
		timeProvider: realTimeProvider{},
	}
}

// Create stores a new layout
func (r *inMemoryRepository) Create(ctx context.Context, layout *dungeon.Layout) error {
	if err := validateLayout(layout); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.layouts[layout.ID]; exists {
		return dnderr.AlreadyExistsf("layout with ID %s already exists", layout.ID).
			WithMeta("layout_id", layout.ID)
	}

	if layout.CreatedAt.IsZero() {
		layout.CreatedAt = r.timeProvider.Now()
	}

	// Rooms hold pointers, so store a deep copy
	r.layouts[layout.ID] = layout.Clone()

	return nil
}

// Get retrieves a layout by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*dungeon.Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	layout, exists := r.layouts[id]
	if !exists {
		return nil, notFound(id)
	}

	return layout.Clone(), nil
}

// Update replaces an existing layout
func (r *inMemoryRepository) Update(ctx context.Context, layout *dungeon.Layout) error {
	if err := validateLayout(layout); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.layouts[layout.ID]; !exists {
		return notFound(layout.ID)
	}

	r.layouts[layout.ID] = layout.Clone()

	return nil
}

// Delete removes a layout
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.layouts[id]; !exists {
		return notFound(id)
	}

	delete(r.layouts, id)
	return nil
}

// ListByLevel retrieves every layout for a level, oldest first
func (r *inMemoryRepository) ListByLevel(ctx context.Context, levelName string) ([]*dungeon.Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var layouts []*dungeon.Layout
	for _, layout := range r.layouts {
		if layout.LevelName == levelName {
			layouts = append(layouts, layout.Clone())
		}
	}

	sort.Slice(layouts, func(i, j int) bool {
		if layouts[i].CreatedAt.Equal(layouts[j].CreatedAt) {
			return layouts[i].ID < layouts[j].ID
		}
		return layouts[i].CreatedAt.Before(layouts[j].CreatedAt)
	})

	return layouts, nil
}

func validateLayout(layout *dungeon.Layout) error {
	if layout == nil {
		return dnderr.InvalidArgument("layout cannot be nil")
	}
	if layout.ID == "" {
		return dnderr.InvalidArgument("layout ID cannot be empty")
	}
	return nil
}

func notFound(id string) error {
	return dnderr.NotFoundf("layout not found: %s", id).WithMeta("layout_id", id)
}
