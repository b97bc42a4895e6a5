package layouts

//go:generate mockgen -destination=mock/mock_repository.go -package=mocklayouts -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
)

// Repository defines the interface for generated layout storage
type Repository interface {
	// Create stores a new layout, stamping CreatedAt when it is unset
	Create(ctx context.Context, layout *dungeon.Layout) error

	// Get retrieves a layout by ID
	Get(ctx context.Context, id string) (*dungeon.Layout, error)

	// Update replaces an existing layout, typically after room state changes
	Update(ctx context.Context, layout *dungeon.Layout) error

	// Delete removes a layout
	Delete(ctx context.Context, id string) error

	// ListByLevel retrieves every layout generated for a level
	ListByLevel(ctx context.Context, levelName string) ([]*dungeon.Layout, error)
}
