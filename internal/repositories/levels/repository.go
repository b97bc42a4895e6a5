package levels

import (
	"context"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
)

// Repository serves level descriptions to the generator
type Repository interface {
	// Get retrieves a level by name
	Get(ctx context.Context, name string) (*dungeon.Level, error)

	// List returns every level name, sorted
	List(ctx context.Context) ([]string, error)

	// Put registers a level, replacing any level with the same name
	Put(ctx context.Context, level *dungeon.Level) error
}
