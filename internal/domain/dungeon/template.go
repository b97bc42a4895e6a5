package dungeon

import (
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
)

// RoomTemplate is immutable master data for a room shape. Bounds are
// inclusive on both corners, so the footprint is Upper-Lower+1 cells.
type RoomTemplate struct {
	ID             string           `json:"id"`
	Name           string           `json:"name,omitempty"`
	Type           RoomType         `json:"type"`
	LowerBounds    geometry.Point   `json:"lower_bounds"`
	UpperBounds    geometry.Point   `json:"upper_bounds"`
	Doorways       []Doorway        `json:"doorways"`
	SpawnPositions []geometry.Point `json:"spawn_positions,omitempty"`
	// Asset is an opaque reference to the visual prefab
	Asset string `json:"asset,omitempty"`
}

// Bounds returns the template footprint in template-local coordinates
func (t *RoomTemplate) Bounds() geometry.Bounds {
	return geometry.Bounds{Lower: t.LowerBounds, Upper: t.UpperBounds}
}

// Validate checks the template can be placed
func (t *RoomTemplate) Validate() error {
	if t.ID == "" {
		return dnderr.Validation("room template ID is required")
	}
	if t.Type.IsUnassigned() || t.Type.IsCorridor() {
		return dnderr.Validationf("room template '%s' must have a concrete room type, got '%s'", t.ID, t.Type).
			WithMeta("template_id", t.ID)
	}
	if t.UpperBounds.X < t.LowerBounds.X || t.UpperBounds.Y < t.LowerBounds.Y {
		return dnderr.Validationf("room template '%s' has upper bounds %s below lower bounds %s",
			t.ID, t.UpperBounds, t.LowerBounds).WithMeta("template_id", t.ID)
	}
	if len(t.Doorways) == 0 {
		return dnderr.Validationf("room template '%s' has no doorways", t.ID).
			WithMeta("template_id", t.ID)
	}

	bounds := t.Bounds()
	for i, doorway := range t.Doorways {
		if doorway.Orientation == geometry.OrientationNone {
			return dnderr.Validationf("room template '%s' doorway %d has no orientation", t.ID, i).
				WithMeta("template_id", t.ID)
		}
		if !bounds.Contains(doorway.Position) {
			return dnderr.Validationf("room template '%s' doorway %d at %s is outside the footprint",
				t.ID, i, doorway.Position).WithMeta("template_id", t.ID)
		}
	}

	return nil
}
