package dungeon

import (
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
)

// Doorway is an exit on a room footprint. Position is local to the
// template. The copy fields describe the tile block a renderer uses to
// seal the opening when it stays unconnected; the generator ignores them.
type Doorway struct {
	Position      geometry.Point       `json:"position"`
	Orientation   geometry.Orientation `json:"orientation"`
	CopyPosition  geometry.Point       `json:"copy_position"`
	CopyWidth     int                  `json:"copy_width"`
	CopyHeight    int                  `json:"copy_height"`
	IsConnected   bool                 `json:"is_connected"`
	IsUnavailable bool                 `json:"is_unavailable"`
}

// IsAvailable reports whether the doorway can still be used for placement
func (d *Doorway) IsAvailable() bool {
	return !d.IsConnected && !d.IsUnavailable
}

// Connect marks the doorway as paired; a connected doorway is never retried
func (d *Doorway) Connect() {
	d.IsConnected = true
	d.IsUnavailable = true
}

// copyDoorways gives a room its own doorway state. Doorway holds no
// references, so copying the values is a deep copy.
func copyDoorways(src []Doorway) []Doorway {
	if src == nil {
		return nil
	}
	dst := make([]Doorway, len(src))
	copy(dst, src)
	return dst
}
