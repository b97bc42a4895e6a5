package dungeon

import (
	"slices"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
)

// Room is a graph node instantiated from a template during generation.
// It owns its doorway state; rooms built from the same template never
// share doorways.
type Room struct {
	ID         string   `json:"id"`
	TemplateID string   `json:"template_id"`
	Type       RoomType `json:"type"`
	Asset      string   `json:"asset,omitempty"`

	LowerBounds         geometry.Point `json:"lower_bounds"`
	UpperBounds         geometry.Point `json:"upper_bounds"`
	TemplateLowerBounds geometry.Point `json:"template_lower_bounds"`
	TemplateUpperBounds geometry.Point `json:"template_upper_bounds"`

	SpawnPositions []geometry.Point `json:"spawn_positions,omitempty"`
	Doorways       []Doorway        `json:"doorways"`

	ParentID string   `json:"parent_id"`
	ChildIDs []string `json:"child_ids,omitempty"`

	IsPositioned bool `json:"is_positioned"`

	// Gameplay state, written by gameplay collaborators after generation
	IsLit               bool `json:"is_lit"`
	IsClearedOfEnemies  bool `json:"is_cleared_of_enemies"`
	IsPreviouslyVisited bool `json:"is_previously_visited"`
}

// NewRoom instantiates node from template at the template's own position
func NewRoom(template *RoomTemplate, node *RoomNode) *Room {
	room := &Room{
		ID:                  node.ID,
		TemplateID:          template.ID,
		Type:                template.Type,
		Asset:               template.Asset,
		LowerBounds:         template.LowerBounds,
		UpperBounds:         template.UpperBounds,
		TemplateLowerBounds: template.LowerBounds,
		TemplateUpperBounds: template.UpperBounds,
		SpawnPositions:      slices.Clone(template.SpawnPositions),
		Doorways:            copyDoorways(template.Doorways),
		ParentID:            node.ParentID(),
		ChildIDs:            slices.Clone(node.ChildIDs),
	}

	// The entrance is where the player starts
	if room.ParentID == "" {
		room.IsPreviouslyVisited = true
	}

	return room
}

// Bounds returns the room footprint in world coordinates
func (r *Room) Bounds() geometry.Bounds {
	return geometry.Bounds{Lower: r.LowerBounds, Upper: r.UpperBounds}
}

// MoveTo places the room's lower corner at lower, keeping the template size
func (r *Room) MoveTo(lower geometry.Point) {
	r.LowerBounds = lower
	r.UpperBounds = lower.Add(r.TemplateUpperBounds.Sub(r.TemplateLowerBounds))
}

// WorldOffset is the translation from template-local to world coordinates
func (r *Room) WorldOffset() geometry.Point {
	return r.LowerBounds.Sub(r.TemplateLowerBounds)
}

// DoorwayWorldPosition returns the world cell of doorway i
func (r *Room) DoorwayWorldPosition(i int) geometry.Point {
	return r.Doorways[i].Position.Add(r.WorldOffset())
}

// Overlaps reports whether the two rooms intersect on both axes
func (r *Room) Overlaps(other *Room) bool {
	return r.Bounds().Overlaps(other.Bounds())
}

// AvailableDoorways returns indexes of doorways neither connected nor unavailable
func (r *Room) AvailableDoorways() []int {
	var available []int
	for i := range r.Doorways {
		if r.Doorways[i].IsAvailable() {
			available = append(available, i)
		}
	}
	return available
}

// OppositeDoorway returns the index of the first doorway facing the
// opposite way to orientation, or -1 when there is none
func (r *Room) OppositeDoorway(orientation geometry.Orientation) int {
	for i := range r.Doorways {
		if r.Doorways[i].Orientation.IsOpposite(orientation) {
			return i
		}
	}
	return -1
}

// ConnectedDoorways counts doorways paired with another room
func (r *Room) ConnectedDoorways() int {
	count := 0
	for i := range r.Doorways {
		if r.Doorways[i].IsConnected {
			count++
		}
	}
	return count
}
