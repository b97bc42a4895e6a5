package dungeon

import (
	"slices"
	"time"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
)

// Layout is a successful generation: every graph node placed as a room
type Layout struct {
	ID        string           `json:"id"`
	LevelName string           `json:"level_name"`
	GraphID   string           `json:"graph_id"`
	Seed      int64            `json:"seed"`
	Attempts  int              `json:"attempts"`
	Rooms     map[string]*Room `json:"rooms"`
	// Order lists room IDs in the order they were placed
	Order     []string  `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// Room returns the placed room with the given ID, or nil
func (l *Layout) Room(id string) *Room {
	return l.Rooms[id]
}

// Entrance returns the room with no parent
func (l *Layout) Entrance() *Room {
	for _, room := range l.Rooms {
		if room.ParentID == "" {
			return room
		}
	}
	return nil
}

// Bounds returns the extent covering every room
func (l *Layout) Bounds() geometry.Bounds {
	var bounds geometry.Bounds
	first := true
	for _, room := range l.Rooms {
		if first {
			bounds = room.Bounds()
			first = false
			continue
		}
		bounds = bounds.Union(room.Bounds())
	}
	return bounds
}

// Clone returns a copy that shares no mutable state with l
func (l *Layout) Clone() *Layout {
	clone := *l
	clone.Order = slices.Clone(l.Order)
	clone.Rooms = make(map[string]*Room, len(l.Rooms))
	for id, room := range l.Rooms {
		clone.Rooms[id] = room.Clone()
	}
	return &clone
}

// Clone returns a copy of the room with its own doorway state
func (r *Room) Clone() *Room {
	clone := *r
	clone.SpawnPositions = slices.Clone(r.SpawnPositions)
	clone.Doorways = copyDoorways(r.Doorways)
	clone.ChildIDs = slices.Clone(r.ChildIDs)
	return &clone
}
