package dungeon

import "github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"

// findOverlap returns a positioned room other than candidate that
// intersects it, or nil. Rooms that are not positioned yet are skipped.
func findOverlap(rooms map[string]*dungeon.Room, candidate *dungeon.Room) *dungeon.Room {
	for _, room := range rooms {
		if room.ID == candidate.ID || !room.IsPositioned {
			continue
		}
		if room.Overlaps(candidate) {
			return room
		}
	}
	return nil
}
