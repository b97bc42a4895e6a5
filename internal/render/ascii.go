// Package render draws generated layouts as text for terminals and logs
package render

import (
	"strings"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
)

const (
	cellEmpty         = ' '
	cellEntrance      = 'E'
	cellCorridor      = '.'
	cellRoom          = '#'
	cellBoss          = 'B'
	cellDoorConnected = '+'
	cellDoorSealed    = '|'
)

// ASCII renders every room of the layout, north at the top. Connected
// doorways are drawn as '+', doorways left sealed as '|'.
func ASCII(layout *dungeon.Layout) string {
	if layout == nil || len(layout.Rooms) == 0 {
		return ""
	}

	bounds := layout.Bounds()
	size := bounds.Size()
	grid := make([][]rune, size.Y)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(string(cellEmpty), size.X))
	}

	set := func(p geometry.Point, c rune) {
		if !bounds.Contains(p) {
			return
		}
		// Row 0 is the northernmost line
		grid[bounds.Upper.Y-p.Y][p.X-bounds.Lower.X] = c
	}

	for _, id := range drawOrder(layout) {
		room := layout.Rooms[id]
		fill := cellFor(room.Type)
		for y := room.LowerBounds.Y; y <= room.UpperBounds.Y; y++ {
			for x := room.LowerBounds.X; x <= room.UpperBounds.X; x++ {
				set(geometry.Pt(x, y), fill)
			}
		}
		for i, doorway := range room.Doorways {
			if doorway.IsConnected {
				set(room.DoorwayWorldPosition(i), cellDoorConnected)
			} else {
				set(room.DoorwayWorldPosition(i), cellDoorSealed)
			}
		}
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(strings.TrimRight(string(line), string(cellEmpty)))
		b.WriteByte('\n')
	}
	return b.String()
}

// drawOrder follows placement order, then any rooms it does not list
func drawOrder(layout *dungeon.Layout) []string {
	order := make([]string, 0, len(layout.Rooms))
	seen := make(map[string]bool, len(layout.Rooms))
	for _, id := range layout.Order {
		if _, ok := layout.Rooms[id]; ok && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for id := range layout.Rooms {
		if !seen[id] {
			order = append(order, id)
		}
	}
	return order
}

func cellFor(roomType dungeon.RoomType) rune {
	switch {
	case roomType.IsEntrance():
		return cellEntrance
	case roomType.IsAnyCorridor():
		return cellCorridor
	case roomType.IsBossRoom():
		return cellBoss
	default:
		return cellRoom
	}
}
