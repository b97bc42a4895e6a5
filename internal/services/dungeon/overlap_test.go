package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
)

func box(id string, lower, upper geometry.Point, positioned bool) *dungeon.Room {
	return &dungeon.Room{
		ID:                  id,
		LowerBounds:         lower,
		UpperBounds:         upper,
		TemplateUpperBounds: upper.Sub(lower),
		IsPositioned:        positioned,
	}
}

func TestFindOverlap(t *testing.T) {
	placed := box("a", geometry.Pt(0, 0), geometry.Pt(4, 4), true)
	pending := box("b", geometry.Pt(10, 0), geometry.Pt(14, 4), false)
	rooms := map[string]*dungeon.Room{placed.ID: placed, pending.ID: pending}

	tests := []struct {
		name      string
		candidate *dungeon.Room
		want      *dungeon.Room
	}{
		{"touching edge is clear", box("c", geometry.Pt(5, 0), geometry.Pt(8, 4), false), nil},
		{"shared cell overlaps", box("c", geometry.Pt(4, 4), geometry.Pt(8, 8), false), placed},
		{"room never overlaps itself", box("a", geometry.Pt(1, 1), geometry.Pt(3, 3), true), nil},
		{"unpositioned rooms are ignored", box("c", geometry.Pt(11, 1), geometry.Pt(12, 2), false), nil},
		{"diagonal neighbour is clear", box("c", geometry.Pt(5, 5), geometry.Pt(6, 6), false), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findOverlap(rooms, tt.candidate))
		})
	}
}
