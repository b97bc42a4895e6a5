package dungeon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/KirkDiggler/dungeon-builder/internal/dice/mock"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
	"github.com/KirkDiggler/dungeon-builder/internal/testutils"
)

func TestNewCatalog_DuplicateFirstWins(t *testing.T) {
	first := testutils.CreateFourDoorTemplate("room-a", testutils.SmallRoom, 8, 8)
	second := testutils.CreateFourDoorTemplate("room-a", testutils.SmallRoom, 4, 4)

	catalog := dungeon.NewCatalog([]*dungeon.RoomTemplate{first, second, nil})

	assert.Same(t, first, catalog.Template("room-a"))
	assert.Len(t, catalog.Templates(), 1)
	assert.Len(t, catalog.Warnings(), 2)
	assert.Nil(t, catalog.Template("missing"))
}

func TestCatalog_RandomTemplate(t *testing.T) {
	catalog := dungeon.NewCatalog(testutils.CreateStandardTemplates())

	t.Run("picks among matching templates only", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller(2)

		template, err := catalog.RandomTemplate(roller, testutils.SmallRoom)
		require.NoError(t, err)
		assert.Equal(t, "small-room-2", template.ID)
	})

	t.Run("missing type is not found without rolling", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()

		template, err := catalog.RandomTemplate(roller, dungeon.NormalRoom("Chest Room"))
		assert.Nil(t, template)
		assert.True(t, dnderr.IsTemplateNotFound(err))
		assert.Equal(t, 0, roller.Used())
	})

	t.Run("roller failure is returned", func(t *testing.T) {
		_, err := catalog.RandomTemplate(mockdice.NewManualMockRoller(), dungeon.Entrance)
		assert.Error(t, err)
		assert.False(t, dnderr.IsTemplateNotFound(err))
	})
}

func TestCatalog_TemplateFor_CorridorAxis(t *testing.T) {
	catalog := dungeon.NewCatalog(testutils.CreateStandardTemplates())
	corridor := testutils.Node("corridor", dungeon.Corridor)

	tests := []struct {
		orientation geometry.Orientation
		want        dungeon.RoomType
	}{
		{geometry.North, dungeon.CorridorNS},
		{geometry.South, dungeon.CorridorNS},
		{geometry.East, dungeon.CorridorEW},
		{geometry.West, dungeon.CorridorEW},
	}

	for _, tt := range tests {
		t.Run(tt.orientation.String(), func(t *testing.T) {
			template, err := catalog.TemplateFor(mockdice.NewManualMockRoller(1), corridor, tt.orientation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, template.Type)
		})
	}

	room := testutils.Node("room", testutils.SmallRoom)
	template, err := catalog.TemplateFor(mockdice.NewManualMockRoller(1), room, geometry.North)
	require.NoError(t, err)
	assert.Equal(t, testutils.SmallRoom, template.Type)
}

func TestResolveType(t *testing.T) {
	assert.Equal(t, dungeon.BossRoom, dungeon.ResolveType(dungeon.BossRoom, geometry.East))
	assert.Equal(t, dungeon.CorridorNS, dungeon.ResolveType(dungeon.CorridorNS, geometry.East),
		"oriented corridors are already concrete")
	assert.Equal(t, dungeon.Corridor, dungeon.ResolveType(dungeon.Corridor, geometry.OrientationNone))
}
