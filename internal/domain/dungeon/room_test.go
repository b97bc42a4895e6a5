package dungeon_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
	"github.com/KirkDiggler/dungeon-builder/internal/testutils"
)

func TestNewRoom_CopiesDoorways(t *testing.T) {
	template := testutils.CreateFourDoorTemplate("room-a", testutils.SmallRoom, 8, 8)
	node := testutils.Node("room-1", testutils.SmallRoom)
	node.ParentIDs = []string{"corridor-1"}

	first := dungeon.NewRoom(template, node)
	second := dungeon.NewRoom(template, node)

	first.Doorways[0].Connect()
	first.Doorways[1].IsUnavailable = true

	assert.False(t, template.Doorways[0].IsConnected, "template doorways are master data")
	assert.False(t, template.Doorways[1].IsUnavailable)
	assert.True(t, second.Doorways[0].IsAvailable())
	assert.Equal(t, []int{2, 3}, first.AvailableDoorways())
	assert.Equal(t, 1, first.ConnectedDoorways())

	assert.Equal(t, "corridor-1", first.ParentID)
	assert.False(t, first.IsPreviouslyVisited)
	assert.False(t, first.IsPositioned)
}

func TestNewRoom_EntranceStartsVisited(t *testing.T) {
	template := testutils.CreateFourDoorTemplate("entrance-1", dungeon.Entrance, 10, 10)
	room := dungeon.NewRoom(template, testutils.Node("entrance", dungeon.Entrance))

	assert.Empty(t, room.ParentID)
	assert.True(t, room.IsPreviouslyVisited)
	assert.Equal(t, template.LowerBounds, room.LowerBounds)
	assert.Equal(t, template.UpperBounds, room.UpperBounds)
}

func TestRoom_MoveTo(t *testing.T) {
	template := testutils.CreateFourDoorTemplate("room-a", testutils.SmallRoom, 8, 6)
	template.LowerBounds = geometry.Pt(-2, -1)
	template.UpperBounds = geometry.Pt(5, 4)
	room := dungeon.NewRoom(template, testutils.Node("room-1", testutils.SmallRoom))

	room.MoveTo(geometry.Pt(10, 20))

	assert.Equal(t, geometry.Pt(17, 25), room.UpperBounds)
	assert.Equal(t, room.UpperBounds.Sub(room.LowerBounds), room.TemplateUpperBounds.Sub(room.TemplateLowerBounds))
	assert.Equal(t, geometry.Pt(12, 21), room.WorldOffset())
	assert.Equal(t, room.Doorways[1].Position.Add(geometry.Pt(12, 21)), room.DoorwayWorldPosition(1))
}

func TestRoom_OppositeDoorway(t *testing.T) {
	template := testutils.CreateTestTemplate("room-a", testutils.SmallRoom, 5, 5,
		testutils.Door(2, 4, geometry.North),
		testutils.Door(4, 2, geometry.East),
	)
	room := dungeon.NewRoom(template, testutils.Node("room-1", testutils.SmallRoom))

	assert.Equal(t, 0, room.OppositeDoorway(geometry.South))
	assert.Equal(t, 1, room.OppositeDoorway(geometry.West))
	assert.Equal(t, -1, room.OppositeDoorway(geometry.North))
}

func TestRoom_Overlaps(t *testing.T) {
	template := testutils.CreateFourDoorTemplate("room-a", testutils.SmallRoom, 5, 5)
	a := dungeon.NewRoom(template, testutils.Node("a", testutils.SmallRoom))
	b := dungeon.NewRoom(template, testutils.Node("b", testutils.SmallRoom))

	b.MoveTo(geometry.Pt(4, 4))
	assert.True(t, a.Overlaps(b))

	b.MoveTo(geometry.Pt(5, 0))
	assert.False(t, a.Overlaps(b))
}

func TestRoomType_JSON(t *testing.T) {
	var roomType dungeon.RoomType
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"entrance","name":"Front Door"}`), &roomType))
	assert.Equal(t, dungeon.Entrance, roomType, "fixed kinds use canonical names")

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"normal","name":"Small Room"}`), &roomType))
	assert.Equal(t, testutils.SmallRoom, roomType)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"normal"}`), &roomType))
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"cellar"}`), &roomType))

	data, err := json.Marshal(dungeon.CorridorEW)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"corridor_ew","name":"Corridor EW"}`, string(data))
}

func TestRoomType_Flags(t *testing.T) {
	assert.True(t, dungeon.Corridor.IsAnyCorridor())
	assert.True(t, dungeon.CorridorNS.IsAnyCorridor())
	assert.False(t, dungeon.CorridorNS.IsCorridor())
	assert.False(t, dungeon.Entrance.IsAnyCorridor())
	assert.True(t, dungeon.BossRoom.IsBossRoom())
	assert.True(t, testutils.SmallRoom.IsNormal())
	assert.NotEqual(t, testutils.SmallRoom, dungeon.NormalRoom("Large Room"))
}
