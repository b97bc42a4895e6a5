package testutils

import (
	"fmt"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
)

// SmallRoom is the normal room type used across fixtures
var SmallRoom = dungeon.NormalRoom("Small Room")

// Door creates a template doorway at x,y facing o
func Door(x, y int, o geometry.Orientation) dungeon.Doorway {
	return dungeon.Doorway{
		Position:    geometry.Pt(x, y),
		Orientation: o,
	}
}

// CreateTestTemplate creates a template with its lower corner at the origin
func CreateTestTemplate(id string, roomType dungeon.RoomType, width, height int, doorways ...dungeon.Doorway) *dungeon.RoomTemplate {
	return &dungeon.RoomTemplate{
		ID:          id,
		Name:        id,
		Type:        roomType,
		LowerBounds: geometry.Pt(0, 0),
		UpperBounds: geometry.Pt(width-1, height-1),
		Doorways:    doorways,
		SpawnPositions: []geometry.Point{
			geometry.Pt(width/2, height/2),
		},
		Asset: "prefabs/" + id,
	}
}

// CreateFourDoorTemplate creates a template with a doorway centred on every side
func CreateFourDoorTemplate(id string, roomType dungeon.RoomType, width, height int) *dungeon.RoomTemplate {
	return CreateTestTemplate(id, roomType, width, height,
		Door(width/2, height-1, geometry.North),
		Door(width/2, 0, geometry.South),
		Door(width-1, height/2, geometry.East),
		Door(0, height/2, geometry.West),
	)
}

// CreateStandardTemplates returns a template set covering every room type
func CreateStandardTemplates() []*dungeon.RoomTemplate {
	return []*dungeon.RoomTemplate{
		CreateFourDoorTemplate("entrance-1", dungeon.Entrance, 10, 10),
		CreateTestTemplate("corridor-ns-1", dungeon.CorridorNS, 3, 6,
			Door(1, 5, geometry.North),
			Door(1, 0, geometry.South),
		),
		CreateTestTemplate("corridor-ew-1", dungeon.CorridorEW, 6, 3,
			Door(5, 1, geometry.East),
			Door(0, 1, geometry.West),
		),
		CreateFourDoorTemplate("small-room-1", SmallRoom, 8, 8),
		CreateFourDoorTemplate("small-room-2", SmallRoom, 6, 10),
		CreateFourDoorTemplate("boss-1", dungeon.BossRoom, 12, 12),
	}
}

// Node creates a graph node; link nodes with Link
func Node(id string, roomType dungeon.RoomType) *dungeon.RoomNode {
	return &dungeon.RoomNode{ID: id, Type: roomType}
}

// Link records parent -> child on both nodes without rule checks
func Link(parent, child *dungeon.RoomNode) {
	parent.ChildIDs = append(parent.ChildIDs, child.ID)
	child.ParentIDs = append(child.ParentIDs, parent.ID)
}

// CreateLinearGraph creates entrance -> corridor -> small room
func CreateLinearGraph(id string) *dungeon.RoomGraph {
	entrance := Node("entrance", dungeon.Entrance)
	corridor := Node("corridor-1", dungeon.Corridor)
	room := Node("room-1", SmallRoom)
	Link(entrance, corridor)
	Link(corridor, room)

	return dungeon.NewRoomGraph(id, "linear", entrance, corridor, room)
}

// CreateBranchingGraph creates an entrance with three corridor branches,
// two of which continue through a second corridor, ending in a boss room
func CreateBranchingGraph(id string) *dungeon.RoomGraph {
	entrance := Node("entrance", dungeon.Entrance)
	nodes := []*dungeon.RoomNode{entrance}

	rooms := make([]*dungeon.RoomNode, 3)
	for i := range rooms {
		corridor := Node(fmt.Sprintf("corridor-%d", i+1), dungeon.Corridor)
		rooms[i] = Node(fmt.Sprintf("room-%d", i+1), SmallRoom)
		Link(entrance, corridor)
		Link(corridor, rooms[i])
		nodes = append(nodes, corridor, rooms[i])
	}

	deep := Node("corridor-4", dungeon.Corridor)
	deepRoom := Node("room-4", SmallRoom)
	Link(rooms[0], deep)
	Link(deep, deepRoom)

	bossCorridor := Node("corridor-5", dungeon.Corridor)
	boss := Node("boss", dungeon.BossRoom)
	Link(rooms[1], bossCorridor)
	Link(bossCorridor, boss)

	nodes = append(nodes, deep, deepRoom, bossCorridor, boss)
	return dungeon.NewRoomGraph(id, "branching", nodes...)
}

// CreateTestLevel creates a level with the standard templates and a branching graph
func CreateTestLevel(name string) *dungeon.Level {
	return &dungeon.Level{
		Name:      name,
		Graphs:    []*dungeon.RoomGraph{CreateBranchingGraph(name + "-graph")},
		Templates: CreateStandardTemplates(),
	}
}

// CreateLinearLevel creates a level where entrance, corridor and room each
// have exactly one template and one usable doorway, so six rolls of 1
// (graph, entrance template, doorway, template, doorway, template) build it.
func CreateLinearLevel(name string) *dungeon.Level {
	return &dungeon.Level{
		Name:   name,
		Graphs: []*dungeon.RoomGraph{CreateLinearGraph(name + "-graph")},
		Templates: []*dungeon.RoomTemplate{
			CreateTestTemplate("entrance-north", dungeon.Entrance, 10, 10, Door(5, 9, geometry.North)),
			CreateTestTemplate("corridor-ns-1", dungeon.CorridorNS, 3, 6,
				Door(1, 5, geometry.North),
				Door(1, 0, geometry.South),
			),
			CreateTestTemplate("room-south", SmallRoom, 8, 8, Door(4, 0, geometry.South)),
		},
	}
}

// CreateInwardTemplate creates a template whose doorways sit on the far
// edge from the way they face, so anything attached through them folds
// back over the room itself
func CreateInwardTemplate(id string, roomType dungeon.RoomType) *dungeon.RoomTemplate {
	return CreateTestTemplate(id, roomType, 5, 5,
		Door(2, 0, geometry.North),
		Door(2, 4, geometry.South),
	)
}

// CreateOverlappingLevel creates a level in which every placement overlaps
func CreateOverlappingLevel(name string) *dungeon.Level {
	entrance := Node("entrance", dungeon.Entrance)
	room := Node("room-1", SmallRoom)
	Link(entrance, room)

	return &dungeon.Level{
		Name:   name,
		Graphs: []*dungeon.RoomGraph{dungeon.NewRoomGraph(name+"-graph", "overlapping", entrance, room)},
		Templates: []*dungeon.RoomTemplate{
			CreateInwardTemplate("entrance-inward", dungeon.Entrance),
			CreateInwardTemplate("room-inward", SmallRoom),
		},
	}
}

// CreateTestLayout creates a stored layout for levelName with an entrance
// and one room attached to its north doorway
func CreateTestLayout(id, levelName string) *dungeon.Layout {
	entrance := dungeon.NewRoom(
		CreateTestTemplate("entrance-north", dungeon.Entrance, 10, 10, Door(5, 9, geometry.North)),
		Node("entrance", dungeon.Entrance),
	)
	entrance.IsPositioned = true
	entrance.Doorways[0].Connect()
	entrance.ChildIDs = []string{"room-1"}

	room := dungeon.NewRoom(
		CreateTestTemplate("room-south", SmallRoom, 8, 8, Door(4, 0, geometry.South)),
		&dungeon.RoomNode{ID: "room-1", Type: SmallRoom, ParentIDs: []string{"entrance"}},
	)
	room.MoveTo(geometry.Pt(1, 10))
	room.IsPositioned = true
	room.Doorways[0].Connect()

	return &dungeon.Layout{
		ID:        id,
		LevelName: levelName,
		GraphID:   levelName + "-graph",
		Seed:      42,
		Attempts:  1,
		Rooms: map[string]*dungeon.Room{
			entrance.ID: entrance,
			room.ID:     room,
		},
		Order: []string{entrance.ID, room.ID},
	}
}
