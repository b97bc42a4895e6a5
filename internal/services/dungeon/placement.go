package dungeon

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/dungeon-builder/internal/dice"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// placer runs one breadth-first placement attempt over a graph. Every
// attempt gets a fresh placer so no room or doorway state leaks between
// attempts.
type placer struct {
	graph   *dungeon.RoomGraph
	catalog *dungeon.Catalog
	roller  dice.Roller

	rooms   map[string]*dungeon.Room
	order   []string
	visited mapset.Set[string]
}

func newPlacer(graph *dungeon.RoomGraph, catalog *dungeon.Catalog, roller dice.Roller) *placer {
	return &placer{
		graph:   graph,
		catalog: catalog,
		roller:  roller,
		rooms:   make(map[string]*dungeon.Room, len(graph.Nodes)),
		visited: mapset.New[string](),
	}
}

// run places every node reachable from the entrance, parents before children
func (p *placer) run() error {
	entrance := p.graph.Entrance()
	if entrance == nil {
		return dnderr.NoEntranceNode(p.graph.ID)
	}

	queue := []*dungeon.RoomNode{entrance}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if p.visited.Has(node.ID) {
			return dnderr.Validationf("room graph '%s' reaches node '%s' twice", p.graph.ID, node.ID).
				WithMeta("graph_id", p.graph.ID).
				WithMeta("node_id", node.ID)
		}
		p.visited.Put(node.ID)
		queue = append(queue, p.graph.Children(node)...)

		if node.Type.IsEntrance() {
			if err := p.placeEntrance(node); err != nil {
				return err
			}
			continue
		}

		parent, ok := p.rooms[node.ParentID()]
		if !ok {
			return dnderr.Validationf("room '%s' has no placed parent", node.ID).
				WithMeta("graph_id", p.graph.ID).
				WithMeta("node_id", node.ID)
		}
		if err := p.placeRoom(node, parent); err != nil {
			return err
		}
	}

	if len(p.rooms) != len(p.graph.Nodes) {
		return dnderr.Validationf("room graph '%s' has %d nodes unreachable from the entrance",
			p.graph.ID, len(p.graph.Nodes)-len(p.rooms)).
			WithMeta("graph_id", p.graph.ID)
	}

	return nil
}

// placeEntrance puts the entrance at its template position
func (p *placer) placeEntrance(node *dungeon.RoomNode) error {
	template, err := p.catalog.RandomTemplate(p.roller, node.Type)
	if err != nil {
		return p.rollerFailure(err)
	}

	room := dungeon.NewRoom(template, node)
	p.accept(room)
	return nil
}

// placeRoom tries the parent's available doorways at random until the
// node fits or the parent has nothing left to offer
func (p *placer) placeRoom(node *dungeon.RoomNode, parent *dungeon.Room) error {
	for {
		available := parent.AvailableDoorways()
		if len(available) == 0 {
			return dnderr.NoViableParentDoorway(parent.ID, node.ID)
		}

		pick, err := dice.Pick(p.roller, len(available))
		if err != nil {
			return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to pick parent doorway")
		}
		parentDoorway := &parent.Doorways[available[pick]]

		template, err := p.catalog.TemplateFor(p.roller, node, parentDoorway.Orientation)
		if err != nil {
			return p.rollerFailure(err)
		}

		room := dungeon.NewRoom(template, node)
		if p.attach(parent, parentDoorway, room) {
			p.accept(room)
			return nil
		}

		// This doorway cannot take the room; never try it again this attempt
		parentDoorway.IsUnavailable = true
	}
}

// attach positions room against parentDoorway and connects both doorways
// when it fits without overlapping a placed room
func (p *placer) attach(parent *dungeon.Room, parentDoorway *dungeon.Doorway, room *dungeon.Room) bool {
	idx := room.OppositeDoorway(parentDoorway.Orientation)
	if idx < 0 {
		return false
	}
	doorway := &room.Doorways[idx]

	// The child's doorway cell sits one step beyond the parent's, in the
	// direction the parent doorway faces
	parentDoorWorld := parent.LowerBounds.Add(parentDoorway.Position).Sub(parent.TemplateLowerBounds)
	step := doorway.Orientation.Opposite().Unit()
	room.MoveTo(parentDoorWorld.Add(step).Add(room.TemplateLowerBounds).Sub(doorway.Position))

	if findOverlap(p.rooms, room) != nil {
		return false
	}

	parentDoorway.Connect()
	doorway.Connect()
	return true
}

func (p *placer) accept(room *dungeon.Room) {
	room.IsPositioned = true
	p.rooms[room.ID] = room
	p.order = append(p.order, room.ID)
}

// rollerFailure keeps TemplateNotFound as is and marks anything else from
// template selection as internal
func (p *placer) rollerFailure(err error) error {
	if dnderr.IsTemplateNotFound(err) {
		return err
	}
	return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to pick room template")
}
