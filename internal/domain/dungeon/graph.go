package dungeon

import (
	"encoding/json"
	"slices"

	"github.com/zyedidia/generic/mapset"

	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// DefaultMaxChildCorridors is how many corridors may branch off one room
const DefaultMaxChildCorridors = 3

// RoomNode is a logical room slot in an authored layout
type RoomNode struct {
	ID        string   `json:"id"`
	Type      RoomType `json:"type"`
	ParentIDs []string `json:"parent_ids,omitempty"`
	ChildIDs  []string `json:"child_ids,omitempty"`
}

// ParentID returns the node's single parent, or "" for the entrance
func (n *RoomNode) ParentID() string {
	if len(n.ParentIDs) == 0 {
		return ""
	}
	return n.ParentIDs[0]
}

// RoomGraph is a directed tree of room nodes rooted at the entrance
type RoomGraph struct {
	ID    string      `json:"id"`
	Name  string      `json:"name,omitempty"`
	Nodes []*RoomNode `json:"nodes"`

	index map[string]*RoomNode
}

// NewRoomGraph creates a graph over the given nodes
func NewRoomGraph(id, name string, nodes ...*RoomNode) *RoomGraph {
	g := &RoomGraph{
		ID:    id,
		Name:  name,
		Nodes: nodes,
	}
	g.reindex()
	return g
}

func (g *RoomGraph) reindex() {
	g.index = make(map[string]*RoomNode, len(g.Nodes))
	for _, node := range g.Nodes {
		if node == nil {
			continue
		}
		if _, exists := g.index[node.ID]; !exists {
			g.index[node.ID] = node
		}
	}
}

// UnmarshalJSON decodes a graph and builds its node index
func (g *RoomGraph) UnmarshalJSON(data []byte) error {
	type plain RoomGraph
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*g = RoomGraph(decoded)
	g.reindex()
	return nil
}

// Node looks up a node by ID
func (g *RoomGraph) Node(id string) *RoomNode {
	if g.index != nil {
		return g.index[id]
	}
	for _, node := range g.Nodes {
		if node != nil && node.ID == id {
			return node
		}
	}
	return nil
}

// Entrance returns the entrance node, or nil when the graph has none
func (g *RoomGraph) Entrance() *RoomNode {
	for _, node := range g.Nodes {
		if node != nil && node.Type.IsEntrance() {
			return node
		}
	}
	return nil
}

// Children resolves the child IDs of n, in authored order
func (g *RoomGraph) Children(n *RoomNode) []*RoomNode {
	children := make([]*RoomNode, 0, len(n.ChildIDs))
	for _, id := range n.ChildIDs {
		if child := g.Node(id); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// AddNode appends a node, rejecting duplicate IDs
func (g *RoomGraph) AddNode(node *RoomNode) error {
	if node == nil || node.ID == "" {
		return dnderr.InvalidArgument("room node ID is required")
	}
	if g.Node(node.ID) != nil {
		return dnderr.AlreadyExistsf("room node '%s' already exists", node.ID).
			WithMeta("graph_id", g.ID)
	}

	g.Nodes = append(g.Nodes, node)
	if g.index == nil {
		g.reindex()
	} else {
		g.index[node.ID] = node
	}
	return nil
}

// CanConnect reports whether childID may become a child of parentID
// under the layout authoring rules.
func (g *RoomGraph) CanConnect(parentID, childID string, maxChildCorridors int) bool {
	parent := g.Node(parentID)
	child := g.Node(childID)
	if parent == nil || child == nil {
		return false
	}

	switch {
	case parentID == childID:
		return false
	case child.Type.IsUnassigned(), child.Type.IsEntrance():
		return false
	case child.Type.IsBossRoom() && g.hasConnectedBoss():
		return false
	case slices.Contains(parent.ChildIDs, childID):
		return false
	case slices.Contains(parent.ParentIDs, childID):
		return false
	case len(child.ParentIDs) > 0:
		return false
	case child.Type.IsAnyCorridor() && parent.Type.IsAnyCorridor():
		return false
	case child.Type.IsAnyCorridor() && len(parent.ChildIDs) >= maxChildCorridors:
		return false
	case !child.Type.IsAnyCorridor() && len(parent.ChildIDs) > 0:
		return false
	}

	return true
}

// Connect links parent to child when the authoring rules allow it
func (g *RoomGraph) Connect(parentID, childID string, maxChildCorridors int) error {
	if !g.CanConnect(parentID, childID, maxChildCorridors) {
		return dnderr.InvalidArgumentf("cannot connect room node '%s' to '%s'", parentID, childID).
			WithMeta("graph_id", g.ID)
	}

	parent := g.Node(parentID)
	child := g.Node(childID)
	parent.ChildIDs = append(parent.ChildIDs, childID)
	child.ParentIDs = append(child.ParentIDs, parentID)
	return nil
}

func (g *RoomGraph) hasConnectedBoss() bool {
	for _, node := range g.Nodes {
		if node != nil && node.Type.IsBossRoom() && len(node.ParentIDs) > 0 {
			return true
		}
	}
	return false
}

// Validate checks the whole graph is a tree the generator can walk:
// a single entrance, one parent per other node, symmetric links, every
// node reachable, and every edge allowed by the authoring rules.
func (g *RoomGraph) Validate(maxChildCorridors int) error {
	if len(g.Nodes) == 0 {
		return dnderr.Validationf("room graph '%s' has no nodes", g.ID).WithMeta("graph_id", g.ID)
	}

	ids := mapset.New[string]()
	var entrance *RoomNode
	bossParents := 0

	for _, node := range g.Nodes {
		if node == nil || node.ID == "" {
			return dnderr.Validationf("room graph '%s' has a node without an ID", g.ID).WithMeta("graph_id", g.ID)
		}
		if ids.Has(node.ID) {
			return g.invalid(node, "duplicate node ID")
		}
		ids.Put(node.ID)

		if node.Type.IsEntrance() {
			if entrance != nil {
				return g.invalid(node, "second entrance node")
			}
			entrance = node
			if len(node.ParentIDs) > 0 {
				return g.invalid(node, "entrance cannot have a parent")
			}
			continue
		}

		if len(node.ParentIDs) != 1 {
			return g.invalid(node, "node must have exactly one parent")
		}
		if node.Type.IsBossRoom() {
			bossParents++
		}
	}

	if entrance == nil {
		return dnderr.NoEntranceNode(g.ID)
	}
	if bossParents > 1 {
		return dnderr.Validationf("room graph '%s' connects more than one boss room", g.ID).WithMeta("graph_id", g.ID)
	}

	for _, node := range g.Nodes {
		if err := g.validateEdges(node, maxChildCorridors); err != nil {
			return err
		}
	}

	reached := mapset.New[string]()
	queue := []*RoomNode{entrance}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if reached.Has(node.ID) {
			return g.invalid(node, "node reached twice")
		}
		reached.Put(node.ID)
		queue = append(queue, g.Children(node)...)
	}
	if reached.Size() != ids.Size() {
		return dnderr.Validationf("room graph '%s' has %d nodes unreachable from the entrance",
			g.ID, ids.Size()-reached.Size()).WithMeta("graph_id", g.ID)
	}

	return nil
}

func (g *RoomGraph) validateEdges(node *RoomNode, maxChildCorridors int) error {
	for _, parentID := range node.ParentIDs {
		parent := g.Node(parentID)
		if parent == nil {
			return g.invalid(node, "parent '"+parentID+"' does not exist")
		}
		if !slices.Contains(parent.ChildIDs, node.ID) {
			return g.invalid(node, "parent '"+parentID+"' does not list it as a child")
		}
	}

	corridors := 0
	for i, childID := range node.ChildIDs {
		child := g.Node(childID)
		if child == nil {
			return g.invalid(node, "child '"+childID+"' does not exist")
		}
		if child.ParentID() != node.ID {
			return g.invalid(node, "child '"+childID+"' has a different parent")
		}
		if child.Type.IsUnassigned() {
			return g.invalid(child, "unassigned room type")
		}

		if child.Type.IsAnyCorridor() {
			if node.Type.IsAnyCorridor() {
				return g.invalid(child, "corridor connected to a corridor")
			}
			corridors++
			continue
		}

		// A room hangs off its parent only as the first child
		if i != 0 {
			return g.invalid(child, "room must be the first child of its parent")
		}
	}

	if corridors > 0 && len(node.ChildIDs) > maxChildCorridors {
		return g.invalid(node, "too many child corridors")
	}

	return nil
}

func (g *RoomGraph) invalid(node *RoomNode, reason string) error {
	return dnderr.Validationf("room graph '%s' node '%s': %s", g.ID, node.ID, reason).
		WithMeta("graph_id", g.ID).
		WithMeta("node_id", node.ID)
}
