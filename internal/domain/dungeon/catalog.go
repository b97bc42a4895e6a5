package dungeon

import (
	"fmt"

	"github.com/KirkDiggler/dungeon-builder/internal/dice"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/geometry"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// Catalog is a read-only lookup over a level's room templates
type Catalog struct {
	templates []*RoomTemplate
	byID      map[string]*RoomTemplate
	warnings  []string
}

// NewCatalog indexes templates by ID. A duplicate ID is recorded as a
// warning and the first occurrence wins.
func NewCatalog(templates []*RoomTemplate) *Catalog {
	c := &Catalog{
		byID: make(map[string]*RoomTemplate, len(templates)),
	}

	for i, template := range templates {
		if template == nil {
			c.warnings = append(c.warnings, fmt.Sprintf("room template %d is empty", i))
			continue
		}
		if _, exists := c.byID[template.ID]; exists {
			c.warnings = append(c.warnings, fmt.Sprintf("room template already exists: %s", template.ID))
			continue
		}
		c.byID[template.ID] = template
		c.templates = append(c.templates, template)
	}

	return c
}

// Template returns the template with the given ID, or nil
func (c *Catalog) Template(id string) *RoomTemplate {
	return c.byID[id]
}

// Templates returns the indexed templates in load order
func (c *Catalog) Templates() []*RoomTemplate {
	return c.templates
}

// Warnings returns problems found while loading
func (c *Catalog) Warnings() []string {
	return c.warnings
}

// RandomTemplate picks uniformly among templates of the requested type.
// Having none is an expected outcome reported as TemplateNotFound.
func (c *Catalog) RandomTemplate(roller dice.Roller, roomType RoomType) (*RoomTemplate, error) {
	var matching []*RoomTemplate
	for _, template := range c.templates {
		if template.Type == roomType {
			matching = append(matching, template)
		}
	}

	if len(matching) == 0 {
		return nil, dnderr.TemplateNotFound(roomType.String())
	}

	idx, err := dice.Pick(roller, len(matching))
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to pick room template")
	}

	return matching[idx], nil
}

// TemplateFor picks a template for node when attaching through a parent
// doorway facing parentOrientation
func (c *Catalog) TemplateFor(roller dice.Roller, node *RoomNode, parentOrientation geometry.Orientation) (*RoomTemplate, error) {
	return c.RandomTemplate(roller, ResolveType(node.Type, parentOrientation))
}

// ResolveType turns a generic corridor into the corridor running along
// the parent doorway's axis. Every other type resolves to itself.
func ResolveType(roomType RoomType, parentOrientation geometry.Orientation) RoomType {
	if !roomType.IsCorridor() {
		return roomType
	}

	switch {
	case parentOrientation.IsVertical():
		return CorridorNS
	case parentOrientation.IsHorizontal():
		return CorridorEW
	default:
		return roomType
	}
}
