package dungeon

import (
	"fmt"

	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// Level bundles the candidate layouts and the templates that may fill them
type Level struct {
	Name      string          `json:"name"`
	Graphs    []*RoomGraph    `json:"graphs"`
	Templates []*RoomTemplate `json:"templates"`
}

// Validate checks the level can be generated at all and reports template
// coverage gaps as warnings. Gaps only surface as TemplateNotFound during
// generation, so they are not fatal here.
func (l *Level) Validate(maxChildCorridors int) ([]string, error) {
	if len(l.Graphs) == 0 {
		return nil, dnderr.Validationf("level '%s' has no room graphs", l.Name).WithMeta("level", l.Name)
	}
	if len(l.Templates) == 0 {
		return nil, dnderr.Validationf("level '%s' has no room templates", l.Name).WithMeta("level", l.Name)
	}

	for _, template := range l.Templates {
		if template == nil {
			return nil, dnderr.Validationf("level '%s' has an empty template entry", l.Name).WithMeta("level", l.Name)
		}
		if err := template.Validate(); err != nil {
			return nil, dnderr.Wrapf(err, "level '%s'", l.Name)
		}
	}

	for _, graph := range l.Graphs {
		if graph == nil {
			return nil, dnderr.Validationf("level '%s' has an empty graph entry", l.Name).WithMeta("level", l.Name)
		}
		if err := graph.Validate(maxChildCorridors); err != nil {
			return nil, dnderr.Wrapf(err, "level '%s'", l.Name)
		}
	}

	var warnings []string
	for _, required := range []RoomType{Entrance, CorridorNS, CorridorEW} {
		if !l.hasTemplate(required) {
			warnings = append(warnings, fmt.Sprintf("level '%s' has no '%s' template", l.Name, required))
		}
	}

	for _, graph := range l.Graphs {
		for _, node := range graph.Nodes {
			if node.Type.IsEntrance() || node.Type.IsAnyCorridor() || node.Type.IsUnassigned() {
				continue
			}
			if !l.hasTemplate(node.Type) {
				warnings = append(warnings, fmt.Sprintf("level '%s' graph '%s' needs a '%s' template",
					l.Name, graph.ID, node.Type))
			}
		}
	}

	return warnings, nil
}

func (l *Level) hasTemplate(roomType RoomType) bool {
	for _, template := range l.Templates {
		if template != nil && template.Type == roomType {
			return true
		}
	}
	return false
}
