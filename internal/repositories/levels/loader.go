package levels

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// LoadFile reads a level description from a JSON file and validates it.
// Graphs that break the authoring rules, including nodes with more than
// one parent, are rejected here so the generator never sees them.
func LoadFile(path string, maxChildCorridors int) (*dungeon.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to read level file '%s'", path).
			WithMeta("path", path)
	}

	return Parse(data, maxChildCorridors)
}

// Parse decodes and validates a JSON level description
func Parse(data []byte, maxChildCorridors int) (*dungeon.Level, error) {
	var level dungeon.Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to decode level")
	}

	warnings, err := level.Validate(maxChildCorridors)
	if err != nil {
		return nil, dnderr.Wrapf(err, "level '%s' is invalid", level.Name).
			WithMeta("level", level.Name)
	}
	for _, warning := range warnings {
		log.Printf("[Levels] Warning: %s", warning)
	}

	return &level, nil
}

// LoadDir loads every *.json file in dir, in name order
func LoadDir(dir string, maxChildCorridors int) ([]*dungeon.Level, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list level files in '%s'", dir)
	}
	sort.Strings(paths)

	levels := make([]*dungeon.Level, 0, len(paths))
	for _, path := range paths {
		level, err := LoadFile(path, maxChildCorridors)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	return levels, nil
}
