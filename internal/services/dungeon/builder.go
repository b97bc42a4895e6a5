package dungeon

import (
	"context"
	"log"

	"github.com/KirkDiggler/dungeon-builder/internal/dice"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// BuilderConfig holds the builder's collaborators
type BuilderConfig struct {
	Settings *dungeon.Settings // Optional, defaults to dungeon.DefaultSettings()
	Roller   dice.Roller       // Optional, defaults to a clock seeded roller
	Logger   *log.Logger       // Optional, defaults to log.Default()
}

// Builder turns a level description into placed rooms
type Builder struct {
	settings dungeon.Settings
	roller   dice.Roller
	logger   *log.Logger
}

// Result is the outcome of Generate. Rooms is populated only on success;
// Attempts counts every traversal run, successful or not.
type Result struct {
	Success  bool
	GraphID  string
	Rooms    map[string]*dungeon.Room
	Order    []string
	Attempts int
	Catalog  *dungeon.Catalog
}

// Room returns a placed room by ID, or nil
func (r *Result) Room(id string) *dungeon.Room {
	if r == nil {
		return nil
	}
	return r.Rooms[id]
}

// Template returns a level template by ID, or nil
func (r *Result) Template(id string) *dungeon.RoomTemplate {
	if r == nil || r.Catalog == nil {
		return nil
	}
	return r.Catalog.Template(id)
}

// NewBuilder creates a builder. Invalid settings panic, like a missing
// required dependency would.
func NewBuilder(cfg *BuilderConfig) *Builder {
	if cfg == nil {
		cfg = &BuilderConfig{}
	}

	b := &Builder{
		settings: dungeon.DefaultSettings(),
		roller:   cfg.Roller,
		logger:   cfg.Logger,
	}

	if cfg.Settings != nil {
		if err := cfg.Settings.Validate(); err != nil {
			panic(err.Error())
		}
		b.settings = *cfg.Settings
	}
	if b.roller == nil {
		b.roller = dice.NewRandomRoller()
	}
	if b.logger == nil {
		b.logger = log.Default()
	}

	return b
}

// Generate picks graphs from the level and places them until one attempt
// succeeds. A graph is retried up to MaxRebuildAttemptsForGraph extra
// times before another pick; there are MaxBuildAttempts picks in total.
// Graphs without an entrance or failing validation are skipped without
// spending an attempt. A failed result is returned alongside the error so callers can see
// how many attempts were spent.
func (b *Builder) Generate(ctx context.Context, level *dungeon.Level) (*Result, error) {
	if level == nil {
		return nil, dnderr.InvalidArgument("level cannot be nil")
	}
	if len(level.Graphs) == 0 {
		return nil, dnderr.InvalidArgumentf("level '%s' has no room graphs", level.Name).
			WithMeta("level", level.Name)
	}

	catalog := dungeon.NewCatalog(level.Templates)
	for _, warning := range catalog.Warnings() {
		b.logger.Printf("[DungeonBuilder] Warning: level '%s': %s", level.Name, warning)
	}

	result := &Result{Catalog: catalog}
	var lastErr error

	for build := 0; build < b.settings.MaxBuildAttempts; build++ {
		if err := ctx.Err(); err != nil {
			return result, stopped(err, result.Attempts)
		}

		idx, err := dice.Pick(b.roller, len(level.Graphs))
		if err != nil {
			return result, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to pick room graph")
		}
		graph := level.Graphs[idx]
		if graph == nil || graph.Entrance() == nil {
			// Nothing to traverse, so no attempt is spent
			lastErr = dnderr.NoEntranceNode(graphID(graph))
			b.logger.Printf("[DungeonBuilder] Error: skipping graph '%s' in level '%s': no entrance node", graphID(graph), level.Name)
			continue
		}
		if err := graph.Validate(b.settings.MaxChildCorridors); err != nil {
			// Every attempt would fail the same way, so none are spent
			lastErr = err
			b.logger.Printf("[DungeonBuilder] Error: skipping graph '%s' in level '%s': %v", graph.ID, level.Name, err)
			continue
		}

		for rebuild := 0; rebuild <= b.settings.MaxRebuildAttemptsForGraph; rebuild++ {
			if err := ctx.Err(); err != nil {
				return result, stopped(err, result.Attempts)
			}

			result.Attempts++
			rooms, order, err := b.attempt(graph, catalog)
			if err == nil {
				result.Success = true
				result.GraphID = graph.ID
				result.Rooms = rooms
				result.Order = order
				b.logger.Printf("[DungeonBuilder] Built level '%s' from graph '%s' with %d rooms in %d attempts",
					level.Name, graph.ID, len(rooms), result.Attempts)
				return result, nil
			}

			if dnderr.IsInternal(err) {
				return result, err
			}
			lastErr = err
		}

		b.logger.Printf("[DungeonBuilder] Graph '%s' failed %d times, last error: %v",
			graph.ID, b.settings.MaxRebuildAttemptsForGraph+1, lastErr)
	}

	if result.Attempts == 0 && lastErr != nil {
		return result, lastErr
	}

	b.logger.Printf("[DungeonBuilder] Error: level '%s' not generated after %d attempts", level.Name, result.Attempts)
	exhausted := dnderr.GenerationExhausted(result.Attempts).WithMeta("level", level.Name)
	exhausted.Cause = lastErr
	return result, exhausted
}

// AttemptGraph runs a single placement attempt over graph. A failed
// attempt returns the reason and no rooms.
func (b *Builder) AttemptGraph(graph *dungeon.RoomGraph, catalog *dungeon.Catalog) (map[string]*dungeon.Room, error) {
	if graph == nil {
		return nil, dnderr.InvalidArgument("room graph cannot be nil")
	}
	if catalog == nil {
		return nil, dnderr.InvalidArgument("catalog cannot be nil")
	}

	rooms, _, err := b.attempt(graph, catalog)
	return rooms, err
}

func (b *Builder) attempt(graph *dungeon.RoomGraph, catalog *dungeon.Catalog) (map[string]*dungeon.Room, []string, error) {
	p := newPlacer(graph, catalog, b.roller)
	if err := p.run(); err != nil {
		return nil, nil, err
	}
	return p.rooms, p.order, nil
}

func stopped(err error, attempts int) error {
	return dnderr.WrapWithCode(err, dnderr.CodeDeadlineExceeded, "dungeon generation stopped").
		WithMeta("attempts", attempts)
}

func graphID(graph *dungeon.RoomGraph) string {
	if graph == nil {
		return ""
	}
	return graph.ID
}
