package dungeon

import (
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
)

// Settings bounds how hard the builder tries before giving up
type Settings struct {
	// MaxBuildAttempts is how many times a graph is picked from the level
	MaxBuildAttempts int `json:"max_build_attempts"`

	// MaxRebuildAttemptsForGraph is how many extra attempts one graph gets
	MaxRebuildAttemptsForGraph int `json:"max_rebuild_attempts_for_graph"`

	// MaxChildCorridors limits corridor branching when authoring graphs
	MaxChildCorridors int `json:"max_child_corridors"`
}

// DefaultSettings returns the stock retry limits
func DefaultSettings() Settings {
	return Settings{
		MaxBuildAttempts:           10,
		MaxRebuildAttemptsForGraph: 1000,
		MaxChildCorridors:          DefaultMaxChildCorridors,
	}
}

// MaxAttempts is the most traversals a single generation can run
func (s Settings) MaxAttempts() int {
	return s.MaxBuildAttempts * (s.MaxRebuildAttemptsForGraph + 1)
}

// Validate checks the limits guarantee termination with at least one attempt
func (s Settings) Validate() error {
	if s.MaxBuildAttempts < 1 {
		return dnderr.Validationf("max build attempts must be at least 1, got %d", s.MaxBuildAttempts)
	}
	if s.MaxRebuildAttemptsForGraph < 0 {
		return dnderr.Validationf("max rebuild attempts for graph cannot be negative, got %d", s.MaxRebuildAttemptsForGraph)
	}
	if s.MaxChildCorridors < 1 {
		return dnderr.Validationf("max child corridors must be at least 1, got %d", s.MaxChildCorridors)
	}
	return nil
}
