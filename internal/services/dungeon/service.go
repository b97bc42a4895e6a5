package dungeon

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dungeon-builder/internal/dice"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
	"github.com/KirkDiggler/dungeon-builder/internal/events"
	"github.com/KirkDiggler/dungeon-builder/internal/repositories/layouts"
	"github.com/KirkDiggler/dungeon-builder/internal/repositories/levels"
	"github.com/KirkDiggler/dungeon-builder/internal/uuid"
)

// Repository is an alias for the layout repository interface
type Repository = layouts.Repository

// Service defines the dungeon generation service interface
type Service interface {
	// GenerateDungeon builds and stores a layout for a level
	GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error)

	// GenerateBatch builds one layout per requested level concurrently
	GenerateBatch(ctx context.Context, input *GenerateBatchInput) (*GenerateBatchOutput, error)

	// GetLayout retrieves a stored layout
	GetLayout(ctx context.Context, layoutID string) (*dungeon.Layout, error)

	// ListLayouts retrieves every stored layout for a level
	ListLayouts(ctx context.Context, levelName string) ([]*dungeon.Layout, error)

	// GetRoom retrieves one placed room of a layout
	GetRoom(ctx context.Context, layoutID, roomID string) (*dungeon.Room, error)

	// GetTemplate retrieves a room template of a level
	GetTemplate(ctx context.Context, levelName, templateID string) (*dungeon.RoomTemplate, error)

	// UpdateRoomState records gameplay progress on a placed room
	UpdateRoomState(ctx context.Context, input *UpdateRoomStateInput) (*dungeon.Room, error)

	// DeleteLayout removes a stored layout
	DeleteLayout(ctx context.Context, layoutID string) error
}

// GenerateDungeonInput selects the level and, optionally, the seed
type GenerateDungeonInput struct {
	LevelName string
	// Seed makes generation reproducible; zero picks one from the clock
	Seed int64
}

// GenerateDungeonOutput carries the stored layout
type GenerateDungeonOutput struct {
	Layout   *dungeon.Layout
	Warnings []string
}

// GenerateBatchInput lists the levels to generate
type GenerateBatchInput struct {
	LevelNames []string
	// Seed is the base seed; level i uses Seed+i. Zero picks one from the clock.
	Seed int64
}

// GenerateBatchOutput carries one layout per level, in request order
type GenerateBatchOutput struct {
	Layouts []*dungeon.Layout
}

// UpdateRoomStateInput sets gameplay flags; nil fields are left alone
type UpdateRoomStateInput struct {
	LayoutID            string
	RoomID              string
	IsLit               *bool
	IsClearedOfEnemies  *bool
	IsPreviouslyVisited *bool
}

// service implements the Service interface
type service struct {
	repository Repository
	levels     levels.Repository
	settings   dungeon.Settings
	timeout    time.Duration

	uuidGenerator uuid.Generator
	eventBus      *events.Bus
	logger        *log.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository        // Required
	Levels        levels.Repository // Required
	Settings      *dungeon.Settings // Optional
	Timeout       time.Duration     // Optional, zero means no limit
	UUIDGenerator uuid.Generator    // Optional
	EventBus      *events.Bus       // Optional
	Logger        *log.Logger       // Optional
}

// NewService creates a new dungeon service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Levels == nil {
		panic("levels repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		levels:        cfg.Levels,
		settings:      dungeon.DefaultSettings(),
		timeout:       cfg.Timeout,
		uuidGenerator: cfg.UUIDGenerator,
		eventBus:      cfg.EventBus,
		logger:        cfg.Logger,
	}

	if cfg.Settings != nil {
		if err := cfg.Settings.Validate(); err != nil {
			panic(err.Error())
		}
		svc.settings = *cfg.Settings
	}

	// Use provided UUID generator or create default
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.logger == nil {
		svc.logger = log.Default()
	}

	return svc
}

// GenerateDungeon builds a layout for the level and stores it
func (s *service) GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.LevelName == "" {
		return nil, dnderr.InvalidArgument("level name is required")
	}

	seed := input.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return s.generate(ctx, input.LevelName, seed)
}

// generate builds and stores a layout with exactly the given seed
func (s *service) generate(ctx context.Context, levelName string, seed int64) (*GenerateDungeonOutput, error) {
	level, err := s.levels.Get(ctx, levelName)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get level '%s'", levelName).
			WithMeta("level", levelName)
	}

	warnings, err := level.Validate(s.settings.MaxChildCorridors)
	if err != nil {
		return nil, dnderr.Wrapf(err, "level '%s' cannot be generated", levelName)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	builder := NewBuilder(&BuilderConfig{
		Settings: &s.settings,
		Roller:   dice.NewSeededRoller(seed),
		Logger:   s.logger,
	})

	result, err := builder.Generate(ctx, level)
	if err != nil {
		attempts := 0
		if result != nil {
			attempts = result.Attempts
		}
		s.emit(events.NewGenerationFailedEvent(level.Name, seed, err))
		return nil, dnderr.Wrapf(err, "failed to generate level '%s'", levelName).
			WithMeta("level", levelName).
			WithMeta("seed", seed).
			WithMeta("attempts", attempts)
	}

	layout := &dungeon.Layout{
		ID:        s.uuidGenerator.New(),
		LevelName: level.Name,
		GraphID:   result.GraphID,
		Seed:      seed,
		Attempts:  result.Attempts,
		Rooms:     result.Rooms,
		Order:     result.Order,
	}

	if err := s.repository.Create(ctx, layout); err != nil {
		return nil, dnderr.Wrap(err, "failed to store layout").
			WithMeta("layout_id", layout.ID)
	}

	s.emit(events.NewLayoutGeneratedEvent(layout, warnings))

	return &GenerateDungeonOutput{
		Layout:   layout,
		Warnings: warnings,
	}, nil
}

// GenerateBatch generates every requested level concurrently. Each level
// gets its own roller, so results do not depend on scheduling.
func (s *service) GenerateBatch(ctx context.Context, input *GenerateBatchInput) (*GenerateBatchOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if len(input.LevelNames) == 0 {
		return nil, dnderr.InvalidArgument("at least one level name is required")
	}

	base := input.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	generated := make([]*dungeon.Layout, len(input.LevelNames))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range input.LevelNames {
		g.Go(func() error {
			if name == "" {
				return dnderr.InvalidArgument("level name is required")
			}

			// Derived seeds are used as is, even when one lands on zero
			output, err := s.generate(ctx, name, base+int64(i))
			if err != nil {
				return err
			}
			generated[i] = output.Layout
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GenerateBatchOutput{Layouts: generated}, nil
}

// GetLayout retrieves a stored layout
func (s *service) GetLayout(ctx context.Context, layoutID string) (*dungeon.Layout, error) {
	if layoutID == "" {
		return nil, dnderr.InvalidArgument("layout ID is required")
	}

	layout, err := s.repository.Get(ctx, layoutID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get layout '%s'", layoutID).
			WithMeta("layout_id", layoutID)
	}

	return layout, nil
}

// ListLayouts retrieves every stored layout for a level
func (s *service) ListLayouts(ctx context.Context, levelName string) ([]*dungeon.Layout, error) {
	if levelName == "" {
		return nil, dnderr.InvalidArgument("level name is required")
	}

	list, err := s.repository.ListByLevel(ctx, levelName)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list layouts for level '%s'", levelName).
			WithMeta("level", levelName)
	}

	return list, nil
}

// GetRoom retrieves one placed room of a layout
func (s *service) GetRoom(ctx context.Context, layoutID, roomID string) (*dungeon.Room, error) {
	if roomID == "" {
		return nil, dnderr.InvalidArgument("room ID is required")
	}

	layout, err := s.GetLayout(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	room := layout.Room(roomID)
	if room == nil {
		return nil, dnderr.NotFoundf("room '%s' not found in layout '%s'", roomID, layoutID).
			WithMeta("layout_id", layoutID).
			WithMeta("room_id", roomID)
	}

	return room, nil
}

// GetTemplate retrieves a room template of a level
func (s *service) GetTemplate(ctx context.Context, levelName, templateID string) (*dungeon.RoomTemplate, error) {
	if templateID == "" {
		return nil, dnderr.InvalidArgument("template ID is required")
	}

	level, err := s.levels.Get(ctx, levelName)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get level '%s'", levelName).
			WithMeta("level", levelName)
	}

	template := dungeon.NewCatalog(level.Templates).Template(templateID)
	if template == nil {
		return nil, dnderr.NotFoundf("template '%s' not found in level '%s'", templateID, levelName).
			WithMeta("level", levelName).
			WithMeta("template_id", templateID)
	}

	return template, nil
}

// UpdateRoomState records gameplay progress on a placed room
func (s *service) UpdateRoomState(ctx context.Context, input *UpdateRoomStateInput) (*dungeon.Room, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.RoomID == "" {
		return nil, dnderr.InvalidArgument("room ID is required")
	}

	layout, err := s.GetLayout(ctx, input.LayoutID)
	if err != nil {
		return nil, err
	}

	room := layout.Room(input.RoomID)
	if room == nil {
		return nil, dnderr.NotFoundf("room '%s' not found in layout '%s'", input.RoomID, input.LayoutID).
			WithMeta("layout_id", input.LayoutID).
			WithMeta("room_id", input.RoomID)
	}

	if input.IsLit != nil {
		room.IsLit = *input.IsLit
	}
	if input.IsClearedOfEnemies != nil {
		room.IsClearedOfEnemies = *input.IsClearedOfEnemies
	}
	if input.IsPreviouslyVisited != nil {
		room.IsPreviouslyVisited = *input.IsPreviouslyVisited
	}

	if err := s.repository.Update(ctx, layout); err != nil {
		return nil, dnderr.Wrap(err, "failed to update layout").
			WithMeta("layout_id", layout.ID)
	}

	s.emit(events.NewRoomStateChangedEvent(layout, room))

	return room, nil
}

// DeleteLayout removes a stored layout
func (s *service) DeleteLayout(ctx context.Context, layoutID string) error {
	if layoutID == "" {
		return dnderr.InvalidArgument("layout ID is required")
	}

	if err := s.repository.Delete(ctx, layoutID); err != nil {
		return dnderr.Wrapf(err, "failed to delete layout '%s'", layoutID).
			WithMeta("layout_id", layoutID)
	}

	s.emit(events.NewLayoutDeletedEvent(layoutID))

	return nil
}

// emit notifies listeners; a failing listener never fails the operation
func (s *service) emit(event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Emit(event); err != nil {
		s.logger.Printf("[DungeonService] Warning: %s listener failed: %v", event.GetType(), err)
	}
}
