package dungeon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-builder/internal/errors"
	"github.com/KirkDiggler/dungeon-builder/internal/events"
	"github.com/KirkDiggler/dungeon-builder/internal/repositories/layouts"
	mocklayouts "github.com/KirkDiggler/dungeon-builder/internal/repositories/layouts/mock"
	"github.com/KirkDiggler/dungeon-builder/internal/repositories/levels"
	dungeonsvc "github.com/KirkDiggler/dungeon-builder/internal/services/dungeon"
	"github.com/KirkDiggler/dungeon-builder/internal/testutils"
	"github.com/KirkDiggler/dungeon-builder/internal/uuid"
)

func newTestService(repo layouts.Repository) dungeonsvc.Service {
	return dungeonsvc.NewService(&dungeonsvc.ServiceConfig{
		Repository: repo,
		Levels: levels.NewInMemoryRepository(
			testutils.CreateTestLevel("crypt"),
			testutils.CreateLinearLevel("attic"),
			testutils.CreateOverlappingLevel("cramped"),
		),
		Settings: &dungeon.Settings{
			MaxBuildAttempts:           2,
			MaxRebuildAttemptsForGraph: 50,
			MaxChildCorridors:          dungeon.DefaultMaxChildCorridors,
		},
		UUIDGenerator: uuid.NewSequentialGenerator("layout"),
		Logger:        quiet,
	})
}

func TestDungeonService_GenerateDungeon(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocklayouts.NewMockRepository(ctrl)
	svc := newTestService(repo)

	var stored *dungeon.Layout
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, layout *dungeon.Layout) error {
			stored = layout
			return nil
		})

	output, err := svc.GenerateDungeon(context.Background(), &dungeonsvc.GenerateDungeonInput{
		LevelName: "crypt",
		Seed:      99,
	})
	require.NoError(t, err)

	layout := output.Layout
	assert.Same(t, stored, layout)
	assert.Equal(t, "layout-1", layout.ID)
	assert.Equal(t, "crypt", layout.LevelName)
	assert.Equal(t, "crypt-graph", layout.GraphID)
	assert.Equal(t, int64(99), layout.Seed)
	assert.GreaterOrEqual(t, layout.Attempts, 1)
	assert.Len(t, layout.Rooms, 11)
	assert.Len(t, layout.Order, 11)
	assert.Equal(t, "entrance", layout.Order[0])
	assert.True(t, layout.Entrance().IsPreviouslyVisited)
	assert.Empty(t, output.Warnings)
}

func TestDungeonService_GenerateDungeon_SeedIsReproducible(t *testing.T) {
	svc := newTestService(layouts.NewInMemoryRepository())
	ctx := context.Background()

	first, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "crypt", Seed: 7})
	require.NoError(t, err)
	second, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "crypt", Seed: 7})
	require.NoError(t, err)

	assert.NotEqual(t, first.Layout.ID, second.Layout.ID)
	assert.Equal(t, first.Layout.Rooms, second.Layout.Rooms)
}

func TestDungeonService_GenerateDungeon_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocklayouts.NewMockRepository(ctrl)
	svc := newTestService(repo)
	ctx := context.Background()

	t.Run("nil input", func(t *testing.T) {
		_, err := svc.GenerateDungeon(ctx, nil)
		assert.True(t, dnderr.IsInvalidArgument(err))
	})

	t.Run("missing level name", func(t *testing.T) {
		_, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{})
		assert.True(t, dnderr.IsInvalidArgument(err))
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "sewer"})
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("generation exhausted", func(t *testing.T) {
		_, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "cramped", Seed: 3})
		require.Error(t, err)
		assert.True(t, dnderr.IsGenerationExhausted(err))

		meta := dnderr.GetMeta(err)
		assert.Equal(t, "cramped", meta["level"])
		assert.Equal(t, int64(3), meta["seed"])
		assert.Equal(t, 102, meta["attempts"])
	})

	t.Run("repository failure", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "attic", Seed: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store layout")
	})
}

func TestDungeonService_GenerateBatch(t *testing.T) {
	repo := layouts.NewInMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	output, err := svc.GenerateBatch(ctx, &dungeonsvc.GenerateBatchInput{
		LevelNames: []string{"crypt", "attic", "crypt"},
		Seed:       100,
	})
	require.NoError(t, err)
	require.Len(t, output.Layouts, 3)

	for i, name := range []string{"crypt", "attic", "crypt"} {
		assert.Equal(t, name, output.Layouts[i].LevelName)
		assert.Equal(t, int64(100+i), output.Layouts[i].Seed)
	}

	stored, err := svc.ListLayouts(ctx, "crypt")
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	// Any failing level fails the batch
	_, err = svc.GenerateBatch(ctx, &dungeonsvc.GenerateBatchInput{LevelNames: []string{"attic", "sewer"}, Seed: 1})
	assert.True(t, dnderr.IsNotFound(err))

	_, err = svc.GenerateBatch(ctx, &dungeonsvc.GenerateBatchInput{})
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestDungeonService_GenerateBatch_DerivedZeroSeedIsKept(t *testing.T) {
	ctx := context.Background()
	input := &dungeonsvc.GenerateBatchInput{
		LevelNames: []string{"attic", "crypt"},
		Seed:       -1,
	}

	first, err := newTestService(layouts.NewInMemoryRepository()).GenerateBatch(ctx, input)
	require.NoError(t, err)
	second, err := newTestService(layouts.NewInMemoryRepository()).GenerateBatch(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, int64(-1), first.Layouts[0].Seed)
	assert.Equal(t, int64(0), first.Layouts[1].Seed)
	for i := range first.Layouts {
		assert.Equal(t, first.Layouts[i].Seed, second.Layouts[i].Seed)
		assert.Equal(t, first.Layouts[i].Attempts, second.Layouts[i].Attempts)
		assert.Equal(t, first.Layouts[i].Rooms, second.Layouts[i].Rooms)
	}
}

func TestDungeonService_Lookups(t *testing.T) {
	svc := newTestService(layouts.NewInMemoryRepository())
	ctx := context.Background()

	output, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "attic", Seed: 5})
	require.NoError(t, err)
	layoutID := output.Layout.ID

	layout, err := svc.GetLayout(ctx, layoutID)
	require.NoError(t, err)
	assert.Equal(t, output.Layout.Rooms, layout.Rooms)

	room, err := svc.GetRoom(ctx, layoutID, "corridor-1")
	require.NoError(t, err)
	assert.Equal(t, dungeon.CorridorNS, room.Type)

	_, err = svc.GetRoom(ctx, layoutID, "room-99")
	assert.True(t, dnderr.IsNotFound(err))

	_, err = svc.GetLayout(ctx, "missing")
	assert.True(t, dnderr.IsNotFound(err))

	_, err = svc.GetLayout(ctx, "")
	assert.True(t, dnderr.IsInvalidArgument(err))

	template, err := svc.GetTemplate(ctx, "attic", room.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, "corridor-ns-1", template.ID)

	_, err = svc.GetTemplate(ctx, "attic", "nope")
	assert.True(t, dnderr.IsNotFound(err))

	_, err = svc.GetTemplate(ctx, "sewer", "corridor-ns-1")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestDungeonService_UpdateRoomState(t *testing.T) {
	svc := newTestService(layouts.NewInMemoryRepository())
	ctx := context.Background()

	output, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "attic", Seed: 5})
	require.NoError(t, err)
	layoutID := output.Layout.ID

	lit := true
	room, err := svc.UpdateRoomState(ctx, &dungeonsvc.UpdateRoomStateInput{
		LayoutID: layoutID,
		RoomID:   "room-1",
		IsLit:    &lit,
	})
	require.NoError(t, err)
	assert.True(t, room.IsLit)
	assert.False(t, room.IsClearedOfEnemies)

	cleared := true
	_, err = svc.UpdateRoomState(ctx, &dungeonsvc.UpdateRoomStateInput{
		LayoutID:           layoutID,
		RoomID:             "room-1",
		IsClearedOfEnemies: &cleared,
	})
	require.NoError(t, err)

	stored, err := svc.GetRoom(ctx, layoutID, "room-1")
	require.NoError(t, err)
	assert.True(t, stored.IsLit)
	assert.True(t, stored.IsClearedOfEnemies)
	assert.False(t, stored.IsPreviouslyVisited)

	_, err = svc.UpdateRoomState(ctx, &dungeonsvc.UpdateRoomStateInput{LayoutID: layoutID, RoomID: "room-99"})
	assert.True(t, dnderr.IsNotFound(err))

	_, err = svc.UpdateRoomState(ctx, nil)
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestDungeonService_UpdateRoomState_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocklayouts.NewMockRepository(ctrl)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.EXPECT().Get(gomock.Any(), "layout-1").Return(testutils.CreateTestLayout("layout-1", "attic"), nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	visited := true
	_, err := svc.UpdateRoomState(ctx, &dungeonsvc.UpdateRoomStateInput{
		LayoutID:            "layout-1",
		RoomID:              "room-1",
		IsPreviouslyVisited: &visited,
	})
	require.Error(t, err)
	assert.Equal(t, "layout-1", dnderr.GetMeta(err)["layout_id"])
}

func TestDungeonService_DeleteLayout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocklayouts.NewMockRepository(ctrl)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.EXPECT().Delete(gomock.Any(), "layout-1").Return(nil)
	assert.NoError(t, svc.DeleteLayout(ctx, "layout-1"))

	repo.EXPECT().Delete(gomock.Any(), "layout-2").Return(dnderr.NotFound("layout not found: layout-2"))
	assert.True(t, dnderr.IsNotFound(svc.DeleteLayout(ctx, "layout-2")))

	assert.True(t, dnderr.IsInvalidArgument(svc.DeleteLayout(ctx, "")))
}

func TestNewService_RequiresRepositories(t *testing.T) {
	assert.Panics(t, func() {
		dungeonsvc.NewService(&dungeonsvc.ServiceConfig{Levels: levels.NewInMemoryRepository()})
	})
	assert.Panics(t, func() {
		dungeonsvc.NewService(&dungeonsvc.ServiceConfig{Repository: layouts.NewInMemoryRepository()})
	})
}

func TestDungeonService_EmitsLifecycleEvents(t *testing.T) {
	bus := events.NewBusWithLogger(quiet)
	var seen []events.EventType
	recorder := &events.ListenerFunc{
		Name: "recorder",
		Fn: func(e events.Event) error {
			seen = append(seen, e.GetType())
			return nil
		},
	}
	bus.SubscribeAll(recorder,
		events.EventTypeLayoutGenerated,
		events.EventTypeGenerationFailed,
		events.EventTypeRoomStateChanged,
		events.EventTypeLayoutDeleted,
	)
	bus.Subscribe(events.EventTypeLayoutGenerated, &events.ListenerFunc{
		Name:  "broken",
		Order: 10,
		Fn:    func(events.Event) error { return errors.New("renderer offline") },
	})

	svc := dungeonsvc.NewService(&dungeonsvc.ServiceConfig{
		Repository: layouts.NewInMemoryRepository(),
		Levels: levels.NewInMemoryRepository(
			testutils.CreateLinearLevel("attic"),
			testutils.CreateOverlappingLevel("cramped"),
		),
		Settings: &dungeon.Settings{MaxBuildAttempts: 1, MaxRebuildAttemptsForGraph: 0, MaxChildCorridors: 3},
		EventBus: bus,
		Logger:   quiet,
	})
	ctx := context.Background()

	// A failing listener does not fail generation
	output, err := svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "attic", Seed: 1})
	require.NoError(t, err)

	_, err = svc.GenerateDungeon(ctx, &dungeonsvc.GenerateDungeonInput{LevelName: "cramped", Seed: 1})
	require.Error(t, err)

	lit := true
	_, err = svc.UpdateRoomState(ctx, &dungeonsvc.UpdateRoomStateInput{
		LayoutID: output.Layout.ID,
		RoomID:   "entrance",
		IsLit:    &lit,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLayout(ctx, output.Layout.ID))

	assert.Equal(t, []events.EventType{
		events.EventTypeLayoutGenerated,
		events.EventTypeGenerationFailed,
		events.EventTypeRoomStateChanged,
		events.EventTypeLayoutDeleted,
	}, seen)
}
