package events_test

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/KirkDiggler/dungeon-builder/internal/events"
	"github.com/KirkDiggler/dungeon-builder/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.New(io.Discard, "", 0)

func recorder(id string, priority int, order *[]string) *events.ListenerFunc {
	return &events.ListenerFunc{
		Name:  id,
		Order: priority,
		Fn: func(events.Event) error {
			*order = append(*order, id)
			return nil
		},
	}
}

func TestBus_Priority(t *testing.T) {
	bus := events.NewBusWithLogger(quiet)
	var order []string

	bus.Subscribe(events.EventTypeLayoutGenerated, recorder("low", 300, &order))
	bus.Subscribe(events.EventTypeLayoutGenerated, recorder("high", 100, &order))
	bus.Subscribe(events.EventTypeLayoutGenerated, recorder("medium", 200, &order))
	bus.Subscribe(events.EventTypeLayoutDeleted, recorder("other", 0, &order))

	layout := testutils.CreateTestLayout("layout-1", "crypt")
	require.NoError(t, bus.Emit(events.NewLayoutGeneratedEvent(layout, nil)))

	assert.Equal(t, []string{"high", "medium", "low"}, order)
}

func TestBus_Cancellation(t *testing.T) {
	bus := events.NewBusWithLogger(quiet)
	var order []string

	bus.Subscribe(events.EventTypeRoomStateChanged, &events.ListenerFunc{
		Name:  "veto",
		Order: 1,
		Fn: func(e events.Event) error {
			order = append(order, "veto")
			e.Cancel()
			return nil
		},
	})
	bus.Subscribe(events.EventTypeRoomStateChanged, recorder("after", 2, &order))

	layout := testutils.CreateTestLayout("layout-1", "crypt")
	event := events.NewRoomStateChangedEvent(layout, layout.Room("room-1"))
	require.NoError(t, bus.Emit(event))

	assert.True(t, event.IsCancelled())
	assert.Equal(t, []string{"veto"}, order)
}

func TestBus_ListenerErrorDoesNotStopDelivery(t *testing.T) {
	bus := events.NewBusWithLogger(quiet)
	boom := errors.New("boom")
	var order []string

	bus.Subscribe(events.EventTypeLayoutDeleted, &events.ListenerFunc{
		Name:  "broken",
		Order: 1,
		Fn:    func(events.Event) error { return boom },
	})
	bus.Subscribe(events.EventTypeLayoutDeleted, recorder("after", 2, &order))

	err := bus.Emit(events.NewLayoutDeletedEvent("layout-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"after"}, order)
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := events.NewBusWithLogger(quiet)
	var order []string

	assert.False(t, bus.HasListeners(events.EventTypeLayoutGenerated))

	bus.SubscribeAll(recorder("audit", 0, &order),
		events.EventTypeLayoutGenerated,
		events.EventTypeLayoutDeleted,
	)

	assert.True(t, bus.HasListeners(events.EventTypeLayoutGenerated))
	assert.True(t, bus.HasListeners(events.EventTypeLayoutDeleted))
	assert.False(t, bus.HasListeners(events.EventTypeRoomStateChanged))

	layout := testutils.CreateTestLayout("layout-1", "crypt")
	require.NoError(t, bus.Emit(events.NewLayoutGeneratedEvent(layout, nil)))
	require.NoError(t, bus.Emit(events.NewLayoutDeletedEvent(layout.ID)))
	require.NoError(t, bus.Emit(events.NewRoomStateChangedEvent(layout, layout.Room("room-1"))))

	assert.Equal(t, []string{"audit", "audit"}, order)
}

func TestBus_UnsubscribeAndClear(t *testing.T) {
	bus := events.NewBusWithLogger(quiet)
	var order []string

	bus.Subscribe(events.EventTypeGenerationFailed, recorder("a", 1, &order))
	bus.Subscribe(events.EventTypeGenerationFailed, recorder("b", 2, &order))
	bus.Subscribe(events.EventTypeGenerationFailed, recorder("c", 3, &order))
	bus.Unsubscribe(events.EventTypeGenerationFailed, "b")
	bus.Unsubscribe(events.EventTypeGenerationFailed, "missing")

	event := events.NewGenerationFailedEvent("crypt", 7, errors.New("exhausted"))
	require.NoError(t, bus.Emit(event))
	assert.Equal(t, []string{"a", "c"}, order)
	assert.Nil(t, event.GetLayout())

	bus.Clear()
	order = nil
	require.NoError(t, bus.Emit(event))
	assert.Empty(t, order)
}
