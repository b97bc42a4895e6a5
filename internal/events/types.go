package events

import (
	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
)

// EventType represents the type of dungeon lifecycle event
type EventType string

const (
	// EventTypeLayoutGenerated fires after a layout is built and stored
	EventTypeLayoutGenerated EventType = "layout_generated"

	// EventTypeGenerationFailed fires when a level could not be built
	EventTypeGenerationFailed EventType = "generation_failed"

	// EventTypeRoomStateChanged fires after a room's gameplay flags change
	EventTypeRoomStateChanged EventType = "room_state_changed"

	// EventTypeLayoutDeleted fires after a layout is removed
	EventTypeLayoutDeleted EventType = "layout_deleted"
)

// Event is the base interface for all dungeon events
type Event interface {
	GetType() EventType
	GetLayout() *dungeon.Layout
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Layout    *dungeon.Layout
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType         { return e.Type }
func (e *BaseEvent) GetLayout() *dungeon.Layout { return e.Layout }
func (e *BaseEvent) IsCancelled() bool          { return e.Cancelled }
func (e *BaseEvent) Cancel()                    { e.Cancelled = true }

// LayoutGeneratedEvent carries a freshly stored layout
type LayoutGeneratedEvent struct {
	BaseEvent
	Warnings []string
}

// GenerationFailedEvent carries the level that could not be built. Layout is nil.
type GenerationFailedEvent struct {
	BaseEvent
	LevelName string
	Seed      int64
	Err       error
}

// RoomStateChangedEvent carries the room whose gameplay flags changed
type RoomStateChangedEvent struct {
	BaseEvent
	Room *dungeon.Room
}

// LayoutDeletedEvent carries the ID of a removed layout. Layout is nil.
type LayoutDeletedEvent struct {
	BaseEvent
	LayoutID string
}

// NewLayoutGeneratedEvent creates a LayoutGeneratedEvent
func NewLayoutGeneratedEvent(layout *dungeon.Layout, warnings []string) *LayoutGeneratedEvent {
	return &LayoutGeneratedEvent{
		BaseEvent: BaseEvent{Type: EventTypeLayoutGenerated, Layout: layout},
		Warnings:  warnings,
	}
}

// NewGenerationFailedEvent creates a GenerationFailedEvent
func NewGenerationFailedEvent(levelName string, seed int64, err error) *GenerationFailedEvent {
	return &GenerationFailedEvent{
		BaseEvent: BaseEvent{Type: EventTypeGenerationFailed},
		LevelName: levelName,
		Seed:      seed,
		Err:       err,
	}
}

// NewRoomStateChangedEvent creates a RoomStateChangedEvent
func NewRoomStateChangedEvent(layout *dungeon.Layout, room *dungeon.Room) *RoomStateChangedEvent {
	return &RoomStateChangedEvent{
		BaseEvent: BaseEvent{Type: EventTypeRoomStateChanged, Layout: layout},
		Room:      room,
	}
}

// NewLayoutDeletedEvent creates a LayoutDeletedEvent
func NewLayoutDeletedEvent(layoutID string) *LayoutDeletedEvent {
	return &LayoutDeletedEvent{
		BaseEvent: BaseEvent{Type: EventTypeLayoutDeleted},
		LayoutID:  layoutID,
	}
}
