package dungeon

import (
	"encoding/json"
	"fmt"
)

// RoomKind is the closed set of room classifications the generator understands
type RoomKind int

const (
	RoomKindUnassigned RoomKind = iota
	RoomKindEntrance
	RoomKindCorridor // graph-only; resolved to NS or EW at placement time
	RoomKindCorridorNS
	RoomKindCorridorEW
	RoomKindNormal
	RoomKindBoss
)

var roomKindNames = map[RoomKind]string{
	RoomKindUnassigned: "unassigned",
	RoomKindEntrance:   "entrance",
	RoomKindCorridor:   "corridor",
	RoomKindCorridorNS: "corridor_ns",
	RoomKindCorridorEW: "corridor_ew",
	RoomKindNormal:     "normal",
	RoomKindBoss:       "boss",
}

func (k RoomKind) String() string {
	if name, ok := roomKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RoomKind(%d)", int(k))
}

// ParseRoomKind converts a kind name such as "corridor_ns" into a RoomKind
func ParseRoomKind(name string) (RoomKind, error) {
	for k, n := range roomKindNames {
		if n == name {
			return k, nil
		}
	}
	return RoomKindUnassigned, fmt.Errorf("unknown room kind %q", name)
}

// MarshalText encodes the kind by name
func (k RoomKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *RoomKind) UnmarshalText(text []byte) error {
	parsed, err := ParseRoomKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// RoomType classifies graph nodes and templates. Every kind except
// RoomKindNormal has exactly one canonical RoomType; normal rooms are
// further split by display name ("Small Room", "Chest Room", ...) and a
// template only serves nodes with an equal RoomType.
type RoomType struct {
	Kind RoomKind `json:"kind"`
	Name string   `json:"name"`
}

var (
	Unassigned = RoomType{Kind: RoomKindUnassigned, Name: "None"}
	Entrance   = RoomType{Kind: RoomKindEntrance, Name: "Entrance"}
	Corridor   = RoomType{Kind: RoomKindCorridor, Name: "Corridor"}
	CorridorNS = RoomType{Kind: RoomKindCorridorNS, Name: "Corridor NS"}
	CorridorEW = RoomType{Kind: RoomKindCorridorEW, Name: "Corridor EW"}
	BossRoom   = RoomType{Kind: RoomKindBoss, Name: "Boss Room"}
)

var canonicalTypes = map[RoomKind]RoomType{
	RoomKindUnassigned: Unassigned,
	RoomKindEntrance:   Entrance,
	RoomKindCorridor:   Corridor,
	RoomKindCorridorNS: CorridorNS,
	RoomKindCorridorEW: CorridorEW,
	RoomKindBoss:       BossRoom,
}

// NormalRoom returns the normal room type with the given display name
func NormalRoom(name string) RoomType {
	return RoomType{Kind: RoomKindNormal, Name: name}
}

// NewRoomType builds a RoomType, normalizing names for the fixed kinds
func NewRoomType(kind RoomKind, name string) RoomType {
	if canonical, ok := canonicalTypes[kind]; ok {
		return canonical
	}
	return NormalRoom(name)
}

func (t RoomType) IsUnassigned() bool { return t.Kind == RoomKindUnassigned }
func (t RoomType) IsEntrance() bool   { return t.Kind == RoomKindEntrance }
func (t RoomType) IsCorridor() bool   { return t.Kind == RoomKindCorridor }
func (t RoomType) IsCorridorNS() bool { return t.Kind == RoomKindCorridorNS }
func (t RoomType) IsCorridorEW() bool { return t.Kind == RoomKindCorridorEW }
func (t RoomType) IsBossRoom() bool   { return t.Kind == RoomKindBoss }
func (t RoomType) IsNormal() bool     { return t.Kind == RoomKindNormal }

// IsAnyCorridor is true for the generic corridor and both oriented corridors
func (t RoomType) IsAnyCorridor() bool {
	return t.IsCorridor() || t.IsCorridorNS() || t.IsCorridorEW()
}

func (t RoomType) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Kind.String()
}

// UnmarshalJSON decodes a room type and normalizes fixed-kind names
func (t *RoomType) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind RoomKind `json:"kind"`
		Name string   `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind == RoomKindNormal && raw.Name == "" {
		return fmt.Errorf("normal room type requires a name")
	}

	*t = NewRoomType(raw.Kind, raw.Name)
	return nil
}
