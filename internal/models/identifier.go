package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Identifier is a unique ID scoped to one entity kind. The Entity type
// parameter exists only at compile time: a WorkoutID and an ExerciseID carry
// the same raw UUID representation but cannot be mixed up in a call.
type Identifier[Entity any] struct {
	raw uuid.UUID
}

// NewID generates a fresh random identifier.
func NewID[Entity any]() Identifier[Entity] {
	return Identifier[Entity]{raw: uuid.New()}
}

// ParseID parses the canonical UUID string form of an identifier.
func ParseID[Entity any](s string) (Identifier[Entity], error) {
	raw, err := uuid.Parse(s)
	if err != nil {
		return Identifier[Entity]{}, fmt.Errorf("parsing identifier %q: %w", s, err)
	}
	return Identifier[Entity]{raw: raw}, nil
}

// UUID returns the raw unique value.
func (id Identifier[Entity]) UUID() uuid.UUID { return id.raw }

// IsZero reports whether the identifier is the zero value (never generated).
func (id Identifier[Entity]) IsZero() bool { return id.raw == uuid.UUID{} }

func (id Identifier[Entity]) String() string { return id.raw.String() }

// MarshalText encodes the identifier as its canonical UUID string.
func (id Identifier[Entity]) MarshalText() ([]byte, error) {
	return id.raw.MarshalText()
}

// UnmarshalText decodes the canonical UUID string.
func (id *Identifier[Entity]) UnmarshalText(text []byte) error {
	return id.raw.UnmarshalText(text)
}

// Entity-scoped identifier names used throughout the module.
type (
	WorkoutID  = Identifier[Workout]
	SegmentID  = Identifier[Segment]
	SetID      = Identifier[Set]
	ExerciseID = Identifier[Exercise]
)
