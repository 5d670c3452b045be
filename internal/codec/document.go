// Package codec translates between the in-memory journal entities and their
// persisted JSON document. Encoding always emits the current schema shape;
// decoding understands every historical shape, dispatching on the version
// tag read from the document itself.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/fitjournal/internal/models"
)

// Known schema versions. New versions are added as new decode branches; old
// branches are never changed.
const (
	// VersionV1 embedded full exercise definitions in segments and wrapped
	// scalar weight payloads in single-field objects.
	VersionV1 = 1
	// VersionV2 references exercises by ID and flattens weight payloads.
	VersionV2 = 2
	// LatestVersion is stamped on every save regardless of what was read.
	LatestVersion = VersionV2
)

// ErrCorrupt marks a document whose shape matches no known schema version.
var ErrCorrupt = errors.New("corrupt document")

// DecodeConfig carries the schema version read from the document and the
// running code's version through every entity decode.
type DecodeConfig struct {
	DecodedVersion int
	LatestVersion  int
}

// Document is the persisted root: the full journal plus its version tag.
type Document struct {
	Version   int
	Workouts  []models.Workout
	Exercises []models.Exercise
}

// NewDocument is an empty document stamped with the current schema version.
func NewDocument() Document {
	return Document{
		Version:   LatestVersion,
		Workouts:  []models.Workout{},
		Exercises: []models.Exercise{},
	}
}

type documentWire struct {
	Version   *int              `json:"version,omitempty"`
	Workouts  []json.RawMessage `json:"workouts"`
	Exercises []json.RawMessage `json:"exercises"`
}

// EncodeDocument serializes the document in the latest schema shape. The
// version field is always rewritten to LatestVersion, so old-format
// fragments never survive a load/save cycle.
func EncodeDocument(doc Document, pretty bool) ([]byte, error) {
	version := LatestVersion
	out := struct {
		Version   *int              `json:"version,omitempty"`
		Workouts  []models.Workout  `json:"workouts"`
		Exercises []models.Exercise `json:"exercises"`
	}{
		Version:   &version,
		Workouts:  doc.Workouts,
		Exercises: doc.Exercises,
	}
	if out.Workouts == nil {
		out.Workouts = []models.Workout{}
	}
	if out.Exercises == nil {
		out.Exercises = []models.Exercise{}
	}
	if pretty {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// DecodeDocument parses a persisted document, interpreting it according to
// its own version tag. A document without a tag is treated as VersionV1.
// The whole decode fails atomically; no partial result is returned.
func DecodeDocument(data []byte, latestVersion int) (Document, error) {
	var wire documentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	cfg := DecodeConfig{DecodedVersion: VersionV1, LatestVersion: latestVersion}
	if wire.Version != nil {
		cfg.DecodedVersion = *wire.Version
	}

	doc := Document{
		Version:   latestVersion,
		Workouts:  make([]models.Workout, 0, len(wire.Workouts)),
		Exercises: make([]models.Exercise, 0, len(wire.Exercises)),
	}
	for i, raw := range wire.Workouts {
		workout, err := decodeWorkout(raw, cfg)
		if err != nil {
			return Document{}, fmt.Errorf("decoding workout %d: %w", i, err)
		}
		doc.Workouts = append(doc.Workouts, workout)
	}
	for i, raw := range wire.Exercises {
		exercise, err := decodeExercise(raw, cfg)
		if err != nil {
			return Document{}, fmt.Errorf("decoding exercise %d: %w", i, err)
		}
		doc.Exercises = append(doc.Exercises, exercise)
	}
	return doc, nil
}
