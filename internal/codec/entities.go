package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/fitjournal/internal/models"
)

func decodeWorkout(data []byte, cfg DecodeConfig) (models.Workout, error) {
	var wire struct {
		ID       models.WorkoutID  `json:"id"`
		Date     json.RawMessage   `json:"date"`
		Segments []json.RawMessage `json:"segments"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.Workout{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	date, err := decodeDate(wire.Date)
	if err != nil {
		return models.Workout{}, err
	}

	segments := make([]models.Segment, 0, len(wire.Segments))
	for i, raw := range wire.Segments {
		segment, err := decodeSegment(raw, cfg)
		if err != nil {
			return models.Workout{}, fmt.Errorf("segment %d: %w", i, err)
		}
		segments = append(segments, segment)
	}

	return models.Workout{ID: wire.ID, Date: date, Segments: segments}, nil
}

// decodeDate accepts an RFC 3339 string or a numeric Unix-seconds value.
// The numeric form appears in documents written before string dates.
func decodeDate(data json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrCorrupt, s)
		}
		return t, nil
	}
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err == nil {
		sec := int64(seconds)
		nsec := int64((seconds - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: date is neither a string nor a number", ErrCorrupt)
}

func decodeSegment(data []byte, cfg DecodeConfig) (models.Segment, error) {
	var wire struct {
		ID       models.SegmentID  `json:"id"`
		Exercise json.RawMessage   `json:"exercise"`
		Sets     []json.RawMessage `json:"sets"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.Segment{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var exerciseID models.ExerciseID
	if cfg.DecodedVersion == VersionV1 {
		// v1 embedded the full exercise definition; only its identity is
		// kept, the top-level exercise list is authoritative.
		embedded, err := decodeExercise(wire.Exercise, cfg)
		if err != nil {
			return models.Segment{}, fmt.Errorf("embedded exercise: %w", err)
		}
		exerciseID = embedded.ID
	} else {
		if err := json.Unmarshal(wire.Exercise, &exerciseID); err != nil {
			return models.Segment{}, fmt.Errorf("%w: exercise reference: %v", ErrCorrupt, err)
		}
	}

	sets := make([]models.Set, 0, len(wire.Sets))
	for i, raw := range wire.Sets {
		set, err := decodeSet(raw, cfg)
		if err != nil {
			return models.Segment{}, fmt.Errorf("set %d: %w", i, err)
		}
		sets = append(sets, set)
	}

	return models.Segment{ID: wire.ID, Exercise: exerciseID, Sets: sets}, nil
}

func decodeSet(data []byte, cfg DecodeConfig) (models.Set, error) {
	var wire struct {
		ID                      models.SetID    `json:"id"`
		Weight                  json.RawMessage `json:"weight"`
		Repetitions             int             `json:"repetitions"`
		RateOfPerceivedExertion *int            `json:"rateOfPerceivedExertion"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.Set{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	weight, err := decodeWeight(wire.Weight, cfg)
	if err != nil {
		return models.Set{}, err
	}

	return models.Set{
		ID:                      wire.ID,
		Weight:                  weight,
		Repetitions:             wire.Repetitions,
		RateOfPerceivedExertion: wire.RateOfPerceivedExertion,
	}, nil
}

func decodeWeight(data json.RawMessage, cfg DecodeConfig) (models.Weight, error) {
	var wire struct {
		Distribution json.RawMessage `json:"distribution"`
		Units        json.RawMessage `json:"units"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.Weight{}, fmt.Errorf("%w: weight: %v", ErrCorrupt, err)
	}

	distribution, err := decodeDistribution(wire.Distribution, cfg)
	if err != nil {
		return models.Weight{}, err
	}
	units, err := decodeUnits(wire.Units, cfg)
	if err != nil {
		return models.Weight{}, err
	}
	return models.Weight{Distribution: distribution, Units: units}, nil
}

// decodeUnits reads the units field: v1 encoded a single-key object like
// {"pounds":{}}, v2 and later a bare string.
func decodeUnits(data json.RawMessage, cfg DecodeConfig) (models.Units, error) {
	if cfg.DecodedVersion == VersionV1 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return "", fmt.Errorf("%w: units: %v", ErrCorrupt, err)
		}
		if len(fields) != 1 {
			return "", fmt.Errorf("%w: units must have exactly one key, found %d", ErrCorrupt, len(fields))
		}
		for key := range fields {
			if !models.Units(key).Valid() {
				return "", fmt.Errorf("%w: unsupported unit type %q", ErrCorrupt, key)
			}
			return models.Units(key), nil
		}
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("%w: units: %v", ErrCorrupt, err)
	}
	if !models.Units(s).Valid() {
		return "", fmt.Errorf("%w: unsupported unit type %q", ErrCorrupt, s)
	}
	return models.Units(s), nil
}

// decodeDistribution reads the distribution field. Exactly one of the keys
// total, dumbbell or barbell must be present. In v1 the scalar payloads were
// wrapped in a nested single-field object; the barbell payload is the same
// in every version.
func decodeDistribution(data json.RawMessage, cfg DecodeConfig) (models.Distribution, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.Distribution{}, fmt.Errorf("%w: distribution: %v", ErrCorrupt, err)
	}
	if len(fields) != 1 {
		return models.Distribution{}, fmt.Errorf("%w: distribution must have exactly one key, found %d", ErrCorrupt, len(fields))
	}

	for key, raw := range fields {
		switch models.DistributionKind(key) {
		case models.KindTotal, models.KindDumbbell:
			value, err := decodeScalarPayload(raw, cfg)
			if err != nil {
				return models.Distribution{}, fmt.Errorf("%s distribution: %w", key, err)
			}
			if models.DistributionKind(key) == models.KindTotal {
				return models.Total(value), nil
			}
			return models.Dumbbell(value), nil
		case models.KindBarbell:
			var payload struct {
				Plates float64 `json:"plates"`
				Bar    float64 `json:"bar"`
			}
			if err := json.Unmarshal(raw, &payload); err != nil {
				return models.Distribution{}, fmt.Errorf("%w: barbell distribution: %v", ErrCorrupt, err)
			}
			return models.Barbell(payload.Plates, payload.Bar), nil
		default:
			return models.Distribution{}, fmt.Errorf("%w: unknown distribution key %q", ErrCorrupt, key)
		}
	}
	return models.Distribution{}, fmt.Errorf("%w: empty distribution", ErrCorrupt)
}

// decodeScalarPayload reads a total/dumbbell value: v1 wrapped it as
// {"_0": 50}, later versions store the bare number.
func decodeScalarPayload(data json.RawMessage, cfg DecodeConfig) (float64, error) {
	if cfg.DecodedVersion == VersionV1 {
		var wrapped struct {
			Value *float64 `json:"_0"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if wrapped.Value == nil {
			return 0, fmt.Errorf("%w: missing _0 payload", ErrCorrupt)
		}
		return *wrapped.Value, nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return value, nil
}

func decodeExercise(data []byte, cfg DecodeConfig) (models.Exercise, error) {
	// v1 additionally carried a sets list under the exercise definition;
	// it is ignored here and discarded on the next save.
	var wire struct {
		ID      models.ExerciseID `json:"id"`
		Name    string            `json:"name"`
		Comment *string           `json:"comment"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.Exercise{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return models.Exercise{ID: wire.ID, Name: wire.Name, Comment: wire.Comment}, nil
}
