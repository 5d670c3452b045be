package models

import (
	"encoding/json"
	"fmt"
)

// Units is the measurement system a weight was logged in.
type Units string

const (
	Kilograms Units = "kilograms"
	Pounds    Units = "pounds"
)

// Valid reports whether u is a known unit.
func (u Units) Valid() bool {
	return u == Kilograms || u == Pounds
}

// DistributionKind says how a weight's load is specified.
type DistributionKind string

const (
	// KindTotal is a single total load.
	KindTotal DistributionKind = "total"
	// KindDumbbell is the load of one dumbbell; the pair counts double.
	KindDumbbell DistributionKind = "dumbbell"
	// KindBarbell is the plate load on one side of the bar (counted twice)
	// plus the bar itself.
	KindBarbell DistributionKind = "barbell"
)

// Distribution is the load layout of a weight. It is a comparable value
// type so weights can be grouped in maps.
type Distribution struct {
	Kind DistributionKind
	// Value is the total load for KindTotal and the single-dumbbell load
	// for KindDumbbell. Unused for KindBarbell.
	Value float64
	// Plates and Bar are used for KindBarbell only.
	Plates float64
	Bar    float64
}

// Total is a load specified as a single total value.
func Total(value float64) Distribution {
	return Distribution{Kind: KindTotal, Value: value}
}

// Dumbbell is a load specified as the weight of one dumbbell of a pair.
func Dumbbell(perSide float64) Distribution {
	return Distribution{Kind: KindDumbbell, Value: perSide}
}

// Barbell is a load specified as one side's plates plus the bar.
func Barbell(plates, bar float64) Distribution {
	return Distribution{Kind: KindBarbell, Plates: plates, Bar: bar}
}

// Weight is the load of one set.
type Weight struct {
	Distribution Distribution `json:"distribution"`
	Units        Units        `json:"units"`
}

// TotalWeight is the full load implied by the distribution.
func (w Weight) TotalWeight() float64 {
	switch w.Distribution.Kind {
	case KindDumbbell:
		return w.Distribution.Value * 2
	case KindBarbell:
		return w.Distribution.Plates*2 + w.Distribution.Bar
	default:
		return w.Distribution.Value
	}
}

// barbellPayload is the wire shape of a barbell distribution. It is the same
// in every schema version.
type barbellPayload struct {
	Plates float64 `json:"plates"`
	Bar    float64 `json:"bar"`
}

// MarshalJSON encodes the current wire shape: an object with exactly one of
// the keys "total", "dumbbell" or "barbell".
func (d Distribution) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindTotal:
		return json.Marshal(map[string]float64{"total": d.Value})
	case KindDumbbell:
		return json.Marshal(map[string]float64{"dumbbell": d.Value})
	case KindBarbell:
		return json.Marshal(map[string]barbellPayload{"barbell": {Plates: d.Plates, Bar: d.Bar}})
	default:
		return nil, fmt.Errorf("unknown distribution kind %q", d.Kind)
	}
}

// UnmarshalJSON decodes the current wire shape. Older shapes are handled by
// the codec package.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) != 1 {
		return fmt.Errorf("distribution must have exactly one key, found %d", len(fields))
	}
	for key, raw := range fields {
		switch DistributionKind(key) {
		case KindTotal, KindDumbbell:
			var value float64
			if err := json.Unmarshal(raw, &value); err != nil {
				return fmt.Errorf("decoding %s distribution: %w", key, err)
			}
			*d = Distribution{Kind: DistributionKind(key), Value: value}
		case KindBarbell:
			var payload barbellPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("decoding barbell distribution: %w", err)
			}
			*d = Barbell(payload.Plates, payload.Bar)
		default:
			return fmt.Errorf("unknown distribution key %q", key)
		}
	}
	return nil
}

// UnmarshalJSON validates that the units string is a known value.
func (u *Units) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Units(s).Valid() {
		return fmt.Errorf("unsupported unit type %q", s)
	}
	*u = Units(s)
	return nil
}
