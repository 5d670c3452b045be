package models

import (
	"encoding/json"
	"testing"
)

// TestTotalWeight verifies the derived total for each distribution kind.
func TestTotalWeight(t *testing.T) {
	tests := []struct {
		name string
		dist Distribution
		want float64
	}{
		{"total", Total(50), 50},
		{"dumbbell doubles", Dumbbell(50), 100},
		{"barbell doubles plates and adds bar", Barbell(50, 45), 145},
		{"empty barbell", Barbell(0, 45), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Weight{Distribution: tt.dist, Units: Pounds}
			if got := w.TotalWeight(); got != tt.want {
				t.Errorf("TotalWeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDistributionJSONRoundTrip verifies the current wire shape encodes and
// decodes to the same value.
func TestDistributionJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		dist     Distribution
		wantJSON string
	}{
		{"total", Total(50), `{"total":50}`},
		{"dumbbell", Dumbbell(25), `{"dumbbell":25}`},
		{"barbell", Barbell(50, 45), `{"barbell":{"plates":50,"bar":45}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.dist)
			if err != nil {
				t.Fatalf("marshal error: %v", err)
			}
			if string(data) != tt.wantJSON {
				t.Errorf("marshal = %s, want %s", data, tt.wantJSON)
			}

			var got Distribution
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if got != tt.dist {
				t.Errorf("round trip = %+v, want %+v", got, tt.dist)
			}
		})
	}
}

// TestDistributionDecodeRejectsBadKeyCounts verifies the exactly-one-key rule.
func TestDistributionDecodeRejectsBadKeyCounts(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no keys", `{}`},
		{"two keys", `{"total":50,"dumbbell":25}`},
		{"unknown key", `{"kettlebell":20}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Distribution
			if err := json.Unmarshal([]byte(tt.data), &d); err == nil {
				t.Errorf("unmarshal(%s) succeeded, want error", tt.data)
			}
		})
	}
}

// TestUnitsDecode verifies known unit strings decode and unknown ones fail.
func TestUnitsDecode(t *testing.T) {
	var u Units
	if err := json.Unmarshal([]byte(`"pounds"`), &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != Pounds {
		t.Errorf("units = %q, want %q", u, Pounds)
	}

	if err := json.Unmarshal([]byte(`"stones"`), &u); err == nil {
		t.Error("decoding unknown units succeeded, want error")
	}
}
