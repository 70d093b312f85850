package scoring

import (
	"encoding/json"
	"testing"
)

func TestScoreRubric(t *testing.T) {
	criteria := []RubricCriterion{
		{ID: "clarity", Label: "Clarity", Weight: 40},
		{ID: "accuracy", Label: "Accuracy", Weight: 40},
		{ID: "fluency", Label: "Fluency", Weight: 20},
	}

	testCases := []struct {
		name     string
		awarded  map[string]float64
		maxScore float64
		want     float64
	}{
		{"full marks", map[string]float64{"clarity": 40, "accuracy": 40, "fluency": 20}, 100, 100},
		{"partial", map[string]float64{"clarity": 30, "accuracy": 20}, 100, 50},
		{"over-weight capped", map[string]float64{"clarity": 90, "accuracy": 40, "fluency": 20}, 100, 100},
		{"clamped to max", map[string]float64{"clarity": 40, "accuracy": 40, "fluency": 20}, 80, 80},
		{"negative floored", map[string]float64{"clarity": -10, "accuracy": 15}, 100, 15},
		{"unknown criterion ignored", map[string]float64{"style": 50, "clarity": 10}, 100, 10},
		{"nothing awarded", map[string]float64{}, 100, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreRubric(criteria, tc.awarded, tc.maxScore)
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDecodeRubric(t *testing.T) {
	criteria, err := DecodeRubric(json.RawMessage(`[{"id":"c1","label":"Clarity","weight":50}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(criteria) != 1 || criteria[0].ID != "c1" || criteria[0].Weight != 50 {
		t.Fatalf("unexpected criteria: %+v", criteria)
	}

	if c, err := DecodeRubric(nil); err != nil || c != nil {
		t.Fatalf("nil rubric should decode to nothing, got %v %v", c, err)
	}
	if c, err := DecodeRubric(json.RawMessage(`null`)); err != nil || c != nil {
		t.Fatalf("null rubric should decode to nothing, got %v %v", c, err)
	}
	if _, err := DecodeRubric(json.RawMessage(`{"bad":1}`)); err == nil {
		t.Fatal("expected error for malformed rubric")
	}
}
