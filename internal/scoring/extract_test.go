package scoring

import (
	"encoding/json"
	"testing"
)

func TestExtractScorePrecedence(t *testing.T) {
	testCases := []struct {
		name  string
		blob  string
		want  float64
		found bool
	}{
		{"top level score", `{"score":42}`, 42, true},
		{"meta score", `{"meta":{"score":7.5}}`, 7.5, true},
		{"summary score", `{"summary":{"score":88}}`, 88, true},
		{"top level wins over meta", `{"score":1,"meta":{"score":2}}`, 1, true},
		{"meta wins over summary", `{"meta":{"score":2},"summary":{"score":3}}`, 2, true},
		{"numeric string coerced", `{"score":"55"}`, 55, true},
		{"non-numeric string skipped, items used", `{"score":"n/a","items":[{"score":3}]}`, 3, true},
		{"items score sum", `{"items":[{"score":3},{"score":5}]}`, 8, true},
		{"questions score sum", `{"questions":[{"score":1},{"score":2},{"no":0}]}`, 3, true},
		{"responses score sum", `{"responses":[{"score":10}]}`, 10, true},
		{"correct flag count", `{"items":[{"correct":true},{"correct":false}]}`, 1, true},
		{"isCorrect flag count", `{"items":[{"isCorrect":true},{"isCorrect":true}]}`, 2, true},
		{"all flags false counts zero", `{"items":[{"correct":false}]}`, 0, true},
		{"score fields win over flags", `{"items":[{"score":4,"correct":true},{"correct":true}]}`, 4, true},
		{"empty object", `{}`, 0, false},
		{"empty items array", `{"items":[]}`, 0, false},
		{"flat array blob", `[1,2,3]`, 0, false},
		{"scalar blob", `"free text answer"`, 0, false},
		{"malformed json", `{"score":`, 0, false},
		{"score not a number", `{"score":{"nested":1}}`, 0, false},
		{"items without signals", `{"items":[{"answer":"a"},{"answer":"b"}]}`, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractScore(json.RawMessage(tc.blob))
			if found != tc.found {
				t.Fatalf("expected found=%v, got %v", tc.found, found)
			}
			if found && got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestExtractScoreNeverPanics(t *testing.T) {
	blobs := []string{
		``, `null`, `0`, `true`,
		`{"items":"not an array"}`,
		`{"items":[null,1,"x"]}`,
		`{"meta":null}`,
		`{"meta":"oops"}`,
		`{"score":"Infinity"}`,
		`{"score":"NaN"}`,
	}
	for _, blob := range blobs {
		if _, found := ExtractScore(json.RawMessage(blob)); found && (blob == `{"score":"Infinity"}` || blob == `{"score":"NaN"}`) {
			t.Errorf("non-finite value %q must not extract", blob)
		}
	}
}
