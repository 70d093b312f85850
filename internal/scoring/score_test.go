package scoring

import (
	"encoding/json"
	"testing"
)

func mustScore(t *testing.T, typ Type, payload, answers string) int {
	t.Helper()
	fn, ok := ScorerFor(typ)
	if !ok || fn == nil {
		t.Fatalf("no scorer for %s", typ)
	}
	score, err := fn(json.RawMessage(payload), json.RawMessage(answers))
	if err != nil {
		t.Fatalf("score %s: %v", typ, err)
	}
	return score
}

func TestQuizScoring(t *testing.T) {
	payload := `[
		{"text":"Q1","options":["a","b","c"],"correct_index":1},
		{"text":"Q2","options":["a","b"],"correct_index":0},
		{"text":"Q3","options":["a","b","c","d"],"correct_index":3}
	]`

	testCases := []struct {
		name    string
		answers string
		want    int
	}{
		{"all correct", `{"selected":[1,0,3]}`, 100},
		{"two of three", `{"selected":[1,0,2]}`, 67},
		{"one of three", `{"selected":[1,1,1]}`, 33},
		{"none correct", `{"selected":[0,1,0]}`, 0},
		{"missing answers count wrong", `{"selected":[1]}`, 33},
		{"out of range index is wrong", `{"selected":[9,0,3]}`, 67},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustScore(t, TypeQuiz, payload, tc.answers)
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
			if got < 0 || got > 100 {
				t.Errorf("score %d out of [0,100]", got)
			}
		})
	}
}

func TestQuizFullMarksOnlyWhenAllCorrect(t *testing.T) {
	payload := `[{"text":"Q","options":["a","b"],"correct_index":0},{"text":"Q2","options":["a","b"],"correct_index":1}]`
	if got := mustScore(t, TypeQuiz, payload, `{"selected":[0,1]}`); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := mustScore(t, TypeQuiz, payload, `{"selected":[0,0]}`); got == 100 {
		t.Fatal("partial answers must not reach 100")
	}
}

func TestQuizEmptyPayloadScoresZero(t *testing.T) {
	if got := mustScore(t, TypeQuiz, `[]`, `{"selected":[]}`); got != 0 {
		t.Fatalf("zero questions must score 0, got %d", got)
	}
}

func TestFillBlankNormalization(t *testing.T) {
	payload := `[{"prompt":"Capital of France is __","blanks":["paris"]}]`

	testCases := []struct {
		name    string
		answers string
		want    int
	}{
		{"exact", `{"blanks":[["paris"]]}`, 100},
		{"case insensitive", `{"blanks":[["PARIS"]]}`, 100},
		{"whitespace insensitive", `{"blanks":[[" Paris "]]}`, 100},
		{"wrong value", `{"blanks":[["lyon"]]}`, 0},
		{"no answer", `{"blanks":[]}`, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustScore(t, TypeFillBlank, payload, tc.answers); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFillBlankMultipleItems(t *testing.T) {
	payload := `[
		{"prompt":"a","blanks":["one","two"]},
		{"prompt":"b","blanks":["three"]}
	]`
	got := mustScore(t, TypeFillBlank, payload, `{"blanks":[["one","wrong"],["THREE"]]}`)
	if got != 67 {
		t.Fatalf("expected 67 (2 of 3 blanks), got %d", got)
	}
}

func TestMatchingScoring(t *testing.T) {
	payload := `{"pairs":[
		{"id":"p1","left":"dog","right":"sign-dog"},
		{"id":"p2","left":"cat","right":"sign-cat"}
	]}`

	testCases := []struct {
		name    string
		answers string
		want    int
	}{
		{"all matched", `{"matches":{"p1":"p1","p2":"p2"}}`, 100},
		{"swapped", `{"matches":{"p1":"p2","p2":"p1"}}`, 0},
		{"half", `{"matches":{"p1":"p1","p2":"p1"}}`, 50},
		{"empty mapping", `{"matches":{}}`, 0},
		{"unknown right id", `{"matches":{"p1":"ghost","p2":"p2"}}`, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustScore(t, TypeMatching, payload, tc.answers); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestMatchingNoPairsScoresZero(t *testing.T) {
	if got := mustScore(t, TypeMatching, `{"pairs":[]}`, `{"matches":{}}`); got != 0 {
		t.Fatalf("zero pairs must score 0, got %d", got)
	}
}

func TestDragDropScoring(t *testing.T) {
	payload := `{"dragdrop":{
		"items":[{"id":"i1","label":"apple"},{"id":"i2","label":"run"}],
		"targets":[{"id":"t1","label":"noun"},{"id":"t2","label":"verb"}],
		"mapping":{"i1":"t1","i2":"t2"}
	}}`

	testCases := []struct {
		name    string
		answers string
		want    int
	}{
		{"all placed", `{"placements":{"i1":"t1","i2":"t2"}}`, 100},
		{"one placed", `{"placements":{"i1":"t1","i2":"t1"}}`, 50},
		{"empty placements", `{"placements":{}}`, 0},
		{"unknown target id", `{"placements":{"i1":"nope","i2":"t2"}}`, 50},
		{"unknown item id ignored", `{"placements":{"ghost":"t1","i1":"t1","i2":"t2"}}`, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustScore(t, TypeDragDrop, payload, tc.answers); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestChoiceScoring(t *testing.T) {
	payload := `{"prompt":"pick","options":[{"id":"o1","label":"a"},{"id":"o2","label":"b"}],"correct_index":1}`

	for _, typ := range []Type{TypeMultipleChoice, TypeSelectImage} {
		t.Run(string(typ), func(t *testing.T) {
			if got := mustScore(t, typ, payload, `{"option_id":"o2"}`); got != 100 {
				t.Errorf("correct option: expected 100, got %d", got)
			}
			if got := mustScore(t, typ, payload, `{"option_id":"o1"}`); got != 0 {
				t.Errorf("wrong option: expected 0, got %d", got)
			}
			if got := mustScore(t, typ, payload, `{"option_id":"ghost"}`); got != 0 {
				t.Errorf("unknown option: expected 0, got %d", got)
			}
		})
	}
}

func TestChoiceCorrectIndexOutOfRange(t *testing.T) {
	payload := `{"prompt":"pick","options":[{"id":"o1"}],"correct_index":5}`
	if got := mustScore(t, TypeMultipleChoice, payload, `{"option_id":"o1"}`); got != 0 {
		t.Fatalf("out-of-range correct_index must never match, got %d", got)
	}
}

func TestCountsPercentRounding(t *testing.T) {
	testCases := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
		{1, 6, 17},
	}
	for _, tc := range testCases {
		got := (Counts{Correct: tc.correct, Total: tc.total}).Percent()
		if got != tc.want {
			t.Errorf("%d/%d: expected %d, got %d", tc.correct, tc.total, tc.want, got)
		}
	}
}

func TestMalformedPayloadIsValidationError(t *testing.T) {
	fn, _ := ScorerFor(TypeQuiz)
	_, err := fn(json.RawMessage(`{"not":"an array"}`), json.RawMessage(`{"selected":[]}`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}
