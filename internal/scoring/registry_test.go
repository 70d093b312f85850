package scoring

import (
	"encoding/json"
	"testing"
)

func TestScorerForManualTypes(t *testing.T) {
	for _, typ := range []Type{TypeOpenEnded, TypeCoding, TypeSignPractice} {
		t.Run(string(typ), func(t *testing.T) {
			fn, ok := ScorerFor(typ)
			if !ok {
				t.Fatalf("%s should be a known type", typ)
			}
			if fn != nil {
				t.Fatalf("%s must not have an automatic scorer", typ)
			}
			if AutoScorable(typ) {
				t.Fatalf("%s reported auto-scorable", typ)
			}
		})
	}
}

func TestScorerForAutoTypes(t *testing.T) {
	for _, typ := range []Type{TypeQuiz, TypeFillBlank, TypeMatching, TypeDragDrop, TypeMultipleChoice, TypeSelectImage} {
		t.Run(string(typ), func(t *testing.T) {
			fn, ok := ScorerFor(typ)
			if !ok || fn == nil {
				t.Fatalf("%s should have an automatic scorer", typ)
			}
			if !AutoScorable(typ) {
				t.Fatalf("%s not reported auto-scorable", typ)
			}
		})
	}
}

func TestScorerForUnknownType(t *testing.T) {
	if _, ok := ScorerFor(Type("essay_v2")); ok {
		t.Fatal("unknown type must not resolve")
	}
	if Known(Type("essay_v2")) {
		t.Fatal("unknown type reported known")
	}
}

func TestValidatorRejectsMismatchedShape(t *testing.T) {
	testCases := []struct {
		typ     Type
		payload string
		valid   bool
	}{
		{TypeQuiz, `[{"text":"q","options":["a","b"],"correct_index":0}]`, true},
		{TypeQuiz, `[{"text":"q","correct_index":0}]`, false}, // missing options
		{TypeQuiz, `{"pairs":[]}`, false},
		{TypeMatching, `{"pairs":[{"id":"p1","left":"l","right":"r"}]}`, true},
		{TypeMatching, `[1,2,3]`, false},
		{TypeDragDrop, `{"dragdrop":{"items":[],"targets":[],"mapping":{}}}`, true},
		{TypeMultipleChoice, `{"prompt":"p","options":[{"id":"a"}],"correct_index":0}`, true},
		{TypeMultipleChoice, `{"prompt":"p","options":[],"correct_index":0}`, false},
		{TypeOpenEnded, `{"prompt":"describe"}`, true},
		{TypeSignPractice, `{"prompt":"sign hello","reference_video_url":"v.mp4"}`, true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.typ)+"/"+tc.payload, func(t *testing.T) {
			validate, ok := ValidatorFor(tc.typ)
			if !ok {
				t.Fatalf("no validator for %s", tc.typ)
			}
			err := validate(json.RawMessage(tc.payload))
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCorrectness(t *testing.T) {
	quiz := json.RawMessage(`[{"text":"q1","options":["a","b"],"correct_index":0},{"text":"q2","options":["a","b"],"correct_index":1}]`)

	testCases := []struct {
		name    string
		typ     Type
		payload json.RawMessage
		answers json.RawMessage
		correct int
		total   int
	}{
		{"quiz partial", TypeQuiz, quiz, json.RawMessage(`{"selected":[0,0]}`), 1, 2},
		{"quiz full", TypeQuiz, quiz, json.RawMessage(`{"selected":[0,1]}`), 2, 2},
		{"manual type", TypeSignPractice, json.RawMessage(`{"prompt":"hi"}`), json.RawMessage(`{}`), 0, 0},
		{"unknown type", Type("essay_v2"), quiz, json.RawMessage(`{}`), 0, 0},
		{"malformed answers", TypeQuiz, quiz, json.RawMessage(`"oops"`), 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			correct, total := Correctness(tc.typ, tc.payload, tc.answers)
			if correct != tc.correct || total != tc.total {
				t.Errorf("got (%d, %d), want (%d, %d)", correct, total, tc.correct, tc.total)
			}
		})
	}
}

func TestCounterForManualTypesIsNil(t *testing.T) {
	fn, ok := CounterFor(TypeSignPractice)
	if !ok {
		t.Fatal("sign_practice should be known")
	}
	if fn != nil {
		t.Fatal("manual type must contribute nothing to leaderboards")
	}
}
