// Package scoring is the assessment core: the type registry, the per-type
// scorers, the attempt policy and the legacy score extraction heuristic. It
// is pure, no storage and no transport, so every call site (submission,
// review, leaderboards, dashboards) shares one dispatch table instead of
// re-implementing type switches.
package scoring

import "encoding/json"

// ScoreFunc computes an integer score in [0,100] for one submission.
type ScoreFunc func(payload, answers json.RawMessage) (int, error)

// CountFunc tallies binary correctness for count-based leaderboards.
type CountFunc func(payload, answers json.RawMessage) (Counts, error)

// ValidateFunc rejects an authoring payload whose shape does not match the
// declared type.
type ValidateFunc func(payload json.RawMessage) error

type entry struct {
	count    CountFunc // nil: manual review only
	validate ValidateFunc
}

var registry = map[Type]entry{
	TypeQuiz: {
		count: countQuiz,
		validate: func(p json.RawMessage) error {
			_, err := countQuiz(p, json.RawMessage(`{"selected":[]}`))
			return err
		},
	},
	TypeFillBlank: {
		count: countFillBlank,
		validate: func(p json.RawMessage) error {
			_, err := countFillBlank(p, json.RawMessage(`{"blanks":[]}`))
			return err
		},
	},
	TypeMatching: {
		count: countMatching,
		validate: func(p json.RawMessage) error {
			_, err := countMatching(p, json.RawMessage(`{"matches":{}}`))
			return err
		},
	},
	TypeDragDrop: {
		count: countDragDrop,
		validate: func(p json.RawMessage) error {
			_, err := countDragDrop(p, json.RawMessage(`{"placements":{}}`))
			return err
		},
	},
	TypeMultipleChoice: {
		count: countChoice(TypeMultipleChoice),
		validate: func(p json.RawMessage) error {
			_, err := countChoice(TypeMultipleChoice)(p, json.RawMessage(`{}`))
			return err
		},
	},
	TypeSelectImage: {
		count: countChoice(TypeSelectImage),
		validate: func(p json.RawMessage) error {
			_, err := countChoice(TypeSelectImage)(p, json.RawMessage(`{}`))
			return err
		},
	},
	TypeOpenEnded: {
		validate: shapeValidator(TypeOpenEnded, func() interface{} { return &OpenEndedPayload{} }),
	},
	TypeCoding: {
		validate: shapeValidator(TypeCoding, func() interface{} { return &CodingPayload{} }),
	},
	TypeSignPractice: {
		validate: shapeValidator(TypeSignPractice, func() interface{} { return &SignPracticePayload{} }),
	},
}

func shapeValidator(t Type, newDst func() interface{}) ValidateFunc {
	return func(p json.RawMessage) error {
		return decodeStrict(t, p, newDst())
	}
}

// Known reports whether t is a registered type at all.
func Known(t Type) bool {
	_, ok := registry[t]
	return ok
}

// AutoScorable reports whether submissions of type t are scored by the
// engine. Manual types (open_ended, coding, sign_practice) are not.
func AutoScorable(t Type) bool {
	e, ok := registry[t]
	return ok && e.count != nil
}

// ScorerFor returns the scorer for t. A nil ScoreFunc with ok=true means the
// type is known but requires manual review; ok=false means t is unregistered
// and the caller is holding malformed data.
func ScorerFor(t Type) (ScoreFunc, bool) {
	e, ok := registry[t]
	if !ok {
		return nil, false
	}
	if e.count == nil {
		return nil, true
	}
	count := e.count
	return func(payload, answers json.RawMessage) (int, error) {
		c, err := count(payload, answers)
		if err != nil {
			return 0, err
		}
		return c.Percent(), nil
	}, true
}

// CounterFor returns the binary correctness tally function for t, used by
// challenge leaderboards. Manual types return (nil, true): skipped entirely,
// contributing nothing to correct or total.
func CounterFor(t Type) (CountFunc, bool) {
	e, ok := registry[t]
	if !ok {
		return nil, false
	}
	return e.count, true
}

// Correctness tallies binary per-item correctness for one submission.
// Manual and unknown types contribute (0, 0), as do malformed payloads;
// leaderboard accumulation never fails on a single bad row.
func Correctness(t Type, payload, answers json.RawMessage) (correct, total int) {
	count, ok := CounterFor(t)
	if !ok || count == nil {
		return 0, 0
	}
	c, err := count(payload, answers)
	if err != nil {
		return 0, 0
	}
	return c.Correct, c.Total
}

// ValidatorFor returns the payload validator for t.
func ValidatorFor(t Type) (ValidateFunc, bool) {
	e, ok := registry[t]
	if !ok {
		return nil, false
	}
	return e.validate, true
}
