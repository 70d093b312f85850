package scoring

import (
	"encoding/json"
	"math"
	"strings"
)

// Counts is the binary correctness tally of one submission. Leaderboards
// accumulate these directly; per-submission scores derive from them.
type Counts struct {
	Correct int
	Total   int
}

// Percent converts a tally to an integer score in [0,100]. An empty tally is
// defined as 0, never a division by zero.
func (c Counts) Percent() int {
	if c.Total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(c.Correct) / float64(c.Total)))
}

func normalizeBlank(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func countQuiz(payload, answers json.RawMessage) (Counts, error) {
	var questions []QuizQuestion
	if err := decodeStrict(TypeQuiz, payload, &questions); err != nil {
		return Counts{}, err
	}
	for i, q := range questions {
		if len(q.Options) == 0 {
			return Counts{}, invalid(TypeQuiz, "question %d has no options", i)
		}
	}
	var ans QuizAnswers
	if err := decodeStrict(TypeQuiz, answers, &ans); err != nil {
		return Counts{}, err
	}

	c := Counts{Total: len(questions)}
	for i, q := range questions {
		if i >= len(ans.Selected) {
			continue
		}
		if ans.Selected[i] == q.CorrectIndex {
			c.Correct++
		}
	}
	return c, nil
}

func countFillBlank(payload, answers json.RawMessage) (Counts, error) {
	var items []FillBlankItem
	if err := decodeStrict(TypeFillBlank, payload, &items); err != nil {
		return Counts{}, err
	}
	var ans FillBlankAnswers
	if err := decodeStrict(TypeFillBlank, answers, &ans); err != nil {
		return Counts{}, err
	}

	var c Counts
	for i, item := range items {
		c.Total += len(item.Blanks)
		if i >= len(ans.Blanks) {
			continue
		}
		given := ans.Blanks[i]
		for j, expected := range item.Blanks {
			if j >= len(given) {
				continue
			}
			if normalizeBlank(given[j]) == normalizeBlank(expected) {
				c.Correct++
			}
		}
	}
	return c, nil
}

func countMatching(payload, answers json.RawMessage) (Counts, error) {
	var p MatchingPayload
	if err := decodeStrict(TypeMatching, payload, &p); err != nil {
		return Counts{}, err
	}
	var ans MatchingAnswers
	if err := decodeStrict(TypeMatching, answers, &ans); err != nil {
		return Counts{}, err
	}

	c := Counts{Total: len(p.Pairs)}
	for _, pair := range p.Pairs {
		// A match is correct only when the selected right id is the pair's
		// own id; anything else, including ids not in the payload, is wrong.
		if ans.Matches[pair.ID] == pair.ID {
			c.Correct++
		}
	}
	return c, nil
}

func countDragDrop(payload, answers json.RawMessage) (Counts, error) {
	var p DragDropPayload
	if err := decodeStrict(TypeDragDrop, payload, &p); err != nil {
		return Counts{}, err
	}
	var ans DragDropAnswers
	if err := decodeStrict(TypeDragDrop, answers, &ans); err != nil {
		return Counts{}, err
	}

	c := Counts{Total: len(p.DragDrop.Items)}
	for _, item := range p.DragDrop.Items {
		want, ok := p.DragDrop.Mapping[item.ID]
		if !ok {
			continue
		}
		if got, ok := ans.Placements[item.ID]; ok && got == want {
			c.Correct++
		}
	}
	return c, nil
}

func countChoice(t Type) func(payload, answers json.RawMessage) (Counts, error) {
	return func(payload, answers json.RawMessage) (Counts, error) {
		var p ChoicePayload
		if err := decodeStrict(t, payload, &p); err != nil {
			return Counts{}, err
		}
		if len(p.Options) == 0 {
			return Counts{}, invalid(t, "no options")
		}
		var ans ChoiceAnswers
		if err := decodeStrict(t, answers, &ans); err != nil {
			return Counts{}, err
		}

		c := Counts{Total: 1}
		if p.CorrectIndex >= 0 && p.CorrectIndex < len(p.Options) &&
			ans.OptionID == p.Options[p.CorrectIndex].ID {
			c.Correct = 1
		}
		return c, nil
	}
}
