package scoring

import "encoding/json"

// RubricCriterion is one weighted criterion of a teacher's manual grading
// rubric.
type RubricCriterion struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// DecodeRubric parses a stored rubric blob. An empty blob is a valid
// rubric-less challenge.
func DecodeRubric(raw json.RawMessage) ([]RubricCriterion, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var criteria []RubricCriterion
	if err := json.Unmarshal(raw, &criteria); err != nil {
		return nil, &ValidationError{Type: "rubric", Reason: err.Error()}
	}
	return criteria, nil
}

// ScoreRubric totals the points a teacher awarded per criterion. Each
// criterion is capped at its configured weight and floored at zero; the total
// is clamped to [0, maxScore]. Awarded points for criterion ids not in the
// rubric are ignored.
func ScoreRubric(criteria []RubricCriterion, awarded map[string]float64, maxScore float64) float64 {
	total := 0.0
	for _, c := range criteria {
		pts, ok := awarded[c.ID]
		if !ok {
			continue
		}
		if pts < 0 {
			pts = 0
		}
		if c.Weight >= 0 && pts > c.Weight {
			pts = c.Weight
		}
		total += pts
	}
	if total < 0 {
		total = 0
	}
	if maxScore > 0 && total > maxScore {
		total = maxScore
	}
	return total
}
