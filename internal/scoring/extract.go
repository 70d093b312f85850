package scoring

import (
	"encoding/json"
	"math"
	"strconv"
)

// ExtractScore mines a numeric score out of an answers blob whose response
// row has no explicit score. It is a best-effort compatibility reader for
// rows written before server-side scoring; the stored score stays
// authoritative whenever present.
//
// Precedence, first match wins:
//  1. score, meta.score, summary.score: first value coercible to a finite
//     number.
//  2. Under the first array field named items, questions or responses: the
//     sum of element score fields, when any element has one.
//  3. Within that same array: the count of elements flagged correct or
//     isCorrect, as a raw count, not a percentage.
//  4. Nothing extractable.
//
// Malformed input never panics or errors; it just yields ok=false.
func ExtractScore(answers json.RawMessage) (float64, bool) {
	var v interface{}
	if err := json.Unmarshal(answers, &v); err != nil {
		return 0, false
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return 0, false
	}

	if n, ok := toFinite(obj["score"]); ok {
		return n, true
	}
	for _, key := range []string{"meta", "summary"} {
		if nested, ok := obj[key].(map[string]interface{}); ok {
			if n, ok := toFinite(nested["score"]); ok {
				return n, true
			}
		}
	}

	for _, key := range []string{"items", "questions", "responses"} {
		arr, ok := obj[key].([]interface{})
		if !ok {
			continue
		}
		return scoreFromElements(arr)
	}

	return 0, false
}

func scoreFromElements(arr []interface{}) (float64, bool) {
	sum := 0.0
	hasScore := false
	count := 0
	for _, el := range arr {
		m, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		if n, ok := toFinite(m["score"]); ok {
			sum += n
			hasScore = true
		}
		if m["correct"] == true || m["isCorrect"] == true {
			count++
		}
	}
	if hasScore {
		return sum, true
	}
	if len(arr) == 0 {
		// An empty item list carries no signal; excluding it from averages
		// beats reporting a zero the student never earned.
		return 0, false
	}
	return float64(count), true
}

func toFinite(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
