package service

import (
	"encoding/json"
	"signclass_backend/internal/model"
	"testing"
)

func TestResolveReviewScore(t *testing.T) {
	challenge := &model.Challenge{
		MaxScore: 100,
		Rubric:   json.RawMessage(`[{"id":"clarity","label":"Clarity","weight":60},{"id":"accuracy","label":"Accuracy","weight":40}]`),
	}

	tests := []struct {
		name    string
		req     ReviewRequest
		current *float64
		want    *float64
	}{
		{
			name:    "rubric scores win over direct score",
			req:     ReviewRequest{RubricScores: map[string]float64{"clarity": 50, "accuracy": 30}, Score: floatPtr(10)},
			current: floatPtr(90),
			want:    floatPtr(80),
		},
		{
			name:    "direct score applies without rubric",
			req:     ReviewRequest{Score: floatPtr(65)},
			current: floatPtr(90),
			want:    floatPtr(65),
		},
		{
			name:    "feedback-only review keeps the stored score",
			req:     ReviewRequest{Status: model.ReviewNeedsRevision, Feedback: "redo the second sign"},
			current: floatPtr(90),
			want:    floatPtr(90),
		},
		{
			name:    "feedback-only review on an unscored response stays unscored",
			req:     ReviewRequest{Status: model.ReviewNeedsRevision},
			current: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveReviewScore(challenge, tt.req, tt.current)
			if err != nil {
				t.Fatalf("resolveReviewScore() error = %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("resolveReviewScore() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("resolveReviewScore() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestResolveReviewScoreBadRubric(t *testing.T) {
	challenge := &model.Challenge{
		MaxScore: 100,
		Rubric:   json.RawMessage(`{"not":"an array"}`),
	}
	req := ReviewRequest{RubricScores: map[string]float64{"clarity": 10}}

	if _, err := resolveReviewScore(challenge, req, nil); err == nil {
		t.Fatal("expected an error for a malformed rubric")
	}
}
