package scoring

import (
	"encoding/json"
	"fmt"
)

// Type tags an evaluation or challenge with the payload shape it carries and
// the scorer that understands it.
type Type string

const (
	// Evaluation types (activity-scoped).
	TypeQuiz      Type = "quiz"
	TypeFillBlank Type = "fill_blank"
	TypeMatching  Type = "matching"
	TypeDragDrop  Type = "dragdrop"
	TypeCoding    Type = "coding"
	TypeOpenEnded Type = "open_ended"

	// Challenge types (class-scoped).
	TypeMultipleChoice Type = "multiple_choice"
	TypeSelectImage    Type = "select_image"
	TypeSignPractice   Type = "sign_practice"
)

// QuizQuestion is one entry of a quiz payload.
type QuizQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// QuizAnswers carries the selected option index per question, aligned with
// the payload order. A missing or out-of-range index is simply wrong.
type QuizAnswers struct {
	Selected []int `json:"selected"`
}

// FillBlankItem is one prompt with its expected blank values in order.
type FillBlankItem struct {
	Prompt string   `json:"prompt"`
	Blanks []string `json:"blanks"`
}

// FillBlankAnswers mirrors the payload: one answer slice per item.
type FillBlankAnswers struct {
	Blanks [][]string `json:"blanks"`
}

// MatchingPair links a left entry to its designated right entry. The pair id
// doubles as the right-side id students select.
type MatchingPair struct {
	ID    string `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

type MatchingPayload struct {
	Pairs []MatchingPair `json:"pairs"`
}

// MatchingAnswers maps pair id -> selected right id.
type MatchingAnswers struct {
	Matches map[string]string `json:"matches"`
}

type DragDropItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type DragDropTarget struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DragDropPayload nests under a "dragdrop" key, matching the stored shape.
type DragDropPayload struct {
	DragDrop struct {
		Items   []DragDropItem    `json:"items"`
		Targets []DragDropTarget  `json:"targets"`
		Mapping map[string]string `json:"mapping"` // item id -> correct target id
	} `json:"dragdrop"`
}

// DragDropAnswers maps item id -> target id the student dropped it on.
type DragDropAnswers struct {
	Placements map[string]string `json:"placements"`
}

// ChoiceOption is one selectable option of a multiple_choice or select_image
// challenge. ImageURL is set for select_image.
type ChoiceOption struct {
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// ChoicePayload stores the correct option as an index into Options; the
// correct option id is resolved by lookup at scoring time.
type ChoicePayload struct {
	Prompt       string         `json:"prompt"`
	Options      []ChoiceOption `json:"options"`
	CorrectIndex int            `json:"correct_index"`
}

type ChoiceAnswers struct {
	OptionID string `json:"option_id"`
}

// OpenEndedPayload and friends exist so manual types still validate shape at
// submission time, even though no scorer runs.
type OpenEndedPayload struct {
	Prompt string `json:"prompt"`
}

type CodingPayload struct {
	Prompt      string `json:"prompt"`
	Language    string `json:"language"`
	StarterCode string `json:"starter_code,omitempty"`
}

type SignPracticePayload struct {
	Prompt            string `json:"prompt"`
	ReferenceVideoURL string `json:"reference_video_url,omitempty"`
}

// ValidationError reports a payload or answer blob whose shape does not match
// the declared type. Submissions carrying one are rejected before scoring.
type ValidationError struct {
	Type   Type
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Type, e.Reason)
}

func invalid(t Type, format string, args ...interface{}) error {
	return &ValidationError{Type: t, Reason: fmt.Sprintf(format, args...)}
}

func decodeStrict(t Type, raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return invalid(t, "empty payload")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalid(t, "%v", err)
	}
	return nil
}
