package service

import (
	"encoding/json"
	"signclass_backend/internal/model"
	"signclass_backend/internal/repository"
	"signclass_backend/internal/scoring"
	"signclass_backend/internal/util"
	"signclass_backend/pkg/monitoring"
	"sort"
	"time"
)

type EvaluationService struct {
	Repo         *repository.EvaluationRepository
	ResponseRepo *repository.EvaluationResponseRepository
	LessonRepo   *repository.LessonRepository
}

func NewEvaluationService(
	repo *repository.EvaluationRepository,
	responseRepo *repository.EvaluationResponseRepository,
	lessonRepo *repository.LessonRepository,
) *EvaluationService {
	return &EvaluationService{
		Repo:         repo,
		ResponseRepo: responseRepo,
		LessonRepo:   lessonRepo,
	}
}

type EvaluationRequest struct {
	ActivityID      uint            `json:"activityId" binding:"required"`
	Title           string          `json:"title" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Questions       json.RawMessage `json:"questions" binding:"required"`
	StartAt         *time.Time      `json:"startAt"`
	DueAt           *time.Time      `json:"dueAt"`
	AttemptsAllowed int             `json:"attemptsAllowed"`
}

// validatePayload rejects a questions blob whose shape does not match the
// declared type before anything is persisted.
func validatePayload(typ string, payload json.RawMessage) error {
	validate, ok := scoring.ValidatorFor(scoring.Type(typ))
	if !ok {
		return util.ErrUnknownType
	}
	return validate(payload)
}

func (s *EvaluationService) Create(teacherID uint, req EvaluationRequest) (*model.Evaluation, error) {
	if err := validatePayload(req.Type, req.Questions); err != nil {
		return nil, err
	}

	attempts := req.AttemptsAllowed
	if attempts < 1 {
		attempts = 1
	}

	eval := &model.Evaluation{
		ActivityID:      req.ActivityID,
		TeacherID:       teacherID,
		Title:           req.Title,
		Type:            req.Type,
		Questions:       req.Questions,
		StartAt:         req.StartAt,
		DueAt:           req.DueAt,
		AttemptsAllowed: attempts,
	}
	if err := s.Repo.Create(eval); err != nil {
		return nil, err
	}
	return eval, nil
}

func (s *EvaluationService) Update(teacherID, id uint, req EvaluationRequest) (*model.Evaluation, error) {
	eval, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if eval.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	if err := validatePayload(req.Type, req.Questions); err != nil {
		return nil, err
	}

	eval.Title = req.Title
	eval.Type = req.Type
	eval.Questions = req.Questions
	eval.StartAt = req.StartAt
	eval.DueAt = req.DueAt
	if req.AttemptsAllowed >= 1 {
		eval.AttemptsAllowed = req.AttemptsAllowed
	}
	if err := s.Repo.Update(eval); err != nil {
		return nil, err
	}
	return eval, nil
}

func (s *EvaluationService) Delete(teacherID, id uint) error {
	eval, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if eval.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(id)
}

func (s *EvaluationService) Get(id uint) (*model.Evaluation, error) {
	return s.Repo.FindByID(id)
}

func (s *EvaluationService) ListByActivity(activityID uint) ([]model.Evaluation, error) {
	return s.Repo.ListByActivity(activityID)
}

func (s *EvaluationService) ListMine(teacherID uint, page, limit int) ([]model.Evaluation, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByTeacher(teacherID, page, limit)
}

// StudentEvaluation is the student-facing view: answer keys are stripped
// from the payload before it leaves the server.
type StudentEvaluation struct {
	ID              uint            `json:"id"`
	ActivityID      uint            `json:"activityId"`
	Title           string          `json:"title"`
	Type            string          `json:"type"`
	Questions       json.RawMessage `json:"questions"`
	StartAt         *time.Time      `json:"startAt,omitempty"`
	DueAt           *time.Time      `json:"dueAt,omitempty"`
	AttemptsAllowed int             `json:"attemptsAllowed"`
	AttemptsUsed    int             `json:"attemptsUsed"`
	Status          string          `json:"status"`
}

func (s *EvaluationService) GetForStudent(studentID, id uint) (*StudentEvaluation, error) {
	eval, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	used, err := s.ResponseRepo.CountAttempts(id, studentID)
	if err != nil {
		return nil, err
	}

	status := scoring.CheckAttemptPolicy(time.Now(), schedule(eval), used)

	return &StudentEvaluation{
		ID:              eval.ID,
		ActivityID:      eval.ActivityID,
		Title:           eval.Title,
		Type:            eval.Type,
		Questions:       stripAnswerKeys(eval.Type, eval.Questions),
		StartAt:         eval.StartAt,
		DueAt:           eval.DueAt,
		AttemptsAllowed: eval.AttemptsAllowed,
		AttemptsUsed:    used,
		Status:          string(status),
	}, nil
}

func schedule(eval *model.Evaluation) scoring.Schedule {
	return scoring.Schedule{
		StartAt:         eval.StartAt,
		DueAt:           eval.DueAt,
		AttemptsAllowed: eval.AttemptsAllowed,
	}
}

// stripAnswerKeys removes correct answers from an authored payload. Unknown
// or manual types pass through unchanged; their payloads carry no keys.
func stripAnswerKeys(typ string, payload json.RawMessage) json.RawMessage {
	switch scoring.Type(typ) {
	case scoring.TypeQuiz:
		var questions []map[string]interface{}
		if json.Unmarshal(payload, &questions) != nil {
			return payload
		}
		for _, q := range questions {
			delete(q, "correct_index")
		}
		out, _ := json.Marshal(questions)
		return out
	case scoring.TypeFillBlank:
		var items []map[string]interface{}
		if json.Unmarshal(payload, &items) != nil {
			return payload
		}
		for _, item := range items {
			if blanks, ok := item["blanks"].([]interface{}); ok {
				item["blank_count"] = len(blanks)
			}
			delete(item, "blanks")
		}
		out, _ := json.Marshal(items)
		return out
	case scoring.TypeMatching:
		var p map[string]interface{}
		if json.Unmarshal(payload, &p) != nil {
			return payload
		}
		pairs, ok := p["pairs"].([]interface{})
		if !ok {
			return payload
		}
		lefts := make([]map[string]interface{}, 0, len(pairs))
		rights := make([]map[string]interface{}, 0, len(pairs))
		for _, el := range pairs {
			pair, ok := el.(map[string]interface{})
			if !ok {
				continue
			}
			lefts = append(lefts, map[string]interface{}{"id": pair["id"], "text": pair["left"]})
			rights = append(rights, map[string]interface{}{"id": pair["id"], "text": pair["right"]})
		}
		// The pair grouping is itself the key: split the columns and order the
		// right side on its own so position reveals nothing.
		sort.Slice(rights, func(i, j int) bool {
			a, _ := rights[i]["text"].(string)
			b, _ := rights[j]["text"].(string)
			return a < b
		})
		delete(p, "pairs")
		p["left"] = lefts
		p["right"] = rights
		out, _ := json.Marshal(p)
		return out
	case scoring.TypeDragDrop:
		var p map[string]interface{}
		if json.Unmarshal(payload, &p) != nil {
			return payload
		}
		if dd, ok := p["dragdrop"].(map[string]interface{}); ok {
			delete(dd, "mapping")
		}
		out, _ := json.Marshal(p)
		return out
	case scoring.TypeMultipleChoice, scoring.TypeSelectImage:
		var p map[string]interface{}
		if json.Unmarshal(payload, &p) != nil {
			return payload
		}
		delete(p, "correct_index")
		out, _ := json.Marshal(p)
		return out
	default:
		return payload
	}
}

type SubmissionRequest struct {
	Answers json.RawMessage `json:"answers" binding:"required"`
}

type SubmissionResult struct {
	Response     *model.EvaluationResponse `json:"response"`
	Score        *float64                  `json:"score"`
	NeedsReview  bool                      `json:"needsReview"`
	AttemptsLeft int                       `json:"attemptsLeft"`
}

// Submit runs the full admission-and-scoring path: payload validation,
// attempt policy, server-side scoring, guarded insert. The policy check here
// handles windows and gives a friendly attempt count; the insert re-checks
// the count atomically so concurrent submissions cannot exceed the budget.
func (s *EvaluationService) Submit(studentID, evaluationID uint, req SubmissionRequest) (*SubmissionResult, error) {
	eval, err := s.Repo.FindByID(evaluationID)
	if err != nil {
		return nil, err
	}

	used, err := s.ResponseRepo.CountAttempts(evaluationID, studentID)
	if err != nil {
		return nil, err
	}

	switch scoring.CheckAttemptPolicy(time.Now(), schedule(eval), used) {
	case scoring.StatusNotYetOpen:
		return nil, util.ErrNotYetOpen
	case scoring.StatusExpired:
		return nil, util.ErrExpired
	case scoring.StatusAttemptsExhausted:
		return nil, util.ErrAttemptsExhausted
	}

	scorer, ok := scoring.ScorerFor(scoring.Type(eval.Type))
	if !ok {
		return nil, util.ErrUnknownType
	}

	var score *float64
	needsReview := scorer == nil
	if scorer != nil {
		n, err := scorer(eval.Questions, req.Answers)
		if err != nil {
			return nil, err
		}
		f := float64(n)
		score = &f
	}

	resp := &model.EvaluationResponse{
		EvaluationID: evaluationID,
		StudentID:    studentID,
		Answers:      req.Answers,
		Score:        score,
		CompletedAt:  time.Now(),
	}
	if err := s.ResponseRepo.CreateWithAttemptGuard(resp); err != nil {
		return nil, err
	}

	monitoring.SubmissionsTotal.WithLabelValues("evaluation", eval.Type).Inc()

	return &SubmissionResult{
		Response:     resp,
		Score:        score,
		NeedsReview:  needsReview,
		AttemptsLeft: eval.AttemptsAllowed - resp.AttemptNo,
	}, nil
}

func (s *EvaluationService) MyResponses(studentID, evaluationID uint) ([]model.EvaluationResponse, error) {
	return s.ResponseRepo.ListByStudentAndEvaluation(studentID, evaluationID)
}

func (s *EvaluationService) Responses(teacherID, evaluationID uint) ([]model.EvaluationResponse, error) {
	eval, err := s.Repo.FindByID(evaluationID)
	if err != nil {
		return nil, err
	}
	if eval.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return s.ResponseRepo.ListByEvaluation(evaluationID)
}

// Response fetches a single submission for the owning teacher, used when
// inspecting manually graded answers.
func (s *EvaluationService) Response(teacherID uint, responseID string) (*model.EvaluationResponse, error) {
	resp, err := s.ResponseRepo.FindByID(responseID)
	if err != nil {
		return nil, err
	}
	eval, err := s.Repo.FindByID(resp.EvaluationID)
	if err != nil {
		return nil, err
	}
	if eval.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return resp, nil
}
