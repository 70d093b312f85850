package service

import (
	"encoding/json"
	"signclass_backend/internal/model"
	"signclass_backend/internal/repository"
	"signclass_backend/internal/scoring"
	"signclass_backend/internal/util"
	"signclass_backend/pkg/monitoring"
	"time"
)

type ChallengeService struct {
	Repo      *repository.ChallengeRepository
	ClassRepo *repository.ClassRepository
}

func NewChallengeService(repo *repository.ChallengeRepository, classRepo *repository.ClassRepository) *ChallengeService {
	return &ChallengeService{
		Repo:      repo,
		ClassRepo: classRepo,
	}
}

type ChallengeRequest struct {
	ClassID         uint            `json:"classId" binding:"required"`
	Title           string          `json:"title" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Payload         json.RawMessage `json:"payload" binding:"required"`
	Rubric          json.RawMessage `json:"rubric"`
	MaxScore        float64         `json:"maxScore"`
	StartAt         *time.Time      `json:"startAt"`
	DueAt           *time.Time      `json:"dueAt"`
	AttemptsAllowed int             `json:"attemptsAllowed"`
}

func (s *ChallengeService) validate(req *ChallengeRequest) error {
	if err := validatePayload(req.Type, req.Payload); err != nil {
		return err
	}
	if _, err := scoring.DecodeRubric(req.Rubric); err != nil {
		return err
	}
	return nil
}

func (s *ChallengeService) Create(teacherID uint, req ChallengeRequest) (*model.Challenge, error) {
	class, err := s.ClassRepo.FindByID(req.ClassID)
	if err != nil {
		return nil, err
	}
	if class.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	maxScore := req.MaxScore
	if maxScore <= 0 {
		maxScore = 100
	}
	attempts := req.AttemptsAllowed
	if attempts < 1 {
		attempts = 1
	}

	challenge := &model.Challenge{
		ClassID:         req.ClassID,
		TeacherID:       teacherID,
		Title:           req.Title,
		Type:            req.Type,
		Payload:         req.Payload,
		Rubric:          req.Rubric,
		MaxScore:        maxScore,
		StartAt:         req.StartAt,
		DueAt:           req.DueAt,
		AttemptsAllowed: attempts,
	}
	if err := s.Repo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) Update(teacherID, id uint, req ChallengeRequest) (*model.Challenge, error) {
	challenge, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if challenge.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	challenge.Title = req.Title
	challenge.Type = req.Type
	challenge.Payload = req.Payload
	challenge.Rubric = req.Rubric
	if req.MaxScore > 0 {
		challenge.MaxScore = req.MaxScore
	}
	challenge.StartAt = req.StartAt
	challenge.DueAt = req.DueAt
	if req.AttemptsAllowed >= 1 {
		challenge.AttemptsAllowed = req.AttemptsAllowed
	}
	if err := s.Repo.Update(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) Delete(teacherID, id uint) error {
	challenge, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if challenge.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(id)
}

func (s *ChallengeService) Get(id uint) (*model.Challenge, error) {
	return s.Repo.FindByID(id)
}

func (s *ChallengeService) ListByClass(classID uint) ([]model.Challenge, error) {
	return s.Repo.ListByClass(classID)
}

type ChallengeSubmission struct {
	Answers json.RawMessage `json:"answers" binding:"required"`
}

type ChallengeSubmissionResult struct {
	Response     *model.ChallengeResponse `json:"response"`
	Score        *float64                 `json:"score"`
	NeedsReview  bool                     `json:"needsReview"`
	AttemptsLeft int                      `json:"attemptsLeft"`
}

// Submit admits a challenge attempt. Auto-scorable types get a score
// immediately and are marked approved; manual types stay pending until a
// teacher reviews them.
func (s *ChallengeService) Submit(studentID, challengeID uint, req ChallengeSubmission) (*ChallengeSubmissionResult, error) {
	challenge, err := s.Repo.FindByID(challengeID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.ClassRepo.IsEnrolled(challenge.ClassID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	used, err := s.Repo.CountAttempts(challengeID, studentID)
	if err != nil {
		return nil, err
	}

	sched := scoring.Schedule{
		StartAt:         challenge.StartAt,
		DueAt:           challenge.DueAt,
		AttemptsAllowed: challenge.AttemptsAllowed,
	}
	switch scoring.CheckAttemptPolicy(time.Now(), sched, used) {
	case scoring.StatusNotYetOpen:
		return nil, util.ErrNotYetOpen
	case scoring.StatusExpired:
		return nil, util.ErrExpired
	case scoring.StatusAttemptsExhausted:
		return nil, util.ErrAttemptsExhausted
	}

	scorer, ok := scoring.ScorerFor(scoring.Type(challenge.Type))
	if !ok {
		return nil, util.ErrUnknownType
	}

	var score *float64
	status := model.ReviewPending
	if scorer != nil {
		n, err := scorer(challenge.Payload, req.Answers)
		if err != nil {
			return nil, err
		}
		// Registry scores are percentages; scale to the challenge's maximum.
		f := float64(n) / 100 * challenge.MaxScore
		score = &f
		status = model.ReviewApproved
	}

	resp := &model.ChallengeResponse{
		ChallengeID:  challengeID,
		StudentID:    studentID,
		Answers:      req.Answers,
		Score:        score,
		ReviewStatus: status,
		CompletedAt:  time.Now(),
	}
	if err := s.Repo.CreateResponseWithAttemptGuard(resp); err != nil {
		return nil, err
	}

	monitoring.SubmissionsTotal.WithLabelValues("challenge", challenge.Type).Inc()

	return &ChallengeSubmissionResult{
		Response:     resp,
		Score:        score,
		NeedsReview:  scorer == nil,
		AttemptsLeft: challenge.AttemptsAllowed - resp.AttemptNo,
	}, nil
}

type ReviewRequest struct {
	Status        model.ReviewStatus `json:"status" binding:"required"`
	Score         *float64           `json:"score"`
	RubricScores  map[string]float64 `json:"rubricScores"`
	Feedback      string             `json:"feedback"`
	PriorReviewAt *time.Time         `json:"priorReviewAt"`
}

// resolveReviewScore picks the score a review establishes: rubric totals win,
// then a direct score, then whatever the response already carries. A review
// that only sets status and feedback must not wipe an earlier auto-computed
// score.
func resolveReviewScore(challenge *model.Challenge, req ReviewRequest, current *float64) (*float64, error) {
	switch {
	case len(req.RubricScores) > 0:
		criteria, err := scoring.DecodeRubric(challenge.Rubric)
		if err != nil {
			return nil, err
		}
		total := scoring.ScoreRubric(criteria, req.RubricScores, challenge.MaxScore)
		return &total, nil
	case req.Score != nil:
		return req.Score, nil
	default:
		return current, nil
	}
}

// Review grades a manual response. When a rubric exists and per-criterion
// scores are supplied, the total is computed from them, otherwise a direct
// score applies; absent both, the stored score stands. The write is
// compare-and-swap on the previous review timestamp so two graders cannot
// silently overwrite each other.
func (s *ChallengeService) Review(reviewerID uint, responseID string, req ReviewRequest) (*model.ChallengeResponse, error) {
	resp, err := s.Repo.FindResponseByID(responseID)
	if err != nil {
		return nil, err
	}

	challenge, err := s.Repo.FindByID(resp.ChallengeID)
	if err != nil {
		return nil, err
	}
	if challenge.TeacherID != reviewerID {
		return nil, util.ErrPermissionDenied
	}

	score, err := resolveReviewScore(challenge, req, resp.Score)
	if err != nil {
		return nil, err
	}

	resp.Score = score
	resp.ReviewStatus = req.Status
	resp.TeacherFeedback = req.Feedback
	resp.ReviewerID = &reviewerID
	if len(req.RubricScores) > 0 {
		raw, err := json.Marshal(req.RubricScores)
		if err != nil {
			return nil, err
		}
		resp.RubricScores = raw
	}
	now := time.Now()
	resp.ReviewedAt = &now

	if err := s.Repo.ApplyReview(resp, req.PriorReviewAt); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ChallengeService) MyResponses(studentID, challengeID uint) ([]model.ChallengeResponse, error) {
	return s.Repo.ListResponsesByStudent(studentID, challengeID)
}

func (s *ChallengeService) Responses(teacherID, challengeID uint) ([]model.ChallengeResponse, error) {
	challenge, err := s.Repo.FindByID(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return s.Repo.ListResponses(challengeID)
}

func (s *ChallengeService) PendingReviews(teacherID uint, page, limit int) ([]model.ChallengeResponse, int64, error) {
	return s.Repo.ListPendingReviews(teacherID, page, limit)
}
