package service

import (
	"context"
	"encoding/json"
	"fmt"
	"signclass_backend/internal/model"
	"signclass_backend/internal/repository"
	"signclass_backend/internal/scoring"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
)

// MetricsService recomputes class and platform aggregates from stored
// responses. Results are cached briefly in Redis on the read path; the
// aggregation itself never reads the cache.
type MetricsService struct {
	MetricsRepo *repository.MetricsRepository
	ClassRepo   *repository.ClassRepository
	UserRepo    *repository.UserRepository
	EvalRepo    *repository.EvaluationRepository
	ChalRepo    *repository.ChallengeRepository
	RespRepo    *repository.EvaluationResponseRepository
	Redis       *redis.Client
}

func NewMetricsService(
	metricsRepo *repository.MetricsRepository,
	classRepo *repository.ClassRepository,
	userRepo *repository.UserRepository,
	evalRepo *repository.EvaluationRepository,
	chalRepo *repository.ChallengeRepository,
	respRepo *repository.EvaluationResponseRepository,
	redisClient *redis.Client,
) *MetricsService {
	return &MetricsService{
		MetricsRepo: metricsRepo,
		ClassRepo:   classRepo,
		UserRepo:    userRepo,
		EvalRepo:    evalRepo,
		ChalRepo:    chalRepo,
		RespRepo:    respRepo,
		Redis:       redisClient,
	}
}

const metricsCacheTTL = 60 * time.Second

// scoreOf resolves the score of an evaluation response: the stored score
// when present, otherwise a best-effort extraction from the answers blob.
func scoreOf(resp *model.EvaluationResponse) (float64, bool) {
	if resp.Score != nil {
		return *resp.Score, true
	}
	if v, ok := scoring.ExtractScore(resp.Answers); ok {
		return v, true
	}
	return 0, false
}

// meanScore averages all resolvable scores; nil when none resolve.
func meanScore(responses []model.EvaluationResponse) *float64 {
	var sum float64
	var n int
	for i := range responses {
		if v, ok := scoreOf(&responses[i]); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// rankStudents groups responses by student and orders by mean score
// descending, then scored count descending, then student id ascending.
func rankStudents(responses []model.EvaluationResponse, names map[uint]string, limit int) []model.StudentRank {
	type acc struct {
		sum float64
		n   int
	}
	byStudent := make(map[uint]*acc)
	for i := range responses {
		v, ok := scoreOf(&responses[i])
		if !ok {
			continue
		}
		a := byStudent[responses[i].StudentID]
		if a == nil {
			a = &acc{}
			byStudent[responses[i].StudentID] = a
		}
		a.sum += v
		a.n++
	}

	ranks := make([]model.StudentRank, 0, len(byStudent))
	for id, a := range byStudent {
		avg := a.sum / float64(a.n)
		ranks = append(ranks, model.StudentRank{
			StudentID:   id,
			Name:        names[id],
			AvgScore:    &avg,
			ScoredCount: a.n,
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if *ranks[i].AvgScore != *ranks[j].AvgScore {
			return *ranks[i].AvgScore > *ranks[j].AvgScore
		}
		if ranks[i].ScoredCount != ranks[j].ScoredCount {
			return ranks[i].ScoredCount > ranks[j].ScoredCount
		}
		return ranks[i].StudentID < ranks[j].StudentID
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// buildLeaderboard tallies per-answer correctness across challenge responses.
// Every responding student gets a row: manual and unknown types contribute
// nothing to either side of the tally, so a student with only manual
// submissions surfaces at 0% rather than vanishing. Ordering is percentage
// descending, correct descending, student id ascending.
func buildLeaderboard(challenges []model.Challenge, responses []model.ChallengeResponse, names map[uint]string) []model.LeaderboardRank {
	types := make(map[uint]scoring.Type, len(challenges))
	payloads := make(map[uint]json.RawMessage, len(challenges))
	for i := range challenges {
		types[challenges[i].ID] = scoring.Type(challenges[i].Type)
		payloads[challenges[i].ID] = challenges[i].Payload
	}

	totals := make(map[uint]scoring.Counts)
	for i := range responses {
		typ, ok := types[responses[i].ChallengeID]
		if !ok {
			continue
		}
		correct, total := scoring.Correctness(typ, payloads[responses[i].ChallengeID], responses[i].Answers)
		t := totals[responses[i].StudentID]
		t.Correct += correct
		t.Total += total
		totals[responses[i].StudentID] = t
	}

	board := make([]model.LeaderboardRank, 0, len(totals))
	for id, c := range totals {
		rank := model.LeaderboardRank{
			StudentID: id,
			Name:      names[id],
			Correct:   c.Correct,
			Total:     c.Total,
		}
		if c.Total > 0 {
			rank.Percentage = float64(c.Correct) / float64(c.Total) * 100
		}
		board = append(board, rank)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].Percentage != board[j].Percentage {
			return board[i].Percentage > board[j].Percentage
		}
		if board[i].Correct != board[j].Correct {
			return board[i].Correct > board[j].Correct
		}
		return board[i].StudentID < board[j].StudentID
	})
	return board
}

// classTeacherRanks is the class-level teacher ranking. A class has exactly
// one owning teacher, so the list degenerates to a single entry carrying the
// class average.
func classTeacherRanks(teacherID uint, name string, responses []model.EvaluationResponse) []model.TeacherRank {
	return []model.TeacherRank{{
		TeacherID:     teacherID,
		Name:          name,
		AvgClassScore: meanScore(responses),
		ClassCount:    1,
	}}
}

func (s *MetricsService) studentNames(ids []uint) map[uint]string {
	names := make(map[uint]string, len(ids))
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return names
	}
	for i := range users {
		names[users[i].ID] = users[i].Name
	}
	return names
}

func collectStudentIDs(evalResps []model.EvaluationResponse, chalResps []model.ChallengeResponse) []uint {
	seen := make(map[uint]struct{})
	var ids []uint
	for i := range evalResps {
		if _, ok := seen[evalResps[i].StudentID]; !ok {
			seen[evalResps[i].StudentID] = struct{}{}
			ids = append(ids, evalResps[i].StudentID)
		}
	}
	for i := range chalResps {
		if _, ok := seen[chalResps[i].StudentID]; !ok {
			seen[chalResps[i].StudentID] = struct{}{}
			ids = append(ids, chalResps[i].StudentID)
		}
	}
	return ids
}

// BuildClassMetrics walks the class hierarchy and aggregates everything a
// teacher dashboard needs. Empty levels short-circuit to empty results
// rather than erroring.
func (s *MetricsService) BuildClassMetrics(ctx context.Context, classID uint) (*model.ClassMetrics, error) {
	cacheKey := fmt.Sprintf("metrics:class:%d", classID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var m model.ClassMetrics
			if json.Unmarshal([]byte(cached), &m) == nil {
				return &m, nil
			}
		}
	}

	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		return nil, err
	}

	evalResps, evalCount, err := s.MetricsRepo.ClassEvaluationResponses(classID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.ClassRepo.EnrollmentCount(classID)
	if err != nil {
		return nil, err
	}

	chalIDs, err := s.MetricsRepo.ChallengeIDs(classID)
	if err != nil {
		return nil, err
	}
	challenges, err := s.MetricsRepo.ChallengesByIDs(chalIDs)
	if err != nil {
		return nil, err
	}
	chalResps, err := s.MetricsRepo.ResponsesForChallenges(chalIDs)
	if err != nil {
		return nil, err
	}

	names := s.studentNames(collectStudentIDs(evalResps, chalResps))
	teacherNames := s.studentNames([]uint{class.TeacherID})

	metrics := &model.ClassMetrics{
		ClassID:          classID,
		AvgScore:         meanScore(evalResps),
		AvgProgress:      0,
		Enrollments:      enrollments,
		EvaluationsCount: evalCount,
		TopStudents:      rankStudents(evalResps, names, 10),
		TopTeachers:      classTeacherRanks(class.TeacherID, teacherNames[class.TeacherID], evalResps),
		Leaderboard:      buildLeaderboard(challenges, chalResps, names),
	}

	lessonIDs, err := s.MetricsRepo.LessonIDs(classID)
	if err != nil {
		return nil, err
	}
	studentIDs, err := s.ClassRepo.StudentIDs(classID)
	if err != nil {
		return nil, err
	}
	if len(lessonIDs) > 0 && len(studentIDs) > 0 {
		completed, err := s.MetricsRepo.CompletedLessonCount(studentIDs, lessonIDs)
		if err != nil {
			return nil, err
		}
		metrics.AvgProgress = float64(completed) / float64(len(lessonIDs)*len(studentIDs)) * 100
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(metrics); err == nil {
			s.Redis.Set(ctx, cacheKey, raw, metricsCacheTTL)
		}
	}
	return metrics, nil
}

// BuildPlatformMetrics fans out over every class for the admin overview.
func (s *MetricsService) BuildPlatformMetrics(ctx context.Context) (*model.PlatformMetrics, error) {
	cacheKey := "metrics:platform"
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var m model.PlatformMetrics
			if json.Unmarshal([]byte(cached), &m) == nil {
				return &m, nil
			}
		}
	}

	students, err := s.UserRepo.CountByRole(model.Student)
	if err != nil {
		return nil, err
	}
	teachers, err := s.UserRepo.CountByRole(model.Teacher)
	if err != nil {
		return nil, err
	}
	classes, err := s.ClassRepo.Count()
	if err != nil {
		return nil, err
	}
	evaluations, err := s.EvalRepo.Count()
	if err != nil {
		return nil, err
	}
	challenges, err := s.ChalRepo.Count()
	if err != nil {
		return nil, err
	}
	evalRespCount, err := s.RespRepo.Count()
	if err != nil {
		return nil, err
	}
	chalRespCount, err := s.ChalRepo.CountResponses()
	if err != nil {
		return nil, err
	}

	byTeacher, err := s.MetricsRepo.AllClassIDsByTeacher()
	if err != nil {
		return nil, err
	}

	var allResps []model.EvaluationResponse
	var teacherRanks []model.TeacherRank
	for teacherID, classIDs := range byTeacher {
		var teacherResps []model.EvaluationResponse
		for _, classID := range classIDs {
			resps, _, err := s.MetricsRepo.ClassEvaluationResponses(classID)
			if err != nil {
				return nil, err
			}
			teacherResps = append(teacherResps, resps...)
		}
		allResps = append(allResps, teacherResps...)
		teacherRanks = append(teacherRanks, model.TeacherRank{
			TeacherID:     teacherID,
			AvgClassScore: meanScore(teacherResps),
			ClassCount:    len(classIDs),
		})
	}

	sortTeacherRanks(teacherRanks)
	if len(teacherRanks) > 10 {
		teacherRanks = teacherRanks[:10]
	}

	teacherIDs := make([]uint, 0, len(teacherRanks))
	for i := range teacherRanks {
		teacherIDs = append(teacherIDs, teacherRanks[i].TeacherID)
	}
	teacherNames := s.studentNames(teacherIDs)
	for i := range teacherRanks {
		teacherRanks[i].Name = teacherNames[teacherRanks[i].TeacherID]
	}

	names := s.studentNames(collectStudentIDs(allResps, nil))

	metrics := &model.PlatformMetrics{
		Students:    students,
		Teachers:    teachers,
		Classes:     classes,
		Evaluations: evaluations,
		Challenges:  challenges,
		Responses:   evalRespCount + chalRespCount,
		AvgScore:    meanScore(allResps),
		TopStudents: rankStudents(allResps, names, 10),
		TopTeachers: teacherRanks,
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(metrics); err == nil {
			s.Redis.Set(ctx, cacheKey, raw, metricsCacheTTL)
		}
	}
	return metrics, nil
}

// sortTeacherRanks orders by mean class score descending with nil averages
// last, then class count descending, then teacher id ascending.
func sortTeacherRanks(ranks []model.TeacherRank) {
	sort.Slice(ranks, func(i, j int) bool {
		a, b := ranks[i].AvgClassScore, ranks[j].AvgClassScore
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		if ranks[i].ClassCount != ranks[j].ClassCount {
			return ranks[i].ClassCount > ranks[j].ClassCount
		}
		return ranks[i].TeacherID < ranks[j].TeacherID
	})
}

// StudentOverview summarizes one student's standing across their classes.
type StudentOverview struct {
	Classes     int      `json:"classes"`
	Submissions int      `json:"submissions"`
	AvgScore    *float64 `json:"avgScore"`
}

func (s *MetricsService) BuildStudentOverview(ctx context.Context, studentID uint) (*StudentOverview, error) {
	classes, err := s.ClassRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	var mine []model.EvaluationResponse
	for i := range classes {
		resps, _, err := s.MetricsRepo.ClassEvaluationResponses(classes[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range resps {
			if resps[j].StudentID == studentID {
				mine = append(mine, resps[j])
			}
		}
	}

	return &StudentOverview{
		Classes:     len(classes),
		Submissions: len(mine),
		AvgScore:    meanScore(mine),
	}, nil
}
