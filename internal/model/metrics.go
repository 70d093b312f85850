package model

// Aggregation output shapes. All are recomputed from stored rows on demand;
// nothing here is persisted.

type ClassMetrics struct {
	ClassID          uint              `json:"classId"`
	AvgScore         *float64          `json:"avgScore"` // nil when no scored responses
	AvgProgress      float64           `json:"avgProgress"`
	Enrollments      int64             `json:"enrollments"`
	EvaluationsCount int64             `json:"evaluationsCount"`
	TopStudents      []StudentRank     `json:"topStudents"`
	TopTeachers      []TeacherRank     `json:"topTeachers"`
	Leaderboard      []LeaderboardRank `json:"leaderboard"`
}

type PlatformMetrics struct {
	Students         int64         `json:"students"`
	Teachers         int64         `json:"teachers"`
	Classes          int64         `json:"classes"`
	Evaluations      int64         `json:"evaluations"`
	Challenges       int64         `json:"challenges"`
	Responses        int64         `json:"responses"`
	AvgScore         *float64      `json:"avgScore"`
	TopStudents      []StudentRank `json:"topStudents"`
	TopTeachers      []TeacherRank `json:"topTeachers"`
}

// StudentRank orders students by mean extracted score; ScoredCount breaks
// ties, then StudentID for determinism.
type StudentRank struct {
	StudentID   uint     `json:"studentId"`
	Name        string   `json:"name"`
	AvgScore    *float64 `json:"avgScore"`
	ScoredCount int      `json:"scoredCount"`
}

type TeacherRank struct {
	TeacherID     uint     `json:"teacherId"`
	Name          string   `json:"name"`
	AvgClassScore *float64 `json:"avgClassScore"`
	ClassCount    int      `json:"classCount"`
}

// LeaderboardRank accumulates binary correctness over auto-gradable
// challenges; Percentage is 0 when Total is 0.
type LeaderboardRank struct {
	StudentID  uint    `json:"studentId"`
	Name       string  `json:"name"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}
