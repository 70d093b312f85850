package service

import (
	"encoding/json"
	"signclass_backend/internal/model"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func evalResp(studentID uint, score *float64, answers string) model.EvaluationResponse {
	return model.EvaluationResponse{
		StudentID: studentID,
		Score:     score,
		Answers:   json.RawMessage(answers),
	}
}

func TestMeanScore(t *testing.T) {
	tests := []struct {
		name      string
		responses []model.EvaluationResponse
		want      *float64
	}{
		{
			name:      "no responses",
			responses: nil,
			want:      nil,
		},
		{
			name: "stored scores averaged",
			responses: []model.EvaluationResponse{
				evalResp(1, floatPtr(80), `{}`),
				evalResp(2, floatPtr(60), `{}`),
			},
			want: floatPtr(70),
		},
		{
			name: "unscored responses excluded",
			responses: []model.EvaluationResponse{
				evalResp(1, floatPtr(100), `{}`),
				evalResp(2, nil, `{}`),
			},
			want: floatPtr(100),
		},
		{
			name: "extracted score used when stored missing",
			responses: []model.EvaluationResponse{
				evalResp(1, nil, `{"score": 50}`),
				evalResp(2, floatPtr(100), `{}`),
			},
			want: floatPtr(75),
		},
		{
			name: "all unscorable yields nil",
			responses: []model.EvaluationResponse{
				evalResp(1, nil, `{"note": "pending"}`),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := meanScore(tt.responses)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("meanScore() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("meanScore() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestRankStudentsOrdering(t *testing.T) {
	responses := []model.EvaluationResponse{
		evalResp(3, floatPtr(90), `{}`),
		evalResp(1, floatPtr(90), `{}`),
		evalResp(1, floatPtr(90), `{}`),
		evalResp(2, floatPtr(50), `{}`),
		evalResp(4, nil, `{}`),
	}
	names := map[uint]string{1: "Ana", 2: "Ben", 3: "Cruz"}

	ranks := rankStudents(responses, names, 0)

	if len(ranks) != 3 {
		t.Fatalf("got %d ranks, want 3", len(ranks))
	}
	// Student 1 and 3 tie on average 90; 1 has more scored responses.
	wantOrder := []uint{1, 3, 2}
	for i, want := range wantOrder {
		if ranks[i].StudentID != want {
			t.Errorf("rank[%d].StudentID = %d, want %d", i, ranks[i].StudentID, want)
		}
	}
	if ranks[0].Name != "Ana" {
		t.Errorf("rank[0].Name = %q, want Ana", ranks[0].Name)
	}
	if *ranks[2].AvgScore != 50 {
		t.Errorf("rank[2].AvgScore = %v, want 50", *ranks[2].AvgScore)
	}
}

func TestRankStudentsIDTiebreak(t *testing.T) {
	responses := []model.EvaluationResponse{
		evalResp(7, floatPtr(80), `{}`),
		evalResp(2, floatPtr(80), `{}`),
	}

	ranks := rankStudents(responses, nil, 0)

	if len(ranks) != 2 || ranks[0].StudentID != 2 || ranks[1].StudentID != 7 {
		t.Errorf("tie on score and count should order by id, got %+v", ranks)
	}
}

func TestRankStudentsLimit(t *testing.T) {
	responses := []model.EvaluationResponse{
		evalResp(1, floatPtr(10), `{}`),
		evalResp(2, floatPtr(20), `{}`),
		evalResp(3, floatPtr(30), `{}`),
	}

	ranks := rankStudents(responses, nil, 2)

	if len(ranks) != 2 {
		t.Fatalf("got %d ranks, want 2", len(ranks))
	}
	if ranks[0].StudentID != 3 {
		t.Errorf("top rank = %d, want 3", ranks[0].StudentID)
	}
}

func quizChallenge(id uint, typ string, payload string) model.Challenge {
	c := model.Challenge{Type: typ, Payload: json.RawMessage(payload)}
	c.ID = id
	return c
}

func chalResp(challengeID, studentID uint, answers string) model.ChallengeResponse {
	return model.ChallengeResponse{
		ChallengeID: challengeID,
		StudentID:   studentID,
		Answers:     json.RawMessage(answers),
	}
}

func TestBuildLeaderboard(t *testing.T) {
	quizPayload := `[
		{"text":"q1","options":["a","b"],"correct_index":0},
		{"text":"q2","options":["a","b"],"correct_index":1}
	]`
	challenges := []model.Challenge{
		quizChallenge(1, "quiz", quizPayload),
		quizChallenge(2, "sign_practice", `{"prompt":"sign hello"}`),
	}
	responses := []model.ChallengeResponse{
		chalResp(1, 10, `{"selected":[0,1]}`), // 2/2
		chalResp(1, 20, `{"selected":[0,0]}`), // 1/2
		chalResp(2, 20, `{"video_url":"x"}`),  // manual type, counts nothing
		chalResp(1, 30, `{"selected":[1,0]}`), // 0/2
	}
	names := map[uint]string{10: "Ana", 20: "Ben", 30: "Cruz"}

	board := buildLeaderboard(challenges, responses, names)

	if len(board) != 3 {
		t.Fatalf("got %d entries, want 3", len(board))
	}
	wantOrder := []uint{10, 20, 30}
	for i, want := range wantOrder {
		if board[i].StudentID != want {
			t.Errorf("board[%d].StudentID = %d, want %d", i, board[i].StudentID, want)
		}
	}
	if board[0].Percentage != 100 || board[0].Correct != 2 || board[0].Total != 2 {
		t.Errorf("board[0] = %+v, want 2/2 at 100%%", board[0])
	}
	if board[1].Percentage != 50 {
		t.Errorf("board[1].Percentage = %v, want 50", board[1].Percentage)
	}
	// Manual challenge contributes nothing even for a student with entries.
	if board[1].Total != 2 {
		t.Errorf("board[1].Total = %d, want 2", board[1].Total)
	}
}

func TestBuildLeaderboardManualOnlyStudent(t *testing.T) {
	quizPayload := `[{"text":"q","options":["a","b"],"correct_index":0}]`
	challenges := []model.Challenge{
		quizChallenge(1, "quiz", quizPayload),
		quizChallenge(2, "sign_practice", `{"prompt":"sign hello"}`),
	}
	responses := []model.ChallengeResponse{
		chalResp(1, 5, `{"selected":[0]}`),
		chalResp(2, 8, `{"video_url":"x"}`), // only manual submissions
	}

	board := buildLeaderboard(challenges, responses, nil)

	if len(board) != 2 {
		t.Fatalf("got %d entries, want 2; a manual-only student still gets a row", len(board))
	}
	if board[1].StudentID != 8 {
		t.Fatalf("board[1].StudentID = %d, want 8", board[1].StudentID)
	}
	if board[1].Correct != 0 || board[1].Total != 0 || board[1].Percentage != 0 {
		t.Errorf("manual-only student = %+v, want 0/0 at 0%%", board[1])
	}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	board := buildLeaderboard(nil, nil, nil)
	if len(board) != 0 {
		t.Errorf("empty inputs should yield an empty board, got %+v", board)
	}
}

func TestBuildLeaderboardIDTiebreak(t *testing.T) {
	quizPayload := `[{"text":"q","options":["a","b"],"correct_index":0}]`
	challenges := []model.Challenge{quizChallenge(1, "quiz", quizPayload)}
	responses := []model.ChallengeResponse{
		chalResp(1, 9, `{"selected":[0]}`),
		chalResp(1, 4, `{"selected":[0]}`),
	}

	board := buildLeaderboard(challenges, responses, nil)

	if len(board) != 2 || board[0].StudentID != 4 || board[1].StudentID != 9 {
		t.Errorf("equal records should order by id, got %+v", board)
	}
}

func TestClassTeacherRanks(t *testing.T) {
	responses := []model.EvaluationResponse{
		evalResp(1, floatPtr(80), `{}`),
		evalResp(2, floatPtr(60), `{}`),
	}

	ranks := classTeacherRanks(42, "Dana", responses)

	if len(ranks) != 1 {
		t.Fatalf("got %d ranks, want the single owning teacher", len(ranks))
	}
	r := ranks[0]
	if r.TeacherID != 42 || r.Name != "Dana" || r.ClassCount != 1 {
		t.Errorf("rank = %+v, want teacher 42 (Dana) with one class", r)
	}
	if r.AvgClassScore == nil || *r.AvgClassScore != 70 {
		t.Errorf("AvgClassScore = %v, want 70", r.AvgClassScore)
	}

	empty := classTeacherRanks(42, "Dana", nil)
	if empty[0].AvgClassScore != nil {
		t.Errorf("no responses should yield a nil average, got %v", *empty[0].AvgClassScore)
	}
}

func TestSortTeacherRanks(t *testing.T) {
	ranks := []model.TeacherRank{
		{TeacherID: 1, AvgClassScore: nil, ClassCount: 5},
		{TeacherID: 2, AvgClassScore: floatPtr(70), ClassCount: 1},
		{TeacherID: 3, AvgClassScore: floatPtr(90), ClassCount: 2},
		{TeacherID: 4, AvgClassScore: floatPtr(70), ClassCount: 3},
	}

	sortTeacherRanks(ranks)

	wantOrder := []uint{3, 4, 2, 1}
	for i, want := range wantOrder {
		if ranks[i].TeacherID != want {
			t.Errorf("ranks[%d].TeacherID = %d, want %d", i, ranks[i].TeacherID, want)
		}
	}
}

func TestStripAnswerKeys(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		payload string
		leaked  []string
	}{
		{
			name:    "quiz loses correct_index",
			typ:     "quiz",
			payload: `[{"text":"q","options":["a","b"],"correct_index":1}]`,
			leaked:  []string{"correct_index"},
		},
		{
			name:    "fill_blank loses blanks",
			typ:     "fill_blank",
			payload: `[{"prompt":"capital of france","blanks":["paris"]}]`,
			leaked:  []string{"paris"},
		},
		{
			name:    "matching loses pair grouping",
			typ:     "matching",
			payload: `{"pairs":[{"id":"p1","left":"dog","right":"bark"},{"id":"p2","left":"cat","right":"meow"}]}`,
			leaked:  []string{"pairs"},
		},
		{
			name:    "dragdrop loses mapping",
			typ:     "dragdrop",
			payload: `{"dragdrop":{"items":[{"id":"i1","label":"cat"}],"targets":[{"id":"t1","label":"animal"}],"mapping":{"i1":"t1"}}}`,
			leaked:  []string{"mapping"},
		},
		{
			name:    "multiple_choice loses correct_index",
			typ:     "multiple_choice",
			payload: `{"prompt":"p","options":[{"id":"a"},{"id":"b"}],"correct_index":0}`,
			leaked:  []string{"correct_index"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(stripAnswerKeys(tt.typ, json.RawMessage(tt.payload)))
			for _, leak := range tt.leaked {
				if strings.Contains(out, leak) {
					t.Errorf("stripped payload still contains %q: %s", leak, out)
				}
			}
		})
	}
}

func TestStripAnswerKeysMatchingSplitsColumns(t *testing.T) {
	payload := `{"pairs":[{"id":"p1","left":"dog","right":"woof"},{"id":"p2","left":"cat","right":"meow"}]}`

	out := stripAnswerKeys("matching", json.RawMessage(payload))

	var view struct {
		Left []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"left"`
		Right []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"right"`
	}
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("student view is not valid JSON: %v", err)
	}
	if len(view.Left) != 2 || len(view.Right) != 2 {
		t.Fatalf("got %d/%d columns, want 2/2", len(view.Left), len(view.Right))
	}
	if view.Left[0].Text != "dog" || view.Left[1].Text != "cat" {
		t.Errorf("left column changed order: %+v", view.Left)
	}
	// The right column is ordered on its own, not by pair position.
	if view.Right[0].Text != "meow" || view.Right[1].Text != "woof" {
		t.Errorf("right column not independently ordered: %+v", view.Right)
	}
}
