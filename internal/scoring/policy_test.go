package scoring

import (
	"testing"
	"time"
)

func TestCheckAttemptPolicy(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	testCases := []struct {
		name         string
		startAt      *time.Time
		dueAt        *time.Time
		allowed      int
		attemptsUsed int
		want         AttemptStatus
	}{
		{"open, no window", nil, nil, 2, 0, StatusOpen},
		{"open inside window", &before, &after, 2, 1, StatusOpen},
		{"not yet open even with attempts left", &after, nil, 3, 0, StatusNotYetOpen},
		{"not yet open beats exhausted", &after, nil, 1, 5, StatusNotYetOpen},
		{"expired with zero attempts used", nil, &before, 3, 0, StatusExpired},
		{"expired beats exhausted", nil, &before, 1, 1, StatusExpired},
		{"exhausted only when window passes", &before, &after, 2, 2, StatusAttemptsExhausted},
		{"exhausted over budget", nil, nil, 1, 3, StatusAttemptsExhausted},
		{"zero allowed treated as one", nil, nil, 0, 0, StatusOpen},
		{"zero allowed exhausted after one", nil, nil, 0, 1, StatusAttemptsExhausted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sched := Schedule{StartAt: tc.startAt, DueAt: tc.dueAt, AttemptsAllowed: tc.allowed}
			got := CheckAttemptPolicy(now, sched, tc.attemptsUsed)
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCheckAttemptPolicyBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Exactly at start_at and due_at the window is open.
	sched := Schedule{StartAt: &now, DueAt: &now, AttemptsAllowed: 1}
	if got := CheckAttemptPolicy(now, sched, 0); got != StatusOpen {
		t.Fatalf("boundary instants should be open, got %s", got)
	}
}

func TestAttemptExhaustionSequence(t *testing.T) {
	// attempts_allowed=2: two submissions pass, the third is rejected with
	// the specific exhaustion status.
	sched := Schedule{AttemptsAllowed: 2}
	now := time.Now()

	for used := 0; used < 2; used++ {
		if got := CheckAttemptPolicy(now, sched, used); got != StatusOpen {
			t.Fatalf("attempt %d should be open, got %s", used+1, got)
		}
	}
	if got := CheckAttemptPolicy(now, sched, 2); got != StatusAttemptsExhausted {
		t.Fatalf("third attempt should be rejected, got %s", got)
	}
}
