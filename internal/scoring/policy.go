package scoring

import "time"

// AttemptStatus is the outcome of an admission check. Only StatusOpen
// permits a new submission; the other values carry the denial reason so the
// caller can surface it.
type AttemptStatus string

const (
	StatusOpen              AttemptStatus = "OPEN"
	StatusNotYetOpen        AttemptStatus = "NOT_YET_OPEN"
	StatusExpired           AttemptStatus = "EXPIRED"
	StatusAttemptsExhausted AttemptStatus = "ATTEMPTS_EXHAUSTED"
)

// Schedule is the submission window and attempt budget of an evaluation or
// challenge. Nil StartAt/DueAt mean the corresponding bound is not enforced.
type Schedule struct {
	StartAt         *time.Time
	DueAt           *time.Time
	AttemptsAllowed int
}

// CheckAttemptPolicy decides whether a new attempt may be submitted at now,
// given attemptsUsed prior responses for the same (student, evaluation) pair.
// Window checks take precedence over the attempt budget: a closed window is
// reported as such even when attempts remain, and vice versa.
//
// The check is pure; counting prior attempts and inserting the new response
// atomically is the store's job.
func CheckAttemptPolicy(now time.Time, sched Schedule, attemptsUsed int) AttemptStatus {
	if sched.StartAt != nil && now.Before(*sched.StartAt) {
		return StatusNotYetOpen
	}
	if sched.DueAt != nil && now.After(*sched.DueAt) {
		return StatusExpired
	}
	allowed := sched.AttemptsAllowed
	if allowed < 1 {
		allowed = 1
	}
	if attemptsUsed >= allowed {
		return StatusAttemptsExhausted
	}
	return StatusOpen
}
