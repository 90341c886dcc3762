package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// TimeStatus is the poll-based view of an attempt's clock. Expiry is detected
// when a caller samples it, with latency bounded by the polling interval.
type TimeStatus struct {
	RemainingSeconds int
	Expired          bool
}

// RemainingTime computes the time left on an attempt purely from its inputs.
// RemainingSeconds is rounded up so it only reads 0 once the limit has truly
// elapsed.
func RemainingTime(now, startedAt time.Time, timeLimitMinutes int) TimeStatus {
	limit := float64(timeLimitMinutes) * 60
	elapsed := now.Sub(startedAt).Seconds()
	remaining := limit - elapsed
	if remaining <= 0 {
		return TimeStatus{RemainingSeconds: 0, Expired: true}
	}
	return TimeStatus{RemainingSeconds: int(math.Ceil(remaining))}
}

// Manager owns attempt state transitions: creation, answer capture,
// time-limit enforcement, submission and expiry. It performs no I/O of its
// own; persistence and catalog access arrive through the injected contracts.
type Manager struct {
	store   AttemptStore
	catalog Catalog
	now     Clock
	newID   func() string
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithClock injects the time source, primarily for tests.
func WithClock(clock Clock) ManagerOption {
	return func(m *Manager) { m.now = clock }
}

// WithIDGenerator injects the attempt identity generator.
func WithIDGenerator(gen func() string) ManagerOption {
	return func(m *Manager) { m.newID = gen }
}

func NewManager(store AttemptStore, catalog Catalog, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:   store,
		catalog: catalog,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates a new IN_PROGRESS attempt for the given test and user. The
// question order is captured once from the test snapshot and never re-derived,
// even if the catalog changes while the attempt is open.
func (m *Manager) Start(test Test, userID string) (*Attempt, error) {
	order := make([]string, 0, len(test.Questions))
	for _, q := range test.Questions {
		order = append(order, q.ID)
	}

	attempt := &Attempt{
		ID:            m.newID(),
		UserID:        userID,
		TestID:        test.ID,
		Test:          test,
		QuestionOrder: order,
		Answers:       make(map[string]Answer),
		StartedAt:     m.now(),
		Status:        StatusInProgress,
	}
	if err := m.store.Put(attempt); err != nil {
		return nil, fmt.Errorf("saving new attempt: %w", err)
	}
	return attempt, nil
}

// RecordAnswer captures a response for one question, replacing any prior
// answer for that question. It is safe to call on every keystroke: the last
// write for a question always wins. Attempts that are no longer IN_PROGRESS,
// or whose time has run out, reject the write.
func (m *Manager) RecordAnswer(attemptID, questionID string, resp Response) (*Attempt, error) {
	attempt, err := m.store.Get(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != StatusInProgress {
		return nil, ErrAttemptNotActive
	}
	if m.remaining(attempt).Expired {
		attempt.Status = StatusExpired
		if putErr := m.store.Put(attempt); putErr != nil {
			return nil, fmt.Errorf("marking attempt expired: %w", putErr)
		}
		return nil, ErrAttemptExpired
	}

	question, ok := attempt.Test.QuestionByID(questionID)
	if !ok {
		return nil, fmt.Errorf("question %s is not part of attempt %s", questionID, attemptID)
	}

	if attempt.Answers == nil {
		attempt.Answers = make(map[string]Answer)
	}
	attempt.Answers[questionID] = Answer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		Response:   resp,
		MaxScore:   question.Marks,
	}
	if err := m.store.Put(attempt); err != nil {
		return nil, fmt.Errorf("saving answer: %w", err)
	}
	return attempt, nil
}

// TimeRemaining reports the attempt's clock as of now.
func (m *Manager) TimeRemaining(attemptID string) (TimeStatus, error) {
	attempt, err := m.store.Get(attemptID)
	if err != nil {
		return TimeStatus{}, err
	}
	return m.remaining(attempt), nil
}

// Resume returns an attempt for continued answering. It refuses to reopen
// anything that is not IN_PROGRESS, and reclassifies an overrun attempt as
// EXPIRED on the spot.
func (m *Manager) Resume(attemptID string) (*Attempt, error) {
	attempt, err := m.store.Get(attemptID)
	if err != nil {
		return nil, err
	}
	switch attempt.Status {
	case StatusInProgress:
		if m.remaining(attempt).Expired {
			attempt.Status = StatusExpired
			if putErr := m.store.Put(attempt); putErr != nil {
				return nil, fmt.Errorf("marking attempt expired: %w", putErr)
			}
			return nil, ErrAttemptExpired
		}
		return attempt, nil
	case StatusExpired:
		return nil, ErrAttemptExpired
	default:
		return nil, ErrAttemptNotActive
	}
}

// Submit finalizes an IN_PROGRESS attempt: every question in the fixed order
// is scored (unanswered questions as an empty response, contributing zero of
// their marks), totals and behaviour scores are computed, and the attempt
// becomes immutable. Submission is accepted even when the clock has just run
// out, as a grace transition; an attempt already EXPIRED, SUBMITTED or
// ABANDONED is rejected.
func (m *Manager) Submit(attemptID string) (*Attempt, error) {
	attempt, err := m.store.Get(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != StatusInProgress {
		return nil, ErrAttemptNotActive
	}

	if attempt.Answers == nil {
		attempt.Answers = make(map[string]Answer)
	}
	answers := make([]Answer, 0, len(attempt.QuestionOrder))
	for _, questionID := range attempt.QuestionOrder {
		question, ok := attempt.Test.QuestionByID(questionID)
		if !ok {
			continue
		}
		answer := attempt.Answers[questionID]
		answer.AttemptID = attemptID
		answer.QuestionID = questionID

		result := ScoreAnswer(question, answer.Response)
		answer.Score = result.Score
		answer.MaxScore = result.MaxScore
		answer.IsCorrect = result.IsCorrect
		answer.Feedback = result.Feedback

		attempt.Answers[questionID] = answer
		answers = append(answers, answer)
	}

	outcome := CalculateTestScore(attempt.Test, answers, m.catalog)

	completed := m.now()
	attempt.CompletedAt = &completed
	attempt.Status = StatusSubmitted
	attempt.Score = outcome.Percentage
	attempt.TotalScore = outcome.TotalScore
	attempt.MaxScore = outcome.MaxScore
	attempt.Passed = outcome.Passed
	attempt.BehaviourScores = outcome.BehaviourScores

	if err := m.store.Put(attempt); err != nil {
		return nil, fmt.Errorf("saving submitted attempt: %w", err)
	}
	return attempt, nil
}

// Abandon marks an IN_PROGRESS attempt as walked away from.
func (m *Manager) Abandon(attemptID string) error {
	attempt, err := m.store.Get(attemptID)
	if err != nil {
		return err
	}
	if attempt.Status != StatusInProgress {
		return ErrAttemptNotActive
	}
	attempt.Status = StatusAbandoned
	return m.store.Put(attempt)
}

// Discard removes an attempt and its answers from the store.
func (m *Manager) Discard(attemptID string) error {
	return m.store.Delete(attemptID)
}

func (m *Manager) remaining(attempt *Attempt) TimeStatus {
	return RemainingTime(m.now(), attempt.StartedAt, attempt.Test.TimeLimitMinutes)
}
