package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestManager(t *testing.T) (*Manager, *fakeClock, Test) {
	t.Helper()

	questions := []Question{
		mcqQuestion("q1", 1, "working-together"),
		sjtQuestion("q2", 4, "delivering-at-pace"),
	}
	catalog := newFixtureCatalog(questions, []Behaviour{
		{ID: "working-together", Name: "Working Together"},
		{ID: "delivering-at-pace", Name: "Delivering at Pace"},
	})
	test := Test{
		ID:               "t1",
		Name:             "HEO practice test",
		TimeLimitMinutes: 10,
		PassingScore:     70,
		Questions:        questions,
	}

	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	manager := NewManager(NewMemoryAttemptStore(), catalog, WithClock(clock.Now))
	return manager, clock, test
}

func TestRemainingTime(t *testing.T) {
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	fresh := RemainingTime(started, started, 10)
	assert.Equal(t, 600, fresh.RemainingSeconds)
	assert.False(t, fresh.Expired)

	halfway := RemainingTime(started.Add(5*time.Minute), started, 10)
	assert.Equal(t, 300, halfway.RemainingSeconds)
	assert.False(t, halfway.Expired)

	// timeLimit 10 minutes, started 11 minutes ago.
	overrun := RemainingTime(started.Add(11*time.Minute), started, 10)
	assert.Equal(t, 0, overrun.RemainingSeconds)
	assert.True(t, overrun.Expired)

	exact := RemainingTime(started.Add(10*time.Minute), started, 10)
	assert.Equal(t, 0, exact.RemainingSeconds)
	assert.True(t, exact.Expired)
}

func TestManager_StartFixesQuestionOrder(t *testing.T) {
	manager, _, test := newTestManager(t)

	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, attempt.ID)
	assert.Equal(t, "user-1", attempt.UserID)
	assert.Equal(t, StatusInProgress, attempt.Status)
	assert.Equal(t, []string{"q1", "q2"}, attempt.QuestionOrder)
	assert.Equal(t, test.ID, attempt.TestID)
}

func TestManager_RecordAnswerIsLastWriteWins(t *testing.T) {
	manager, _, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	_, err = manager.RecordAnswer(attempt.ID, "q1", Response{Text: "a"})
	require.NoError(t, err)
	updated, err := manager.RecordAnswer(attempt.ID, "q1", Response{Text: "b"})
	require.NoError(t, err)

	assert.Len(t, updated.Answers, 1, "replacement, not duplication")
	assert.Equal(t, "b", updated.Answers["q1"].Response.Text)
}

func TestManager_RecordAnswerRejectsUnknownQuestion(t *testing.T) {
	manager, _, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	_, err = manager.RecordAnswer(attempt.ID, "q99", Response{Text: "a"})
	assert.Error(t, err)
}

func TestManager_SubmitScoresAllQuestions(t *testing.T) {
	manager, _, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	_, err = manager.RecordAnswer(attempt.ID, "q1", Response{Text: "b"})
	require.NoError(t, err)
	_, err = manager.RecordAnswer(attempt.ID, "q2", Response{Ranking: []string{"discuss", "escalate", "wait", "ignore"}})
	require.NoError(t, err)

	submitted, err := manager.Submit(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.CompletedAt)
	assert.Equal(t, 5.0, submitted.TotalScore)
	assert.Equal(t, 5.0, submitted.MaxScore)
	assert.InDelta(t, 100.0, submitted.Score, 1e-9)
	assert.True(t, submitted.Passed)
	assert.Len(t, submitted.BehaviourScores, 2)
}

func TestManager_SubmitCountsUnansweredQuestions(t *testing.T) {
	manager, _, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	// Only the MCQ is answered; the SJT stays empty and contributes 0 of 4.
	_, err = manager.RecordAnswer(attempt.ID, "q1", Response{Text: "b"})
	require.NoError(t, err)

	submitted, err := manager.Submit(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, submitted.TotalScore)
	assert.Equal(t, 5.0, submitted.MaxScore)
	assert.InDelta(t, 20.0, submitted.Score, 1e-9)
	assert.False(t, submitted.Passed)
}

func TestManager_SubmittedAttemptIsImmutable(t *testing.T) {
	manager, _, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)
	_, err = manager.Submit(attempt.ID)
	require.NoError(t, err)

	_, err = manager.RecordAnswer(attempt.ID, "q1", Response{Text: "b"})
	assert.ErrorIs(t, err, ErrAttemptNotActive)

	_, err = manager.Submit(attempt.ID)
	assert.ErrorIs(t, err, ErrAttemptNotActive)
}

func TestManager_ExpiryRejectsEditsButAllowsGraceSubmit(t *testing.T) {
	manager, clock, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)
	_, err = manager.RecordAnswer(attempt.ID, "q1", Response{Text: "b"})
	require.NoError(t, err)

	clock.Advance(11 * time.Minute)

	status, err := manager.TimeRemaining(attempt.ID)
	require.NoError(t, err)
	assert.True(t, status.Expired)
	assert.Equal(t, 0, status.RemainingSeconds)

	// The expiry-detecting submit is still accepted once.
	submitted, err := manager.Submit(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	assert.Equal(t, 1.0, submitted.TotalScore)
}

func TestManager_ExpiredAttemptRejectsAnswerAndFlipsStatus(t *testing.T) {
	manager, clock, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	clock.Advance(11 * time.Minute)

	_, err = manager.RecordAnswer(attempt.ID, "q1", Response{Text: "b"})
	assert.ErrorIs(t, err, ErrAttemptExpired)

	// The rejected write reclassified the attempt, so submission is closed too.
	_, err = manager.Submit(attempt.ID)
	assert.ErrorIs(t, err, ErrAttemptNotActive)
}

func TestManager_ResumeRefusesExpiredAttempt(t *testing.T) {
	manager, clock, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	resumed, err := manager.Resume(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, resumed.ID)

	clock.Advance(11 * time.Minute)

	_, err = manager.Resume(attempt.ID)
	assert.ErrorIs(t, err, ErrAttemptExpired)
}

func TestManager_Abandon(t *testing.T) {
	manager, _, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	require.NoError(t, manager.Abandon(attempt.ID))

	_, err = manager.RecordAnswer(attempt.ID, "q1", Response{Text: "b"})
	assert.ErrorIs(t, err, ErrAttemptNotActive)
	_, err = manager.Resume(attempt.ID)
	assert.ErrorIs(t, err, ErrAttemptNotActive)
}

func TestManager_Discard(t *testing.T) {
	manager, _, test := newTestManager(t)
	attempt, err := manager.Start(test, "user-1")
	require.NoError(t, err)

	require.NoError(t, manager.Discard(attempt.ID))
	_, err = manager.Resume(attempt.ID)
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestManager_UnknownAttempt(t *testing.T) {
	manager, _, _ := newTestManager(t)
	_, err := manager.Resume("missing")
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}
