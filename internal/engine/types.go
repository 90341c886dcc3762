package engine

import (
	"errors"
	"time"
)

// QuestionType enumerates the question formats the scorer knows how to handle.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "MCQ"
	QuestionSJT       QuestionType = "SJT"
	QuestionNumerical QuestionType = "NUMERICAL"
	QuestionFreeText  QuestionType = "FREE_TEXT"
	QuestionTechnical QuestionType = "TECHNICAL"
)

// AttemptStatus is the lifecycle state of a TestAttempt.
type AttemptStatus string

const (
	StatusInProgress AttemptStatus = "IN_PROGRESS"
	StatusSubmitted  AttemptStatus = "SUBMITTED"
	StatusExpired    AttemptStatus = "EXPIRED"
	StatusAbandoned  AttemptStatus = "ABANDONED"
)

var (
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrAttemptNotActive = errors.New("attempt not active")
	ErrAttemptExpired   = errors.New("attempt expired")
)

// Question is an immutable catalog entity, read-only to the engine.
// CorrectAnswer holds the single expected value for MCQ/NUMERICAL questions;
// CorrectOrder holds the ideal ranking for SJT questions. Both are empty for
// FREE_TEXT and TECHNICAL, which have no single correct answer.
type Question struct {
	ID           string
	Type         QuestionType
	GradeID      string
	BehaviourIDs []string
	Text         string
	Options      []string
	CorrectAnswer string
	CorrectOrder []string
	Marks        float64
	Rationale    string
}

// Behaviour is a named competency dimension questions can be tagged against.
type Behaviour struct {
	ID          string
	Name        string
	Description string
	GradeID     string
}

// Test is the immutable test definition. Questions is the ordered snapshot
// embedded into an attempt when it is started, so scoring stays stable even
// if the catalog changes afterwards.
type Test struct {
	ID               string
	Name             string
	Type             QuestionType
	TimeLimitMinutes int
	GradeID          string
	PassingScore     float64
	Questions        []Question
}

// QuestionByID resolves a question from the embedded snapshot.
func (t Test) QuestionByID(id string) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Response is a learner's answer payload. Text carries the value for
// MCQ/NUMERICAL/FREE_TEXT/TECHNICAL questions; Ranking carries the ordered
// option values for SJT questions. The caller dispatches by question type.
type Response struct {
	Text    string   `json:"text,omitempty"`
	Ranking []string `json:"ranking,omitempty"`
}

// Answer is one scored (or pending) response within an attempt.
// IsCorrect is nil for question types without a binary notion of correctness.
type Answer struct {
	AttemptID  string
	QuestionID string
	Response   Response
	Score      float64
	MaxScore   float64
	IsCorrect  *bool
	Feedback   string
}

// BehaviourScore is the derived competency rating for one behaviour,
// recomputed fresh on every scoring pass.
type BehaviourScore struct {
	BehaviourID     string
	BehaviourName   string
	Level           int
	Recommendations []string
}

// TestScore is the outcome of scoring a full answer set against a test.
type TestScore struct {
	TotalScore      float64
	MaxScore        float64
	Percentage      float64
	Passed          bool
	BehaviourScores []BehaviourScore
}

// Attempt is one learner's run through a test. Mutated only through the
// Manager; owned exclusively by the learner who created it.
type Attempt struct {
	ID              string
	UserID          string
	TestID          string
	Test            Test
	QuestionOrder   []string
	Answers         map[string]Answer
	StartedAt       time.Time
	CompletedAt     *time.Time
	Status          AttemptStatus
	Score           float64
	TotalScore      float64
	MaxScore        float64
	Passed          bool
	BehaviourScores []BehaviourScore
}

// AnswersInOrder returns the recorded answers following the attempt's fixed
// question order. Questions without a recorded answer are skipped.
func (a *Attempt) AnswersInOrder() []Answer {
	out := make([]Answer, 0, len(a.Answers))
	for _, qid := range a.QuestionOrder {
		if ans, ok := a.Answers[qid]; ok {
			out = append(out, ans)
		}
	}
	return out
}

// Catalog is read access to the shared content entities. Lookups report
// absence via the boolean, never an error; the engine tolerates missing
// references by skipping their contribution.
type Catalog interface {
	QuestionByID(id string) (Question, bool)
	BehaviourByID(id string) (Behaviour, bool)
	TestByID(id string) (Test, bool)
}

// AttemptStore is the opaque attempt persistence contract keyed by attempt
// ID. Reads must be consistent within a single scoring pass.
type AttemptStore interface {
	Get(id string) (*Attempt, error)
	Put(attempt *Attempt) error
	Delete(id string) error
}

// Clock supplies the current time so timing logic stays unit-testable.
type Clock func() time.Time
