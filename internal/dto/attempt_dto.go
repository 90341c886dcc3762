package dto

import "time"

// ResponsePayload mirrors the engine's answer shape: Text for
// MCQ/NUMERICAL/FREE_TEXT/TECHNICAL questions, Ranking for SJT.
type ResponsePayload struct {
	Text    string   `json:"text,omitempty"`
	Ranking []string `json:"ranking,omitempty"`
}

type StartAttemptResponse struct {
	AttemptID     string    `json:"attempt_id"`
	TestID        string    `json:"test_id"`
	UserID        string    `json:"user_id"`
	StartedAt     time.Time `json:"started_at"`
	TimeLimit     int       `json:"time_limit"`
	QuestionOrder []string  `json:"question_order"`
}

type SaveAnswerRequest struct {
	QuestionID string          `json:"question_id" binding:"required"`
	Response   ResponsePayload `json:"response"`
}

type SavedAnswerDTO struct {
	QuestionID string          `json:"question_id"`
	Response   ResponsePayload `json:"response"`
}

// ResumeAttemptResponse restores an in-progress attempt on the client:
// context, saved answers, and the clock as of now.
type ResumeAttemptResponse struct {
	AttemptID        string           `json:"attempt_id"`
	TestID           string           `json:"test_id"`
	StartedAt        time.Time        `json:"started_at"`
	TimeLimit        int              `json:"time_limit"`
	QuestionOrder    []string         `json:"question_order"`
	Answers          []SavedAnswerDTO `json:"answers"`
	RemainingSeconds int              `json:"remaining_seconds"`
}

type TimeRemainingDTO struct {
	RemainingSeconds int  `json:"remaining_seconds"`
	IsExpired        bool `json:"is_expired"`
}

type AttemptSummaryDTO struct {
	ID          string     `json:"id"`
	TestID      string     `json:"test_id"`
	TestName    string     `json:"test_name,omitempty"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	TimeLimit   int        `json:"time_limit"`
	Score       *float64   `json:"score,omitempty"`
	Passed      *bool      `json:"passed,omitempty"`
}

type AttemptListResponse struct {
	Items    []AttemptSummaryDTO `json:"items"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Total    int64               `json:"total"`
}

type BehaviourScoreDTO struct {
	BehaviourID     string   `json:"behaviour_id"`
	BehaviourName   string   `json:"behaviour_name"`
	Score           int      `json:"score"` // 0-4 competency level
	Recommendations []string `json:"recommendations"`
}

// AnswerAuditDTO is one per-question line in the results audit trail.
type AnswerAuditDTO struct {
	QuestionID     string          `json:"question_id"`
	Order          int             `json:"order"`
	Response       ResponsePayload `json:"response"`
	Score          *float64        `json:"score,omitempty"`
	MaxScore       *float64        `json:"max_score,omitempty"`
	IsCorrect      *bool           `json:"is_correct,omitempty"`
	Feedback       string          `json:"feedback,omitempty"`
	ManualOverride bool            `json:"manual_override"`
	ManualScore    *float64        `json:"manual_score,omitempty"`
}

type AttemptResultDTO struct {
	AttemptID       string              `json:"attempt_id"`
	TestID          string              `json:"test_id"`
	TestName        string              `json:"test_name,omitempty"`
	Status          string              `json:"status"`
	StartedAt       time.Time           `json:"started_at"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`
	TotalScore      float64             `json:"total_score"`
	MaxScore        float64             `json:"max_score"`
	Percentage      float64             `json:"percentage"`
	Passed          bool                `json:"passed"`
	BehaviourScores []BehaviourScoreDTO `json:"behaviour_scores"`
	Audit           []AnswerAuditDTO    `json:"audit,omitempty"`
}

// OverrideAnswerRequest sets a manual score on one answer of a submitted
// attempt (the deferred grading path for TECHNICAL questions).
type OverrideAnswerRequest struct {
	Score float64 `json:"score" binding:"min=0"`
}
