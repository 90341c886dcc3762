package dto

import "time"

type StatementDraftRequest struct {
	BehaviourID string `json:"behaviour_id" binding:"required"`
	Situation   string `json:"situation"`
	Task        string `json:"task"`
	Action      string `json:"action"`
	Result      string `json:"result"`
	MaxWords    int    `json:"max_words"`
}

type StatementSectionFeedbackDTO struct {
	Section string `json:"section"` // situation, task, action, result
	Comment string `json:"comment"`
}

type StatementFeedbackDTO struct {
	OverallScore int                           `json:"overall_score"` // 0-4, same scale as behaviour levels
	Strengths    []string                      `json:"strengths"`
	Improvements []string                      `json:"improvements"`
	Suggestions  []StatementSectionFeedbackDTO `json:"suggestions"`
}

type StatementDraftDTO struct {
	ID          string                `json:"id"`
	BehaviourID string                `json:"behaviour_id"`
	Situation   string                `json:"situation"`
	Task        string                `json:"task"`
	Action      string                `json:"action"`
	Result      string                `json:"result"`
	WordCount   int                   `json:"word_count"`
	MaxWords    int                   `json:"max_words"`
	Feedback    *StatementFeedbackDTO `json:"feedback,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
