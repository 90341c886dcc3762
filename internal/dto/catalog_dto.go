package dto

import "time"

// --- Grades & behaviours ---

type GradeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	SalaryRange string `json:"salary_range,omitempty"`
}

type BehaviourCreateDTO struct {
	ID              string  `json:"id" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	GradeID         *string `json:"grade_id"`
	SuccessCriteria string  `json:"success_criteria"`
}

type BehaviourDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	GradeID         *string `json:"grade_id,omitempty"`
	SuccessCriteria string  `json:"success_criteria,omitempty"`
}

// --- Questions ---

// QuestionCreateDTO is the admin authoring payload. CorrectAnswer is required
// for MCQ/NUMERICAL, CorrectOrder for SJT; FREE_TEXT/TECHNICAL carry neither.
type QuestionCreateDTO struct {
	Type          string   `json:"type" binding:"required,oneof=MCQ SJT NUMERICAL FREE_TEXT TECHNICAL"`
	GradeID       string   `json:"grade_id" binding:"required"`
	BehaviourIDs  []string `json:"behaviour_ids"`
	Text          string   `json:"text" binding:"required"`
	Context       string   `json:"context"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	CorrectOrder  []string `json:"correct_order"`
	Marks         float64  `json:"marks" binding:"required,gt=0"`
	Rationale     string   `json:"rationale"`
}

// QuestionAdminDTO exposes the full question, answer key included. Admin only.
type QuestionAdminDTO struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	GradeID       string    `json:"grade_id"`
	BehaviourIDs  []string  `json:"behaviour_ids"`
	Text          string    `json:"text"`
	Context       string    `json:"context,omitempty"`
	Options       []string  `json:"options,omitempty"`
	CorrectAnswer string    `json:"correct_answer,omitempty"`
	CorrectOrder  []string  `json:"correct_order,omitempty"`
	Marks         float64   `json:"marks"`
	Rationale     string    `json:"rationale,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuestionPublicDTO is the learner-facing view: the answer key and rationale
// are stripped so an open attempt cannot leak them.
type QuestionPublicDTO struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	BehaviourIDs []string `json:"behaviour_ids,omitempty"`
	Text         string   `json:"text"`
	Context      string   `json:"context,omitempty"`
	Options      []string `json:"options,omitempty"`
	Marks        float64  `json:"marks"`
}

type QuestionListResponse struct {
	Items    []QuestionAdminDTO `json:"items"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Total    int64              `json:"total"`
}

// --- Tests ---

type TestQuestionRefDTO struct {
	QuestionID string `json:"question_id" binding:"required"`
	Position   int    `json:"position" binding:"required,min=1"`
}

type TestCreateDTO struct {
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	Type         string               `json:"type" binding:"required,oneof=MCQ SJT NUMERICAL FREE_TEXT TECHNICAL"`
	TimeLimit    int                  `json:"time_limit" binding:"required,gt=0"`
	GradeID      string               `json:"grade_id" binding:"required"`
	PassingScore float64              `json:"passing_score" binding:"min=0,max=100"`
	Questions    []TestQuestionRefDTO `json:"questions" binding:"required,min=1,dive"`
}

type TestSummaryDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	TimeLimit     int       `json:"time_limit"`
	GradeID       string    `json:"grade_id"`
	PassingScore  float64   `json:"passing_score"`
	IsPublished   bool      `json:"is_published"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type TestDetailDTO struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	Type         string              `json:"type"`
	TimeLimit    int                 `json:"time_limit"`
	GradeID      string              `json:"grade_id"`
	PassingScore float64             `json:"passing_score"`
	Questions    []QuestionPublicDTO `json:"questions"`
}
