package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/engine"
	"github.com/lambourne/crownprep/internal/model"
	"github.com/lambourne/crownprep/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrNotOwner signals that the caller is operating on another learner's
// attempt. Attempts are owned exclusively by the user who started them.
var ErrNotOwner = errors.New("attempt belongs to another user")

// ErrResultsNotReady signals that results were requested for an attempt that
// has not been submitted.
var ErrResultsNotReady = errors.New("attempt has not been submitted")

type AttemptService interface {
	StartTest(testID, userID string) (*dto.StartAttemptResponse, error)
	SaveAnswer(attemptID, userID string, req dto.SaveAnswerRequest) error
	TimeRemaining(attemptID, userID string) (*dto.TimeRemainingDTO, error)
	Resume(attemptID, userID string) (*dto.ResumeAttemptResponse, error)
	Submit(attemptID, userID string) (*dto.AttemptResultDTO, error)
	Abandon(attemptID, userID string) error
	ListAttempts(userID string, status *string, page, pageSize int) (*dto.AttemptListResponse, error)
	Results(attemptID, requesterID string, isAdmin, includeAudit bool) (*dto.AttemptResultDTO, error)
	OverrideAnswer(attemptID, questionID string, score float64) (*dto.AttemptResultDTO, error)
}

type attemptService struct {
	manager     *engine.Manager
	catalog     engine.Catalog
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
	answerRepo  repository.AnswerRepository
}

func NewAttemptService(
	manager *engine.Manager,
	catalog engine.Catalog,
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
	answerRepo repository.AnswerRepository,
) AttemptService {
	return &attemptService{
		manager:     manager,
		catalog:     catalog,
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
	}
}

func (s *attemptService) StartTest(testID, userID string) (*dto.StartAttemptResponse, error) {
	row, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Warn().Err(err).Str("testID", testID).Msg("StartTest: test not found")
		return nil, fmt.Errorf("test not found with ID %s: %w", testID, err)
	}
	if !row.IsPublished {
		return nil, fmt.Errorf("test %s is not published", testID)
	}
	if len(row.Questions) == 0 {
		return nil, fmt.Errorf("test %s has no questions, an attempt is not possible", testID)
	}

	attempt, err := s.manager.Start(testToEngine(*row), userID)
	if err != nil {
		log.Error().Err(err).Str("testID", testID).Msg("StartTest: failed to create attempt")
		return nil, err
	}

	return &dto.StartAttemptResponse{
		AttemptID:     attempt.ID,
		TestID:        attempt.TestID,
		UserID:        attempt.UserID,
		StartedAt:     attempt.StartedAt,
		TimeLimit:     attempt.Test.TimeLimitMinutes,
		QuestionOrder: attempt.QuestionOrder,
	}, nil
}

func (s *attemptService) SaveAnswer(attemptID, userID string, req dto.SaveAnswerRequest) error {
	if err := s.checkOwner(attemptID, userID); err != nil {
		return err
	}
	_, err := s.manager.RecordAnswer(attemptID, req.QuestionID, engine.Response{
		Text:    req.Response.Text,
		Ranking: req.Response.Ranking,
	})
	return err
}

func (s *attemptService) TimeRemaining(attemptID, userID string) (*dto.TimeRemainingDTO, error) {
	if err := s.checkOwner(attemptID, userID); err != nil {
		return nil, err
	}
	status, err := s.manager.TimeRemaining(attemptID)
	if err != nil {
		return nil, err
	}
	return &dto.TimeRemainingDTO{RemainingSeconds: status.RemainingSeconds, IsExpired: status.Expired}, nil
}

func (s *attemptService) Resume(attemptID, userID string) (*dto.ResumeAttemptResponse, error) {
	if err := s.checkOwner(attemptID, userID); err != nil {
		return nil, err
	}
	attempt, err := s.manager.Resume(attemptID)
	if err != nil {
		return nil, err
	}

	answers := make([]dto.SavedAnswerDTO, 0, len(attempt.Answers))
	for _, answer := range attempt.AnswersInOrder() {
		answers = append(answers, dto.SavedAnswerDTO{
			QuestionID: answer.QuestionID,
			Response:   dto.ResponsePayload{Text: answer.Response.Text, Ranking: answer.Response.Ranking},
		})
	}

	status, err := s.manager.TimeRemaining(attemptID)
	if err != nil {
		return nil, err
	}

	return &dto.ResumeAttemptResponse{
		AttemptID:        attempt.ID,
		TestID:           attempt.TestID,
		StartedAt:        attempt.StartedAt,
		TimeLimit:        attempt.Test.TimeLimitMinutes,
		QuestionOrder:    attempt.QuestionOrder,
		Answers:          answers,
		RemainingSeconds: status.RemainingSeconds,
	}, nil
}

func (s *attemptService) Submit(attemptID, userID string) (*dto.AttemptResultDTO, error) {
	if err := s.checkOwner(attemptID, userID); err != nil {
		return nil, err
	}
	attempt, err := s.manager.Submit(attemptID)
	if err != nil {
		log.Warn().Err(err).Str("attemptID", attemptID).Msg("Submit: rejected")
		return nil, err
	}
	log.Info().
		Str("attemptID", attemptID).
		Float64("percentage", attempt.Score).
		Bool("passed", attempt.Passed).
		Msg("Attempt submitted and scored")
	return resultFromAttempt(attempt, true), nil
}

func (s *attemptService) Abandon(attemptID, userID string) error {
	if err := s.checkOwner(attemptID, userID); err != nil {
		return err
	}
	return s.manager.Abandon(attemptID)
}

func (s *attemptService) ListAttempts(userID string, status *string, page, pageSize int) (*dto.AttemptListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.attemptRepo.FindAllByUser(userID, status, page, pageSize)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("ListAttempts: repository error")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	items := make([]dto.AttemptSummaryDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, summaryFromRow(row))
	}
	return &dto.AttemptListResponse{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *attemptService) Results(attemptID, requesterID string, isAdmin, includeAudit bool) (*dto.AttemptResultDTO, error) {
	attempt, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && attempt.UserID != requesterID {
		return nil, ErrNotOwner
	}
	if attempt.Status != engine.StatusSubmitted {
		return nil, ErrResultsNotReady
	}

	result := resultFromAttempt(attempt, includeAudit)
	if includeAudit {
		if err := s.applyOverridesToAudit(attemptID, result); err != nil {
			log.Warn().Err(err).Str("attemptID", attemptID).Msg("Results: could not load override details")
		}
	}
	return result, nil
}

// OverrideAnswer records a manual score for one answer of a submitted attempt
// and recomputes the attempt's totals and behaviour breakdown with the
// override in effect. This is the deferred grading path for TECHNICAL
// answers, which the automatic scorer leaves at zero pending review.
func (s *attemptService) OverrideAnswer(attemptID, questionID string, score float64) (*dto.AttemptResultDTO, error) {
	attempt, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != engine.StatusSubmitted {
		return nil, engine.ErrAttemptNotActive
	}

	answerRow, err := s.answerRepo.FindByAttemptAndQuestion(attemptID, questionID)
	if err != nil {
		return nil, fmt.Errorf("answer not found for question %s: %w", questionID, err)
	}

	maxScore := 0.0
	if question, ok := attempt.Test.QuestionByID(questionID); ok {
		maxScore = question.Marks
	} else if answerRow.MaxScore != nil {
		maxScore = *answerRow.MaxScore
	}
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	answerRow.ManualScore = &score
	answerRow.ManualOverride = true
	if err := s.answerRepo.Update(answerRow); err != nil {
		return nil, fmt.Errorf("saving manual override: %w", err)
	}

	// Rebuild the effective answer set and rescore the attempt.
	overrides := map[string]float64{questionID: score}
	if err := s.rescoreWithOverrides(attempt, overrides); err != nil {
		return nil, err
	}

	log.Info().
		Str("attemptID", attemptID).
		Str("questionID", questionID).
		Float64("score", score).
		Msg("Manual score override applied")

	refreshed, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	result := resultFromAttempt(refreshed, true)
	if err := s.applyOverridesToAudit(attemptID, result); err != nil {
		log.Warn().Err(err).Str("attemptID", attemptID).Msg("OverrideAnswer: could not refresh audit details")
	}
	return result, nil
}

func (s *attemptService) rescoreWithOverrides(attempt *engine.Attempt, extra map[string]float64) error {
	rows, err := s.answerRepo.FindByAttempt(attempt.ID)
	if err != nil {
		return fmt.Errorf("loading answers for rescore: %w", err)
	}

	overrides := make(map[string]float64, len(rows))
	for _, row := range rows {
		if row.ManualOverride && row.ManualScore != nil {
			overrides[row.QuestionID] = *row.ManualScore
		}
	}
	for questionID, score := range extra {
		overrides[questionID] = score
	}

	answers := attempt.AnswersInOrder()
	for i := range answers {
		if manual, ok := overrides[answers[i].QuestionID]; ok {
			answers[i].Score = manual
		}
	}

	outcome := engine.CalculateTestScore(attempt.Test, answers, s.catalog)
	attempt.Score = outcome.Percentage
	attempt.TotalScore = outcome.TotalScore
	attempt.MaxScore = outcome.MaxScore
	attempt.Passed = outcome.Passed
	attempt.BehaviourScores = outcome.BehaviourScores

	row, err := attemptToRow(attempt)
	if err != nil {
		return err
	}
	return s.attemptRepo.Update(row)
}

func (s *attemptService) checkOwner(attemptID, userID string) error {
	row, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return engine.ErrAttemptNotFound
	}
	if row.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

func (s *attemptService) loadAttempt(attemptID string) (*engine.Attempt, error) {
	store := NewAttemptStore(s.attemptRepo, s.answerRepo)
	return store.Get(attemptID)
}

func (s *attemptService) applyOverridesToAudit(attemptID string, result *dto.AttemptResultDTO) error {
	rows, err := s.answerRepo.FindByAttempt(attemptID)
	if err != nil {
		return err
	}
	byQuestion := make(map[string]model.Answer, len(rows))
	for _, row := range rows {
		byQuestion[row.QuestionID] = row
	}
	for i := range result.Audit {
		if row, ok := byQuestion[result.Audit[i].QuestionID]; ok {
			result.Audit[i].ManualOverride = row.ManualOverride
			result.Audit[i].ManualScore = row.ManualScore
		}
	}
	return nil
}

func resultFromAttempt(attempt *engine.Attempt, includeAudit bool) *dto.AttemptResultDTO {
	behaviourScores := make([]dto.BehaviourScoreDTO, 0, len(attempt.BehaviourScores))
	for _, bs := range attempt.BehaviourScores {
		behaviourScores = append(behaviourScores, dto.BehaviourScoreDTO{
			BehaviourID:     bs.BehaviourID,
			BehaviourName:   bs.BehaviourName,
			Score:           bs.Level,
			Recommendations: bs.Recommendations,
		})
	}

	result := &dto.AttemptResultDTO{
		AttemptID:       attempt.ID,
		TestID:          attempt.TestID,
		TestName:        attempt.Test.Name,
		Status:          string(attempt.Status),
		StartedAt:       attempt.StartedAt,
		CompletedAt:     attempt.CompletedAt,
		TotalScore:      attempt.TotalScore,
		MaxScore:        attempt.MaxScore,
		Percentage:      attempt.Score,
		Passed:          attempt.Passed,
		BehaviourScores: behaviourScores,
	}

	if includeAudit {
		audit := make([]dto.AnswerAuditDTO, 0, len(attempt.QuestionOrder))
		for i, questionID := range attempt.QuestionOrder {
			answer, ok := attempt.Answers[questionID]
			if !ok {
				continue
			}
			score := answer.Score
			maxScore := answer.MaxScore
			audit = append(audit, dto.AnswerAuditDTO{
				QuestionID: questionID,
				Order:      i + 1,
				Response:   dto.ResponsePayload{Text: answer.Response.Text, Ranking: answer.Response.Ranking},
				Score:      &score,
				MaxScore:   &maxScore,
				IsCorrect:  answer.IsCorrect,
				Feedback:   answer.Feedback,
			})
		}
		result.Audit = audit
	}
	return result
}

func summaryFromRow(row model.TestAttempt) dto.AttemptSummaryDTO {
	summary := dto.AttemptSummaryDTO{
		ID:          row.ID,
		TestID:      row.TestID,
		Status:      row.Status,
		StartedAt:   row.StartedAt,
		CompletedAt: row.CompletedAt,
		Score:       row.Score,
		Passed:      row.Passed,
	}
	// The snapshot carries the test name and time limit as they were when the
	// attempt started.
	var snapshot engine.Test
	if err := json.Unmarshal([]byte(row.TestSnapshot), &snapshot); err == nil {
		summary.TestName = snapshot.Name
		summary.TimeLimit = snapshot.TimeLimitMinutes
	}
	return summary
}
