package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lambourne/crownprep/internal/engine"
	"github.com/lambourne/crownprep/internal/model"
	"github.com/lambourne/crownprep/internal/repository"
	"gorm.io/gorm"
)

// gormAttemptStore backs the engine's AttemptStore with the attempt and
// answer tables. The test snapshot, question order and behaviour scores are
// JSON columns on the attempt row; answers are one row per question, upserted
// so the engine's last-write-wins semantics map directly onto the database.
type gormAttemptStore struct {
	attemptRepo repository.TestAttemptRepository
	answerRepo  repository.AnswerRepository
}

func NewAttemptStore(
	attemptRepo repository.TestAttemptRepository,
	answerRepo repository.AnswerRepository,
) engine.AttemptStore {
	return &gormAttemptStore{attemptRepo: attemptRepo, answerRepo: answerRepo}
}

func (s *gormAttemptStore) Get(id string) (*engine.Attempt, error) {
	row, err := s.attemptRepo.FindByIDWithAnswers(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, engine.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("loading attempt %s: %w", id, err)
	}
	return attemptFromRow(row)
}

func (s *gormAttemptStore) Put(attempt *engine.Attempt) error {
	row, err := attemptToRow(attempt)
	if err != nil {
		return err
	}

	if _, findErr := s.attemptRepo.FindByID(attempt.ID); findErr != nil {
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking attempt %s: %w", attempt.ID, findErr)
		}
		if createErr := s.attemptRepo.Create(row); createErr != nil {
			return fmt.Errorf("creating attempt %s: %w", attempt.ID, createErr)
		}
	} else if updateErr := s.attemptRepo.Update(row); updateErr != nil {
		return fmt.Errorf("updating attempt %s: %w", attempt.ID, updateErr)
	}

	for _, answer := range attempt.Answers {
		answerRow, rowErr := answerToRow(attempt, answer)
		if rowErr != nil {
			return rowErr
		}
		if upsertErr := s.answerRepo.Upsert(answerRow); upsertErr != nil {
			return fmt.Errorf("saving answer for question %s: %w", answer.QuestionID, upsertErr)
		}
	}
	return nil
}

func (s *gormAttemptStore) Delete(id string) error {
	if err := s.answerRepo.DeleteByAttempt(id); err != nil {
		return fmt.Errorf("clearing answers for attempt %s: %w", id, err)
	}
	return s.attemptRepo.Delete(id)
}

func attemptFromRow(row *model.TestAttempt) (*engine.Attempt, error) {
	var snapshot engine.Test
	if err := json.Unmarshal([]byte(row.TestSnapshot), &snapshot); err != nil {
		return nil, fmt.Errorf("decoding test snapshot for attempt %s: %w", row.ID, err)
	}

	attempt := &engine.Attempt{
		ID:            row.ID,
		UserID:        row.UserID,
		TestID:        row.TestID,
		Test:          snapshot,
		QuestionOrder: decodeStrings(row.QuestionOrder),
		Answers:       make(map[string]engine.Answer, len(row.Answers)),
		StartedAt:     row.StartedAt,
		CompletedAt:   row.CompletedAt,
		Status:        engine.AttemptStatus(row.Status),
	}
	if row.Score != nil {
		attempt.Score = *row.Score
	}
	if row.TotalScore != nil {
		attempt.TotalScore = *row.TotalScore
	}
	if row.MaxScore != nil {
		attempt.MaxScore = *row.MaxScore
	}
	if row.Passed != nil {
		attempt.Passed = *row.Passed
	}
	if row.BehaviourScores != "" {
		if err := json.Unmarshal([]byte(row.BehaviourScores), &attempt.BehaviourScores); err != nil {
			return nil, fmt.Errorf("decoding behaviour scores for attempt %s: %w", row.ID, err)
		}
	}

	for _, answerRow := range row.Answers {
		var response engine.Response
		if answerRow.Response != "" {
			if err := json.Unmarshal([]byte(answerRow.Response), &response); err != nil {
				return nil, fmt.Errorf("decoding response for question %s: %w", answerRow.QuestionID, err)
			}
		}
		answer := engine.Answer{
			AttemptID:  row.ID,
			QuestionID: answerRow.QuestionID,
			Response:   response,
			IsCorrect:  answerRow.IsCorrect,
			Feedback:   answerRow.Feedback,
		}
		if answerRow.Score != nil {
			answer.Score = *answerRow.Score
		}
		if answerRow.MaxScore != nil {
			answer.MaxScore = *answerRow.MaxScore
		}
		attempt.Answers[answerRow.QuestionID] = answer
	}
	return attempt, nil
}

func attemptToRow(attempt *engine.Attempt) (*model.TestAttempt, error) {
	snapshot, err := json.Marshal(attempt.Test)
	if err != nil {
		return nil, fmt.Errorf("encoding test snapshot: %w", err)
	}

	row := &model.TestAttempt{
		ID:            attempt.ID,
		UserID:        attempt.UserID,
		TestID:        attempt.TestID,
		TestSnapshot:  string(snapshot),
		QuestionOrder: encodeStrings(attempt.QuestionOrder),
		Status:        string(attempt.Status),
		StartedAt:     attempt.StartedAt,
		CompletedAt:   attempt.CompletedAt,
	}
	if attempt.Status == engine.StatusSubmitted {
		score := attempt.Score
		total := attempt.TotalScore
		max := attempt.MaxScore
		passed := attempt.Passed
		row.Score = &score
		row.TotalScore = &total
		row.MaxScore = &max
		row.Passed = &passed

		behaviourScores, marshalErr := json.Marshal(attempt.BehaviourScores)
		if marshalErr != nil {
			return nil, fmt.Errorf("encoding behaviour scores: %w", marshalErr)
		}
		row.BehaviourScores = string(behaviourScores)
	}
	return row, nil
}

func answerToRow(attempt *engine.Attempt, answer engine.Answer) (*model.Answer, error) {
	response, err := json.Marshal(answer.Response)
	if err != nil {
		return nil, fmt.Errorf("encoding response for question %s: %w", answer.QuestionID, err)
	}
	row := &model.Answer{
		ID:            uuid.NewString(),
		TestAttemptID: attempt.ID,
		QuestionID:    answer.QuestionID,
		Response:      string(response),
		IsCorrect:     answer.IsCorrect,
		Feedback:      answer.Feedback,
	}
	if attempt.Status == engine.StatusSubmitted {
		score := answer.Score
		max := answer.MaxScore
		row.Score = &score
		row.MaxScore = &max
	}
	return row, nil
}
