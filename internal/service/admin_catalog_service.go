package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/engine"
	"github.com/lambourne/crownprep/internal/model"
	"github.com/lambourne/crownprep/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminCatalogService is the authoring side of the content catalog.
type AdminCatalogService interface {
	CreateBehaviour(req dto.BehaviourCreateDTO) (*dto.BehaviourDTO, error)
	UpdateBehaviour(id string, req dto.BehaviourCreateDTO) (*dto.BehaviourDTO, error)
	DeleteBehaviour(id string) error

	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error)
	GetQuestion(id string) (*dto.QuestionAdminDTO, error)
	ListQuestions(gradeID, questionType *string, page, pageSize int) (*dto.QuestionListResponse, error)
	UpdateQuestion(id string, req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error)
	DeleteQuestion(id string) error

	CreateTest(req dto.TestCreateDTO) (*dto.TestSummaryDTO, error)
	ListTests() ([]dto.TestSummaryDTO, error)
	SetTestPublished(id string, published bool) error
	DeleteTest(id string) error

	Analytics() (*dto.AnalyticsDTO, error)
}

type adminCatalogService struct {
	behaviourRepo repository.BehaviourRepository
	questionRepo  repository.QuestionRepository
	testRepo      repository.TestRepository
	userRepo      repository.UserRepository
	attemptRepo   repository.TestAttemptRepository
}

func NewAdminCatalogService(
	behaviourRepo repository.BehaviourRepository,
	questionRepo repository.QuestionRepository,
	testRepo repository.TestRepository,
	userRepo repository.UserRepository,
	attemptRepo repository.TestAttemptRepository,
) AdminCatalogService {
	return &adminCatalogService{
		behaviourRepo: behaviourRepo,
		questionRepo:  questionRepo,
		testRepo:      testRepo,
		userRepo:      userRepo,
		attemptRepo:   attemptRepo,
	}
}

// --- Behaviours ---

func (s *adminCatalogService) CreateBehaviour(req dto.BehaviourCreateDTO) (*dto.BehaviourDTO, error) {
	behaviour := model.Behaviour{}
	copier.Copy(&behaviour, &req)
	if err := s.behaviourRepo.Create(&behaviour); err != nil {
		log.Error().Err(err).Str("behaviourID", req.ID).Msg("CreateBehaviour: database error")
		return nil, fmt.Errorf("creating behaviour: %w", err)
	}
	var resp dto.BehaviourDTO
	copier.Copy(&resp, &behaviour)
	return &resp, nil
}

func (s *adminCatalogService) UpdateBehaviour(id string, req dto.BehaviourCreateDTO) (*dto.BehaviourDTO, error) {
	behaviour, err := s.behaviourRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("behaviour not found with ID %s: %w", id, err)
	}
	behaviour.Name = req.Name
	behaviour.Description = req.Description
	behaviour.GradeID = req.GradeID
	behaviour.SuccessCriteria = req.SuccessCriteria
	if err := s.behaviourRepo.Update(behaviour); err != nil {
		return nil, fmt.Errorf("updating behaviour: %w", err)
	}
	var resp dto.BehaviourDTO
	copier.Copy(&resp, behaviour)
	return &resp, nil
}

func (s *adminCatalogService) DeleteBehaviour(id string) error {
	return s.behaviourRepo.Delete(id)
}

// --- Questions ---

func (s *adminCatalogService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error) {
	if err := validateAnswerKey(req); err != nil {
		return nil, err
	}
	behaviours, err := s.resolveBehaviours(req.BehaviourIDs)
	if err != nil {
		return nil, err
	}

	question := model.Question{
		ID:            uuid.NewString(),
		Type:          req.Type,
		GradeID:       req.GradeID,
		Text:          req.Text,
		Context:       req.Context,
		Options:       encodeStrings(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		CorrectOrder:  encodeStrings(req.CorrectOrder),
		Marks:         req.Marks,
		Rationale:     req.Rationale,
		Behaviours:    behaviours,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: database error")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return adminQuestion(question), nil
}

func (s *adminCatalogService) GetQuestion(id string) (*dto.QuestionAdminDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %s: %w", id, err)
	}
	return adminQuestion(*question), nil
}

func (s *adminCatalogService) ListQuestions(gradeID, questionType *string, page, pageSize int) (*dto.QuestionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	questions, total, err := s.questionRepo.FindAll(gradeID, questionType, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	items := make([]dto.QuestionAdminDTO, 0, len(questions))
	for _, question := range questions {
		items = append(items, *adminQuestion(question))
	}
	return &dto.QuestionListResponse{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *adminCatalogService) UpdateQuestion(id string, req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error) {
	if err := validateAnswerKey(req); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %s: %w", id, err)
	}
	behaviours, err := s.resolveBehaviours(req.BehaviourIDs)
	if err != nil {
		return nil, err
	}

	question.Type = req.Type
	question.GradeID = req.GradeID
	question.Text = req.Text
	question.Context = req.Context
	question.Options = encodeStrings(req.Options)
	question.CorrectAnswer = req.CorrectAnswer
	question.CorrectOrder = encodeStrings(req.CorrectOrder)
	question.Marks = req.Marks
	question.Rationale = req.Rationale
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question: %w", err)
	}
	if err := s.questionRepo.ReplaceBehaviours(question, behaviours); err != nil {
		return nil, fmt.Errorf("updating question behaviours: %w", err)
	}
	question.Behaviours = behaviours
	return adminQuestion(*question), nil
}

func (s *adminCatalogService) DeleteQuestion(id string) error {
	return s.questionRepo.Delete(id)
}

// --- Tests ---

func (s *adminCatalogService) CreateTest(req dto.TestCreateDTO) (*dto.TestSummaryDTO, error) {
	positions := make(map[int]bool, len(req.Questions))
	joins := make([]model.TestQuestion, 0, len(req.Questions))
	for _, ref := range req.Questions {
		if positions[ref.Position] {
			return nil, fmt.Errorf("duplicate position %d in test questions", ref.Position)
		}
		positions[ref.Position] = true
		if _, err := s.questionRepo.FindByID(ref.QuestionID); err != nil {
			return nil, fmt.Errorf("question not found with ID %s: %w", ref.QuestionID, err)
		}
		joins = append(joins, model.TestQuestion{
			ID:         uuid.NewString(),
			QuestionID: ref.QuestionID,
			Position:   ref.Position,
		})
	}

	test := model.Test{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		TimeLimit:    req.TimeLimit,
		GradeID:      req.GradeID,
		PassingScore: req.PassingScore,
		Questions:    joins,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateTest: database error")
		return nil, fmt.Errorf("creating test: %w", err)
	}

	var summary dto.TestSummaryDTO
	copier.Copy(&summary, &test)
	summary.QuestionCount = len(joins)
	return &summary, nil
}

func (s *adminCatalogService) ListTests() ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAll(false)
	if err != nil {
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	summaries := make([]dto.TestSummaryDTO, 0, len(tests))
	for _, test := range tests {
		var summary dto.TestSummaryDTO
		copier.Copy(&summary, &test)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *adminCatalogService) SetTestPublished(id string, published bool) error {
	if _, err := s.testRepo.FindByID(id); err != nil {
		return fmt.Errorf("test not found with ID %s: %w", id, err)
	}
	return s.testRepo.SetPublished(id, published)
}

func (s *adminCatalogService) DeleteTest(id string) error {
	return s.testRepo.Delete(id)
}

// --- Analytics ---

func (s *adminCatalogService) Analytics() (*dto.AnalyticsDTO, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	completed, err := s.attemptRepo.CountByStatus(string(engine.StatusSubmitted))
	if err != nil {
		return nil, fmt.Errorf("counting completed attempts: %w", err)
	}

	conversion := 0.0
	if users > 0 {
		conversion = float64(completed) / float64(users)
	}
	return &dto.AnalyticsDTO{Users: users, TestsCompleted: completed, ConversionRate: conversion}, nil
}

// validateAnswerKey enforces the per-type answer-key shape at authoring time,
// so the scorer never sees a question it cannot dispatch on.
func validateAnswerKey(req dto.QuestionCreateDTO) error {
	switch engine.QuestionType(req.Type) {
	case engine.QuestionMCQ, engine.QuestionNumerical:
		if req.CorrectAnswer == "" {
			return fmt.Errorf("%s questions require a correct_answer", req.Type)
		}
	case engine.QuestionSJT:
		if len(req.CorrectOrder) < 2 {
			return fmt.Errorf("SJT questions require a correct_order of at least two options")
		}
	case engine.QuestionFreeText, engine.QuestionTechnical:
		if req.CorrectAnswer != "" || len(req.CorrectOrder) > 0 {
			return fmt.Errorf("%s questions must not carry an answer key", req.Type)
		}
	}
	return nil
}

func (s *adminCatalogService) resolveBehaviours(ids []string) ([]model.Behaviour, error) {
	behaviours := make([]model.Behaviour, 0, len(ids))
	for _, id := range ids {
		behaviour, err := s.behaviourRepo.FindByID(id)
		if err != nil {
			return nil, fmt.Errorf("behaviour not found with ID %s: %w", id, err)
		}
		behaviours = append(behaviours, *behaviour)
	}
	return behaviours, nil
}

func adminQuestion(q model.Question) *dto.QuestionAdminDTO {
	behaviourIDs := make([]string, 0, len(q.Behaviours))
	for _, b := range q.Behaviours {
		behaviourIDs = append(behaviourIDs, b.ID)
	}
	return &dto.QuestionAdminDTO{
		ID:            q.ID,
		Type:          q.Type,
		GradeID:       q.GradeID,
		BehaviourIDs:  behaviourIDs,
		Text:          q.Text,
		Context:       q.Context,
		Options:       decodeStrings(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		CorrectOrder:  decodeStrings(q.CorrectOrder),
		Marks:         q.Marks,
		Rationale:     q.Rationale,
		CreatedAt:     q.CreatedAt,
	}
}
