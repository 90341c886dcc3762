package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/model"
	"github.com/lambourne/crownprep/internal/repository"
	"github.com/rs/zerolog/log"
)

// CatalogService is the learner-facing, read-only view of the content
// catalog. Answer keys and rationales never leave this layer.
type CatalogService interface {
	ListTests() ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID string) (*dto.TestDetailDTO, error)
	ListBehaviours(gradeID *string) ([]dto.BehaviourDTO, error)
	GetBehaviour(id string) (*dto.BehaviourDTO, error)
	ListGrades() ([]dto.GradeDTO, error)
}

type catalogService struct {
	testRepo      repository.TestRepository
	behaviourRepo repository.BehaviourRepository
	gradeRepo     repository.GradeRepository
}

func NewCatalogService(
	testRepo repository.TestRepository,
	behaviourRepo repository.BehaviourRepository,
	gradeRepo repository.GradeRepository,
) CatalogService {
	return &catalogService{
		testRepo:      testRepo,
		behaviourRepo: behaviourRepo,
		gradeRepo:     gradeRepo,
	}
}

func (s *catalogService) ListTests() ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAll(true)
	if err != nil {
		log.Error().Err(err).Msg("ListTests: repository error")
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

func (s *catalogService) GetTestDetails(testID string) (*dto.TestDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Warn().Err(err).Str("testID", testID).Msg("GetTestDetails: test not found")
		return nil, fmt.Errorf("test not found with ID %s: %w", testID, err)
	}
	if !test.IsPublished {
		return nil, fmt.Errorf("test not found with ID %s", testID)
	}

	detail := &dto.TestDetailDTO{
		ID:           test.ID,
		Name:         test.Name,
		Description:  test.Description,
		Type:         test.Type,
		TimeLimit:    test.TimeLimit,
		GradeID:      test.GradeID,
		PassingScore: test.PassingScore,
		Questions:    make([]dto.QuestionPublicDTO, 0, len(test.Questions)),
	}
	for _, join := range test.Questions {
		detail.Questions = append(detail.Questions, publicQuestion(join.Question))
	}
	return detail, nil
}

func (s *catalogService) ListBehaviours(gradeID *string) ([]dto.BehaviourDTO, error) {
	behaviours, err := s.behaviourRepo.FindAll(gradeID)
	if err != nil {
		return nil, fmt.Errorf("error fetching behaviours: %w", err)
	}
	dtos := make([]dto.BehaviourDTO, 0, len(behaviours))
	for _, behaviour := range behaviours {
		var item dto.BehaviourDTO
		copier.Copy(&item, &behaviour)
		dtos = append(dtos, item)
	}
	return dtos, nil
}

func (s *catalogService) GetBehaviour(id string) (*dto.BehaviourDTO, error) {
	behaviour, err := s.behaviourRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("behaviour not found with ID %s: %w", id, err)
	}
	var resp dto.BehaviourDTO
	copier.Copy(&resp, behaviour)
	return &resp, nil
}

func (s *catalogService) ListGrades() ([]dto.GradeDTO, error) {
	grades, err := s.gradeRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching grades: %w", err)
	}
	dtos := make([]dto.GradeDTO, 0, len(grades))
	for _, grade := range grades {
		var item dto.GradeDTO
		copier.Copy(&item, &grade)
		dtos = append(dtos, item)
	}
	return dtos, nil
}

// publicQuestion strips the answer key and rationale from a catalog row.
func publicQuestion(q model.Question) dto.QuestionPublicDTO {
	behaviourIDs := make([]string, 0, len(q.Behaviours))
	for _, b := range q.Behaviours {
		behaviourIDs = append(behaviourIDs, b.ID)
	}
	return dto.QuestionPublicDTO{
		ID:           q.ID,
		Type:         q.Type,
		BehaviourIDs: behaviourIDs,
		Text:         q.Text,
		Context:      q.Context,
		Options:      decodeStrings(q.Options),
		Marks:        q.Marks,
	}
}
