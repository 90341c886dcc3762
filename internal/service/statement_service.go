package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/model"
	"github.com/lambourne/crownprep/internal/repository"
	"github.com/rs/zerolog/log"
)

const defaultStatementMaxWords = 250

// statementDepthVerbs mirrors the verb list the free-text scorer rewards, so
// draft feedback and exam scoring pull candidates in the same direction.
var statementDepthVerbs = []string{"led", "managed", "implemented", "achieved", "improved", "delivered"}

// StatementService manages STAR-method behaviour statement drafts and
// produces deterministic heuristic feedback on them.
type StatementService interface {
	CreateDraft(userID string, req dto.StatementDraftRequest) (*dto.StatementDraftDTO, error)
	UpdateDraft(draftID, userID string, req dto.StatementDraftRequest) (*dto.StatementDraftDTO, error)
	GetDraft(draftID, userID string) (*dto.StatementDraftDTO, error)
	ListDrafts(userID string) ([]dto.StatementDraftDTO, error)
	DeleteDraft(draftID, userID string) error
}

type statementService struct {
	statementRepo repository.StatementRepository
	behaviourRepo repository.BehaviourRepository
}

func NewStatementService(statementRepo repository.StatementRepository, behaviourRepo repository.BehaviourRepository) StatementService {
	return &statementService{statementRepo: statementRepo, behaviourRepo: behaviourRepo}
}

func (s *statementService) CreateDraft(userID string, req dto.StatementDraftRequest) (*dto.StatementDraftDTO, error) {
	if _, err := s.behaviourRepo.FindByID(req.BehaviourID); err != nil {
		return nil, fmt.Errorf("behaviour not found with ID %s: %w", req.BehaviourID, err)
	}
	maxWords := req.MaxWords
	if maxWords <= 0 {
		maxWords = defaultStatementMaxWords
	}
	draft := model.StatementDraft{
		ID:          uuid.NewString(),
		UserID:      userID,
		BehaviourID: req.BehaviourID,
		Situation:   req.Situation,
		Task:        req.Task,
		Action:      req.Action,
		Result:      req.Result,
		MaxWords:    maxWords,
	}
	if err := s.statementRepo.Create(&draft); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("CreateDraft: database error")
		return nil, fmt.Errorf("creating statement draft: %w", err)
	}
	return draftDTO(draft), nil
}

func (s *statementService) UpdateDraft(draftID, userID string, req dto.StatementDraftRequest) (*dto.StatementDraftDTO, error) {
	draft, err := s.ownedDraft(draftID, userID)
	if err != nil {
		return nil, err
	}
	draft.BehaviourID = req.BehaviourID
	draft.Situation = req.Situation
	draft.Task = req.Task
	draft.Action = req.Action
	draft.Result = req.Result
	if req.MaxWords > 0 {
		draft.MaxWords = req.MaxWords
	}
	if err := s.statementRepo.Update(draft); err != nil {
		return nil, fmt.Errorf("updating statement draft: %w", err)
	}
	return draftDTO(*draft), nil
}

func (s *statementService) GetDraft(draftID, userID string) (*dto.StatementDraftDTO, error) {
	draft, err := s.ownedDraft(draftID, userID)
	if err != nil {
		return nil, err
	}
	return draftDTO(*draft), nil
}

func (s *statementService) ListDrafts(userID string) ([]dto.StatementDraftDTO, error) {
	drafts, err := s.statementRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching statement drafts: %w", err)
	}
	items := make([]dto.StatementDraftDTO, 0, len(drafts))
	for _, draft := range drafts {
		items = append(items, *draftDTO(draft))
	}
	return items, nil
}

func (s *statementService) DeleteDraft(draftID, userID string) error {
	if _, err := s.ownedDraft(draftID, userID); err != nil {
		return err
	}
	return s.statementRepo.Delete(draftID)
}

func (s *statementService) ownedDraft(draftID, userID string) (*model.StatementDraft, error) {
	draft, err := s.statementRepo.FindByID(draftID)
	if err != nil {
		return nil, fmt.Errorf("statement draft not found with ID %s: %w", draftID, err)
	}
	if draft.UserID != userID {
		return nil, ErrNotOwner
	}
	return draft, nil
}

func draftDTO(draft model.StatementDraft) *dto.StatementDraftDTO {
	feedback := statementFeedback(draft)
	return &dto.StatementDraftDTO{
		ID:          draft.ID,
		BehaviourID: draft.BehaviourID,
		Situation:   draft.Situation,
		Task:        draft.Task,
		Action:      draft.Action,
		Result:      draft.Result,
		WordCount:   statementWordCount(draft),
		MaxWords:    draft.MaxWords,
		Feedback:    &feedback,
		CreatedAt:   draft.CreatedAt,
		UpdatedAt:   draft.UpdatedAt,
	}
}

func statementWordCount(draft model.StatementDraft) int {
	total := 0
	for _, section := range []string{draft.Situation, draft.Task, draft.Action, draft.Result} {
		total += len(strings.Fields(section))
	}
	return total
}

// statementFeedback produces rule-based feedback on a STAR draft. A section
// counts as developed once it reaches twenty words; the overall score is the
// number of developed sections, minus one when the draft runs over budget.
func statementFeedback(draft model.StatementDraft) dto.StatementFeedbackDTO {
	const developedWords = 20

	sections := []struct {
		name string
		text string
		hint string
	}{
		{"situation", draft.Situation, "Set the scene briefly: where were you and what was at stake?"},
		{"task", draft.Task, "State what you personally were responsible for."},
		{"action", draft.Action, "Describe the specific steps you took, in the first person."},
		{"result", draft.Result, "Quantify the outcome and what changed because of you."},
	}

	feedback := dto.StatementFeedbackDTO{
		Strengths:    []string{},
		Improvements: []string{},
		Suggestions:  []dto.StatementSectionFeedbackDTO{},
	}

	developed := 0
	for _, section := range sections {
		words := len(strings.Fields(section.text))
		switch {
		case words == 0:
			feedback.Suggestions = append(feedback.Suggestions, dto.StatementSectionFeedbackDTO{
				Section: section.name,
				Comment: "This section is empty. " + section.hint,
			})
		case words < developedWords:
			feedback.Suggestions = append(feedback.Suggestions, dto.StatementSectionFeedbackDTO{
				Section: section.name,
				Comment: fmt.Sprintf("This section is thin (%d words). %s", words, section.hint),
			})
		default:
			developed++
		}
	}

	if developed == len(sections) {
		feedback.Strengths = append(feedback.Strengths, "All four STAR sections are well developed.")
	}

	combined := strings.ToLower(draft.Situation + " " + draft.Task + " " + draft.Action + " " + draft.Result)
	if containsAnyWord(combined, statementDepthVerbs) {
		feedback.Strengths = append(feedback.Strengths, "Uses strong ownership verbs - assessors look for evidence of personal impact.")
	} else {
		feedback.Improvements = append(feedback.Improvements, "Use active ownership verbs (led, managed, implemented, achieved, improved, delivered) to show personal impact.")
	}

	score := developed
	if total := statementWordCount(draft); draft.MaxWords > 0 && total > draft.MaxWords {
		feedback.Improvements = append(feedback.Improvements,
			fmt.Sprintf("Statement is %d words over the %d-word limit - tighten the situation and task sections first.", total-draft.MaxWords, draft.MaxWords))
		score--
	}
	if score < 0 {
		score = 0
	}
	feedback.OverallScore = score
	return feedback
}

func containsAnyWord(haystack string, words []string) bool {
	for _, field := range strings.FieldsFunc(haystack, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		for _, word := range words {
			if field == word {
				return true
			}
		}
	}
	return false
}
