package service

import (
	"encoding/json"
	"sort"

	"github.com/lambourne/crownprep/internal/engine"
	"github.com/lambourne/crownprep/internal/model"
	"github.com/lambourne/crownprep/internal/repository"
)

// catalogProvider adapts the gorm repositories to the engine's read-only
// Catalog contract. Lookups report absence via the boolean; repository
// errors (including soft-deleted rows) count as absent, which is exactly the
// tolerance the aggregation step needs.
type catalogProvider struct {
	questionRepo  repository.QuestionRepository
	behaviourRepo repository.BehaviourRepository
	testRepo      repository.TestRepository
}

func NewCatalogProvider(
	questionRepo repository.QuestionRepository,
	behaviourRepo repository.BehaviourRepository,
	testRepo repository.TestRepository,
) engine.Catalog {
	return &catalogProvider{
		questionRepo:  questionRepo,
		behaviourRepo: behaviourRepo,
		testRepo:      testRepo,
	}
}

func (c *catalogProvider) QuestionByID(id string) (engine.Question, bool) {
	question, err := c.questionRepo.FindByID(id)
	if err != nil {
		return engine.Question{}, false
	}
	return questionToEngine(*question), true
}

func (c *catalogProvider) BehaviourByID(id string) (engine.Behaviour, bool) {
	behaviour, err := c.behaviourRepo.FindByID(id)
	if err != nil {
		return engine.Behaviour{}, false
	}
	gradeID := ""
	if behaviour.GradeID != nil {
		gradeID = *behaviour.GradeID
	}
	return engine.Behaviour{
		ID:          behaviour.ID,
		Name:        behaviour.Name,
		Description: behaviour.Description,
		GradeID:     gradeID,
	}, true
}

func (c *catalogProvider) TestByID(id string) (engine.Test, bool) {
	test, err := c.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		return engine.Test{}, false
	}
	return testToEngine(*test), true
}

// questionToEngine converts a catalog row into the engine's question value.
func questionToEngine(q model.Question) engine.Question {
	behaviourIDs := make([]string, 0, len(q.Behaviours))
	for _, b := range q.Behaviours {
		behaviourIDs = append(behaviourIDs, b.ID)
	}
	return engine.Question{
		ID:            q.ID,
		Type:          engine.QuestionType(q.Type),
		GradeID:       q.GradeID,
		BehaviourIDs:  behaviourIDs,
		Text:          q.Text,
		Options:       decodeStrings(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		CorrectOrder:  decodeStrings(q.CorrectOrder),
		Marks:         q.Marks,
		Rationale:     q.Rationale,
	}
}

// testToEngine builds the engine's test snapshot with questions in their
// join-row order.
func testToEngine(t model.Test) engine.Test {
	joins := append([]model.TestQuestion(nil), t.Questions...)
	sort.SliceStable(joins, func(i, j int) bool { return joins[i].Position < joins[j].Position })

	questions := make([]engine.Question, 0, len(joins))
	for _, join := range joins {
		questions = append(questions, questionToEngine(join.Question))
	}
	return engine.Test{
		ID:               t.ID,
		Name:             t.Name,
		Type:             engine.QuestionType(t.Type),
		TimeLimitMinutes: t.TimeLimit,
		GradeID:          t.GradeID,
		PassingScore:     t.PassingScore,
		Questions:        questions,
	}
}

// encodeStrings and decodeStrings handle the JSON-encoded string-array
// columns (options, rankings, question order).
func encodeStrings(values []string) string {
	if len(values) == 0 {
		return ""
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
