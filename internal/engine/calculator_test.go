package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTestScore_EmptyAnswers(t *testing.T) {
	catalog := newFixtureCatalog(nil, nil)
	test := Test{ID: "t1", PassingScore: 70}

	got := CalculateTestScore(test, nil, catalog)
	assert.Equal(t, 0.0, got.TotalScore)
	assert.Equal(t, 0.0, got.MaxScore)
	assert.Equal(t, 0.0, got.Percentage, "zero max score is defined as 0%, not a division error")
	assert.False(t, got.Passed)
	assert.Empty(t, got.BehaviourScores)
}

func TestCalculateTestScore_ZeroThresholdPassesEmptyAttempt(t *testing.T) {
	catalog := newFixtureCatalog(nil, nil)
	got := CalculateTestScore(Test{ID: "t1", PassingScore: 0}, nil, catalog)
	assert.True(t, got.Passed, "passed follows percentage >= passingScore, so 0 >= 0 holds")
}

func TestCalculateTestScore_Totals(t *testing.T) {
	catalog := newFixtureCatalog(
		[]Question{
			mcqQuestion("q1", 1, "working-together"),
			sjtQuestion("q2", 4, "delivering-at-pace"),
		},
		[]Behaviour{
			{ID: "working-together", Name: "Working Together"},
			{ID: "delivering-at-pace", Name: "Delivering at Pace"},
		},
	)
	test := Test{ID: "t1", PassingScore: 70}

	answers := []Answer{
		{QuestionID: "q1", Score: 1, MaxScore: 1},
		{QuestionID: "q2", Score: 3, MaxScore: 4},
	}

	got := CalculateTestScore(test, answers, catalog)
	assert.Equal(t, 4.0, got.TotalScore)
	assert.Equal(t, 5.0, got.MaxScore)
	assert.InDelta(t, 80.0, got.Percentage, 1e-9)
	assert.True(t, got.Passed)
	assert.Len(t, got.BehaviourScores, 2)
}

func TestCalculateTestScore_FailsBelowThreshold(t *testing.T) {
	catalog := newFixtureCatalog(nil, nil)
	test := Test{ID: "t1", PassingScore: 70}

	got := CalculateTestScore(test, []Answer{{QuestionID: "q1", Score: 1, MaxScore: 5}}, catalog)
	assert.InDelta(t, 20.0, got.Percentage, 1e-9)
	assert.False(t, got.Passed)
}
