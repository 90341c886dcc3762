package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForPercentage_Boundaries(t *testing.T) {
	tests := []struct {
		percentage float64
		level      int
	}{
		{0, 0},
		{39.9, 0},
		{40.0, 1},
		{59.9, 1},
		{60.0, 2},
		{74.9, 2},
		{75.0, 3},
		{89.9, 3},
		{90.0, 4},
		{100, 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.level, LevelForPercentage(tc.percentage), "percentage %.1f", tc.percentage)
	}
}

func TestAggregateBehaviours_BucketsByBehaviour(t *testing.T) {
	catalog := newFixtureCatalog(
		[]Question{
			mcqQuestion("q1", 2, "working-together"),
			mcqQuestion("q2", 2, "working-together", "delivering-at-pace"),
		},
		[]Behaviour{
			{ID: "working-together", Name: "Working Together"},
			{ID: "delivering-at-pace", Name: "Delivering at Pace"},
		},
	)

	answers := []Answer{
		{QuestionID: "q1", Score: 2, MaxScore: 2},
		{QuestionID: "q2", Score: 1, MaxScore: 2},
	}

	scores := AggregateBehaviours(answers, catalog)
	require.Len(t, scores, 2)

	// Working Together: 3 of 4 = 75% -> level 3.
	assert.Equal(t, "working-together", scores[0].BehaviourID)
	assert.Equal(t, "Working Together", scores[0].BehaviourName)
	assert.Equal(t, 3, scores[0].Level)
	require.Len(t, scores[0].Recommendations, 1)
	assert.Contains(t, scores[0].Recommendations[0], "Strong performance in Working Together")

	// Delivering at Pace: 1 of 2 = 50% -> level 1, two remedial recommendations.
	assert.Equal(t, "delivering-at-pace", scores[1].BehaviourID)
	assert.Equal(t, 1, scores[1].Level)
	require.Len(t, scores[1].Recommendations, 2)
	assert.Contains(t, scores[1].Recommendations[0], "Review Delivering at Pace")
	assert.Contains(t, scores[1].Recommendations[1], "Practice more questions targeting Delivering at Pace")
}

func TestAggregateBehaviours_NoZeroFilledEntries(t *testing.T) {
	catalog := newFixtureCatalog(
		[]Question{mcqQuestion("q1", 2, "working-together")},
		[]Behaviour{
			{ID: "working-together", Name: "Working Together"},
			{ID: "leadership", Name: "Leadership"},
		},
	)

	scores := AggregateBehaviours([]Answer{{QuestionID: "q1", Score: 2, MaxScore: 2}}, catalog)
	require.Len(t, scores, 1)
	assert.Equal(t, "working-together", scores[0].BehaviourID, "behaviours untouched by any answered question are omitted")
}

func TestAggregateBehaviours_SkipsUnresolvableQuestions(t *testing.T) {
	catalog := newFixtureCatalog(
		[]Question{mcqQuestion("q1", 2, "working-together")},
		[]Behaviour{{ID: "working-together", Name: "Working Together"}},
	)

	answers := []Answer{
		{QuestionID: "q1", Score: 2, MaxScore: 2},
		{QuestionID: "deleted-question", Score: 2, MaxScore: 2},
	}

	scores := AggregateBehaviours(answers, catalog)
	require.Len(t, scores, 1)
	assert.Equal(t, 4, scores[0].Level, "the unresolvable answer contributes nothing to the bucket")
}

func TestAggregateBehaviours_BehaviourNameFallsBackToID(t *testing.T) {
	catalog := newFixtureCatalog(
		[]Question{mcqQuestion("q1", 2, "unlisted-behaviour")},
		nil,
	)

	scores := AggregateBehaviours([]Answer{{QuestionID: "q1", Score: 0, MaxScore: 2}}, catalog)
	require.Len(t, scores, 1)
	assert.Equal(t, "unlisted-behaviour", scores[0].BehaviourName)
}

func TestAggregateBehaviours_EmptyAnswers(t *testing.T) {
	catalog := newFixtureCatalog(nil, nil)
	assert.Empty(t, AggregateBehaviours(nil, catalog))
}
