package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAnswer_MCQ(t *testing.T) {
	q := mcqQuestion("q1", 2)

	correct := ScoreAnswer(q, Response{Text: "b"})
	require.NotNil(t, correct.IsCorrect)
	assert.True(t, *correct.IsCorrect)
	assert.Equal(t, 2.0, correct.Score)
	assert.Equal(t, 2.0, correct.MaxScore)
	assert.Contains(t, correct.Feedback, "Correct!")
	assert.Contains(t, correct.Feedback, q.Rationale)

	wrong := ScoreAnswer(q, Response{Text: "a"})
	require.NotNil(t, wrong.IsCorrect)
	assert.False(t, *wrong.IsCorrect)
	assert.Equal(t, 0.0, wrong.Score)
	assert.Contains(t, wrong.Feedback, "Incorrect.")

	empty := ScoreAnswer(q, Response{})
	require.NotNil(t, empty.IsCorrect)
	assert.False(t, *empty.IsCorrect)
	assert.Equal(t, 0.0, empty.Score)
}

func TestScoreAnswer_NumericalIsStringExact(t *testing.T) {
	q := Question{ID: "n1", Type: QuestionNumerical, CorrectAnswer: "10", Marks: 1, Rationale: "Sum of the column."}

	match := ScoreAnswer(q, Response{Text: "10"})
	require.NotNil(t, match.IsCorrect)
	assert.True(t, *match.IsCorrect)
	assert.Equal(t, 1.0, match.Score)

	// No numeric tolerance: "10.0" is a different string from "10".
	differentForm := ScoreAnswer(q, Response{Text: "10.0"})
	require.NotNil(t, differentForm.IsCorrect)
	assert.False(t, *differentForm.IsCorrect)
	assert.Equal(t, 0.0, differentForm.Score)
}

func TestScoreAnswer_SJT(t *testing.T) {
	q := sjtQuestion("s1", 4)

	tests := []struct {
		name    string
		ranking []string
		score   float64
	}{
		{"exact order yields full marks", []string{"discuss", "escalate", "wait", "ignore"}, 4},
		{"adjacent swap earns half credit per position", []string{"discuss", "escalate", "ignore", "wait"}, 3},
		{"fully reversed", []string{"ignore", "wait", "escalate", "discuss"}, 1},
		{"empty ranking", nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreAnswer(q, Response{Ranking: tc.ranking})
			assert.InDelta(t, tc.score, got.Score, 1e-9)
			assert.Equal(t, 4.0, got.MaxScore)
			assert.Nil(t, got.IsCorrect, "ranking is a graded spectrum, not binary")
			assert.Contains(t, got.Feedback, q.Rationale)
		})
	}
}

func TestScoreAnswer_SJTReversedBelowAnyPartialMatch(t *testing.T) {
	q := sjtQuestion("s1", 4)
	reversed := ScoreAnswer(q, Response{Ranking: []string{"ignore", "wait", "escalate", "discuss"}})
	partial := ScoreAnswer(q, Response{Ranking: []string{"discuss", "escalate", "ignore", "wait"}})
	assert.Less(t, reversed.Score, partial.Score)
}

func TestScoreAnswer_SJTScoreNeverExceedsMarks(t *testing.T) {
	q := sjtQuestion("s1", 4)
	got := ScoreAnswer(q, Response{Ranking: []string{"discuss", "escalate", "wait", "ignore", "discuss"}})
	assert.LessOrEqual(t, got.Score, q.Marks)
}

func TestScoreAnswer_FreeTextWordCountTiers(t *testing.T) {
	q := Question{ID: "f1", Type: QuestionFreeText, Marks: 10}

	tests := []struct {
		words int
		score float64
	}{
		{0, 0},
		{49, 0},
		{50, 1},
		{99, 1},
		{100, 2},
		{149, 2},
		{150, 3},
		{400, 3},
	}
	previous := -1.0
	for _, tc := range tests {
		response := strings.TrimSpace(strings.Repeat("word ", tc.words))
		got := ScoreAnswer(q, Response{Text: response})
		assert.InDelta(t, tc.score, got.Score, 1e-9, "word count %d", tc.words)
		assert.GreaterOrEqual(t, got.Score, previous, "score must not decrease as word count grows")
		assert.GreaterOrEqual(t, got.Score, 0.0)
		assert.LessOrEqual(t, got.Score, q.Marks)
		previous = got.Score
	}
}

func TestScoreAnswer_FreeTextBonusesAndCap(t *testing.T) {
	q := Question{ID: "f1", Type: QuestionFreeText, Marks: 10}

	structured := ScoreAnswer(q, Response{Text: "The Situation was a tight deadline."})
	assert.InDelta(t, 4.0, structured.Score, 1e-9, "STAR keyword bonus is 40% of marks")

	deep := ScoreAnswer(q, Response{Text: "We delivered the report on time."})
	assert.InDelta(t, 3.0, deep.Score, 1e-9, "action-verb bonus is 30% of marks")

	full := strings.Repeat("word ", 150) + "situation task action result led managed delivered"
	capped := ScoreAnswer(q, Response{Text: full})
	assert.Equal(t, 10.0, capped.Score, "total is capped at the question marks")

	assert.Contains(t, capped.Feedback, "manually graded by assessors")
	assert.Contains(t, structured.Feedback, "manually graded by assessors")
}

func TestScoreAnswer_TechnicalPendsManualReview(t *testing.T) {
	q := Question{ID: "t1", Type: QuestionTechnical, Marks: 5}
	got := ScoreAnswer(q, Response{Text: "SELECT * FROM users"})
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, 5.0, got.MaxScore)
	assert.Nil(t, got.IsCorrect)
	assert.Contains(t, got.Feedback, "pending manual review")
}

func TestScoreAnswer_UnknownTypeFailsSoft(t *testing.T) {
	q := Question{ID: "u1", Type: "ESSAY_V2", Marks: 5}
	got := ScoreAnswer(q, Response{Text: "anything"})
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, 5.0, got.MaxScore)
	assert.Equal(t, "Unknown question type", got.Feedback)
}
