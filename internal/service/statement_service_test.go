package service

import (
	"strings"
	"testing"

	"github.com/lambourne/crownprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionText(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}

func TestStatementFeedbackAllSectionsDeveloped(t *testing.T) {
	draft := model.StatementDraft{
		Situation: sectionText(30),
		Task:      sectionText(25),
		Action:    "I led the rollout and implemented the new triage process across both teams over six weeks working closely with operational staff",
		Result:    sectionText(40),
		MaxWords:  250,
	}

	feedback := statementFeedback(draft)

	assert.Equal(t, 4, feedback.OverallScore)
	assert.Empty(t, feedback.Suggestions)
	require.NotEmpty(t, feedback.Strengths)
	assert.Contains(t, feedback.Strengths[0], "well developed")
}

func TestStatementFeedbackFlagsThinAndEmptySections(t *testing.T) {
	draft := model.StatementDraft{
		Situation: sectionText(5),
		Task:      "",
		Action:    sectionText(30),
		Result:    sectionText(30),
		MaxWords:  250,
	}

	feedback := statementFeedback(draft)

	assert.Equal(t, 2, feedback.OverallScore)
	require.Len(t, feedback.Suggestions, 2)
	assert.Equal(t, "situation", feedback.Suggestions[0].Section)
	assert.Contains(t, feedback.Suggestions[0].Comment, "thin")
	assert.Equal(t, "task", feedback.Suggestions[1].Section)
	assert.Contains(t, feedback.Suggestions[1].Comment, "empty")
}

func TestStatementFeedbackOverBudgetCostsAPoint(t *testing.T) {
	draft := model.StatementDraft{
		Situation: sectionText(80),
		Task:      sectionText(80),
		Action:    sectionText(80),
		Result:    sectionText(80),
		MaxWords:  250,
	}

	feedback := statementFeedback(draft)

	assert.Equal(t, 3, feedback.OverallScore)
	found := false
	for _, improvement := range feedback.Improvements {
		if strings.Contains(improvement, "over the 250-word limit") {
			found = true
		}
	}
	assert.True(t, found, "expected an over-budget improvement note")
}

func TestStatementFeedbackSuggestsOwnershipVerbs(t *testing.T) {
	draft := model.StatementDraft{
		Situation: sectionText(25),
		Task:      sectionText(25),
		Action:    sectionText(25),
		Result:    sectionText(25),
		MaxWords:  250,
	}

	feedback := statementFeedback(draft)

	require.NotEmpty(t, feedback.Improvements)
	assert.Contains(t, feedback.Improvements[0], "ownership verbs")
}

func TestStatementFeedbackEmptyDraftScoresZero(t *testing.T) {
	feedback := statementFeedback(model.StatementDraft{MaxWords: 250})

	assert.Equal(t, 0, feedback.OverallScore)
	assert.Len(t, feedback.Suggestions, 4)
	assert.Empty(t, feedback.Strengths)
}

func TestStatementWordCountSumsSections(t *testing.T) {
	draft := model.StatementDraft{
		Situation: "one two three",
		Task:      "four five",
		Action:    "",
		Result:    "six",
	}
	assert.Equal(t, 6, statementWordCount(draft))
}
