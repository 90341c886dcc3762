package engine

// CalculateTestScore sums the supplied answers into totals, computes the
// pass/fail outcome against the test's passing threshold, and delegates to
// the behaviour aggregator for the competency breakdown. A test whose
// answers carry zero total marks is defined as 0% rather than a division
// error.
func CalculateTestScore(test Test, answers []Answer, catalog Catalog) TestScore {
	totalScore := 0.0
	maxScore := 0.0
	for _, answer := range answers {
		totalScore += answer.Score
		maxScore += answer.MaxScore
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = (totalScore / maxScore) * 100
	}

	return TestScore{
		TotalScore:      totalScore,
		MaxScore:        maxScore,
		Percentage:      percentage,
		Passed:          percentage >= test.PassingScore,
		BehaviourScores: AggregateBehaviours(answers, catalog),
	}
}
