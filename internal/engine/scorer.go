package engine

import (
	"fmt"
	"strings"
)

// ScoreResult is the outcome of scoring one response against one question.
type ScoreResult struct {
	Score     float64
	MaxScore  float64
	IsCorrect *bool
	Feedback  string
}

// Word-count tiers and bonus fractions for the free-text rubric. The rubric
// is a fixed heuristic stand-in for manual grading, not a real marker.
const (
	freeTextFullWords   = 150
	freeTextMediumWords = 100
	freeTextShortWords  = 50
)

var starKeywords = []string{"situation", "task", "action", "result"}

var depthKeywords = []string{"led", "managed", "implemented", "achieved", "improved", "delivered"}

// ScoreAnswer scores a single response against a single question, dispatching
// on the question type. Callers must supply a response whose shape matches
// the type (Text vs Ranking); only a fully unknown type is guarded, and it
// fails soft with a zero score rather than an error.
func ScoreAnswer(q Question, resp Response) ScoreResult {
	switch q.Type {
	case QuestionMCQ, QuestionNumerical:
		return scoreExactMatch(q, resp.Text)
	case QuestionSJT:
		return scoreRanking(q, resp.Ranking)
	case QuestionFreeText:
		return scoreFreeText(q, resp.Text)
	case QuestionTechnical:
		return ScoreResult{
			Score:    0,
			MaxScore: q.Marks,
			Feedback: "This answer is pending manual review by an assessor.",
		}
	default:
		return ScoreResult{
			Score:    0,
			MaxScore: q.Marks,
			Feedback: "Unknown question type",
		}
	}
}

// scoreExactMatch covers MCQ and NUMERICAL questions. Comparison is exact
// string equality, including for numbers ("10" and "10.0" differ).
func scoreExactMatch(q Question, response string) ScoreResult {
	isCorrect := response == q.CorrectAnswer
	score := 0.0
	feedback := fmt.Sprintf("Incorrect. %s", q.Rationale)
	if isCorrect {
		score = q.Marks
		feedback = fmt.Sprintf("Correct! %s", q.Rationale)
	}
	return ScoreResult{Score: score, MaxScore: q.Marks, IsCorrect: &isCorrect, Feedback: feedback}
}

// scoreRanking awards partial credit by positional closeness to the ideal
// order: a full point for the exact position, half a point for one position
// off, nothing otherwise. The sum is normalized to the question's marks.
// Ranking is a graded spectrum, so there is no IsCorrect.
func scoreRanking(q Question, ranking []string) ScoreResult {
	correctOrder := q.CorrectOrder
	if len(correctOrder) == 0 {
		return ScoreResult{MaxScore: q.Marks, Feedback: q.Rationale}
	}

	raw := 0.0
	for i, value := range ranking {
		// indexOf returns -1 for values outside the ideal order; the position
		// difference is computed against it unchanged to keep scores
		// compatible with the existing curve.
		correctPosition := indexOf(correctOrder, value)
		switch diff := abs(i - correctPosition); diff {
		case 0:
			raw += 1.0
		case 1:
			raw += 0.5
		}
	}

	normalized := (raw / float64(len(correctOrder))) * q.Marks
	if normalized > q.Marks {
		normalized = q.Marks
	}

	percentage := 0.0
	if q.Marks > 0 {
		percentage = (normalized / q.Marks) * 100
	}
	feedback := fmt.Sprintf("You scored %.1f/%g (%.0f%%). %s", normalized, q.Marks, percentage, q.Rationale)
	return ScoreResult{Score: normalized, MaxScore: q.Marks, Feedback: feedback}
}

// scoreFreeText applies the fixed heuristic rubric: word-count tiers, a STAR
// structure bonus, and an action-verb depth bonus, capped at the question's
// marks. Real assessments grade these manually; the feedback says so.
func scoreFreeText(q Question, response string) ScoreResult {
	words := strings.Fields(response)
	wordCount := len(words)
	lowered := strings.ToLower(response)

	score := 0.0
	switch {
	case wordCount >= freeTextFullWords:
		score += q.Marks * 0.3
	case wordCount >= freeTextMediumWords:
		score += q.Marks * 0.2
	case wordCount >= freeTextShortWords:
		score += q.Marks * 0.1
	}

	hasStructure := containsAny(lowered, starKeywords)
	if hasStructure {
		score += q.Marks * 0.4
	}
	if containsAny(lowered, depthKeywords) {
		score += q.Marks * 0.3
	}
	if score > q.Marks {
		score = q.Marks
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Estimated score: %.1f/%g. ", score, q.Marks)
	if wordCount < freeTextFullWords {
		sb.WriteString("Consider providing more detail. ")
	}
	if !hasStructure {
		sb.WriteString("Structure your answer using STAR method (Situation, Task, Action, Result). ")
	}
	sb.WriteString("In a real assessment, this would be manually graded by assessors.")

	return ScoreResult{Score: score, MaxScore: q.Marks, Feedback: sb.String()}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
