package engine

import "fmt"

// Level thresholds for converting fractional behaviour performance into the
// discrete 0-4 competency scale. Lower bounds are inclusive.
const (
	levelExemplary    = 90.0 // level 4
	levelStrong       = 75.0 // level 3
	levelCompetent    = 60.0 // level 2
	levelDeveloping   = 40.0 // level 1
	recommendationBar = 3    // below this, remedial recommendations apply
)

type behaviourBucket struct {
	total float64
	max   float64
	count int
}

// AggregateBehaviours groups per-question scores by the behaviours each
// question targets and converts the fractional performance of every bucket
// into a BehaviourScore. Only behaviours referenced by at least one answered
// question appear in the output; answers whose question cannot be resolved
// through the catalog are skipped. Output order follows the order behaviours
// are first encountered across the answer list.
func AggregateBehaviours(answers []Answer, catalog Catalog) []BehaviourScore {
	buckets := make(map[string]*behaviourBucket)
	var order []string

	for _, answer := range answers {
		question, ok := catalog.QuestionByID(answer.QuestionID)
		if !ok {
			continue
		}
		for _, behaviourID := range question.BehaviourIDs {
			bucket, exists := buckets[behaviourID]
			if !exists {
				bucket = &behaviourBucket{}
				buckets[behaviourID] = bucket
				order = append(order, behaviourID)
			}
			bucket.total += answer.Score
			bucket.max += answer.MaxScore
			bucket.count++
		}
	}

	scores := make([]BehaviourScore, 0, len(order))
	for _, behaviourID := range order {
		bucket := buckets[behaviourID]
		percentage := 0.0
		if bucket.max > 0 {
			percentage = (bucket.total / bucket.max) * 100
		}
		level := LevelForPercentage(percentage)

		name := behaviourID
		if behaviour, ok := catalog.BehaviourByID(behaviourID); ok {
			name = behaviour.Name
		}

		scores = append(scores, BehaviourScore{
			BehaviourID:     behaviourID,
			BehaviourName:   name,
			Level:           level,
			Recommendations: recommendationsFor(level, name),
		})
	}
	return scores
}

// LevelForPercentage maps a percentage onto the 0-4 competency scale.
func LevelForPercentage(percentage float64) int {
	switch {
	case percentage >= levelExemplary:
		return 4
	case percentage >= levelStrong:
		return 3
	case percentage >= levelCompetent:
		return 2
	case percentage >= levelDeveloping:
		return 1
	default:
		return 0
	}
}

// recommendationsFor derives remediation text from the level alone, so the
// output is deterministic across scoring passes.
func recommendationsFor(level int, behaviourName string) []string {
	if level < recommendationBar {
		return []string{
			fmt.Sprintf("Review %s success criteria and examples", behaviourName),
			fmt.Sprintf("Practice more questions targeting %s", behaviourName),
		}
	}
	return []string{
		fmt.Sprintf("Strong performance in %s - maintain this standard", behaviourName),
	}
}
