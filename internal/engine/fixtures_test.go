package engine

// fixtureCatalog is a map-backed Catalog for tests.
type fixtureCatalog struct {
	questions  map[string]Question
	behaviours map[string]Behaviour
	tests      map[string]Test
}

func newFixtureCatalog(questions []Question, behaviours []Behaviour) *fixtureCatalog {
	c := &fixtureCatalog{
		questions:  make(map[string]Question),
		behaviours: make(map[string]Behaviour),
		tests:      make(map[string]Test),
	}
	for _, q := range questions {
		c.questions[q.ID] = q
	}
	for _, b := range behaviours {
		c.behaviours[b.ID] = b
	}
	return c
}

func (c *fixtureCatalog) QuestionByID(id string) (Question, bool) {
	q, ok := c.questions[id]
	return q, ok
}

func (c *fixtureCatalog) BehaviourByID(id string) (Behaviour, bool) {
	b, ok := c.behaviours[id]
	return b, ok
}

func (c *fixtureCatalog) TestByID(id string) (Test, bool) {
	t, ok := c.tests[id]
	return t, ok
}

func mcqQuestion(id string, marks float64, behaviourIDs ...string) Question {
	return Question{
		ID:            id,
		Type:          QuestionMCQ,
		BehaviourIDs:  behaviourIDs,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "b",
		Marks:         marks,
		Rationale:     "Option b balances cost against delivery risk.",
	}
}

func sjtQuestion(id string, marks float64, behaviourIDs ...string) Question {
	return Question{
		ID:           id,
		Type:         QuestionSJT,
		BehaviourIDs: behaviourIDs,
		Options:      []string{"escalate", "discuss", "wait", "ignore"},
		CorrectOrder: []string{"discuss", "escalate", "wait", "ignore"},
		Marks:        marks,
		Rationale:    "Raising it with the colleague first respects the relationship.",
	}
}
