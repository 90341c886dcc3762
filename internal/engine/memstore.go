package engine

import "sync"

// MemoryAttemptStore is a process-local AttemptStore. Attempts by different
// users are independent, so a single mutex around the map is all the
// coordination required. Copies cross the boundary in both directions so a
// caller can never mutate stored state without going through Put.
type MemoryAttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{attempts: make(map[string]*Attempt)}
}

func (s *MemoryAttemptStore) Get(id string) (*Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[id]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return cloneAttempt(attempt), nil
}

func (s *MemoryAttemptStore) Put(attempt *Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID] = cloneAttempt(attempt)
	return nil
}

func (s *MemoryAttemptStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, id)
	return nil
}

func cloneAttempt(a *Attempt) *Attempt {
	clone := *a
	clone.QuestionOrder = append([]string(nil), a.QuestionOrder...)
	clone.BehaviourScores = append([]BehaviourScore(nil), a.BehaviourScores...)
	if a.Answers != nil {
		clone.Answers = make(map[string]Answer, len(a.Answers))
		for k, v := range a.Answers {
			v.Response.Ranking = append([]string(nil), v.Response.Ranking...)
			clone.Answers[k] = v
		}
	}
	if a.CompletedAt != nil {
		completed := *a.CompletedAt
		clone.CompletedAt = &completed
	}
	return &clone
}
