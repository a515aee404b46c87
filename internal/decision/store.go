package decision

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store holds the decision map behind a mutex and writes every change
// through to its storage backend. A load failure degrades to an empty
// store: the gates then correctly answer "run decide first" instead of
// failing. A save failure is logged and returned, but the in-memory
// state stays authoritative for the rest of the process.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	logger    *zap.Logger
	decisions map[string]Decision
	loaded    bool
}

func NewStore(storage Storage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{storage: storage, logger: logger}
}

// ensureLoaded lazily pulls the persisted snapshot. Callers must hold mu.
func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	decisions, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("loading decisions failed, starting with an empty store", zap.Error(err))
		s.decisions = map[string]Decision{}
		return
	}
	s.decisions = decisions
}

// Get returns the stored decision for the posting, if any.
func (s *Store) Get(id string) (Decision, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	d, ok := s.decisions[id]
	return d, ok
}

// Set upserts the decision and persists the full snapshot immediately.
// Last write wins.
func (s *Store) Set(id string, d Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	s.decisions[id] = d

	if err := s.storage.Save(s.decisions); err != nil {
		s.logger.Warn("persisting decisions failed, the verdict is held in memory only",
			zap.String("posting_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("save decisions: %w", err)
	}
	return nil
}

// All returns a point-in-time copy of every stored decision.
func (s *Store) All() map[string]Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	copied := make(map[string]Decision, len(s.decisions))
	for id, d := range s.decisions {
		copied[id] = d
	}
	return copied
}

// Clear empties the store and persists the empty snapshot.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.decisions = map[string]Decision{}

	if err := s.storage.Save(s.decisions); err != nil {
		s.logger.Warn("persisting cleared decisions failed", zap.Error(err))
		return fmt.Errorf("save decisions: %w", err)
	}
	return nil
}

// CanApply reports whether an apply side effect may run for the
// posting. The reason is written for the candidate, not for a log.
func (s *Store) CanApply(id string) (bool, string) {
	d, ok := s.Get(id)
	if !ok {
		return false, fmt.Sprintf("no decision recorded for %q: run decide first", id)
	}

	switch d.Verdict {
	case VerdictApplyNow:
		return true, fmt.Sprintf("verdict is %s with readiness %.0f: go ahead", d.Verdict, d.ReadinessScore)
	case VerdictLearnThenApply:
		return false, fmt.Sprintf("verdict is %s: close the skill gaps first, about %dh of learning estimated",
			d.Verdict, d.EstimatedLearningHours)
	default:
		return false, fmt.Sprintf("verdict is %s: this posting should not be worked on", d.Verdict)
	}
}

// CanLearn reports whether scheduling learning time for the posting
// makes sense.
func (s *Store) CanLearn(id string) (bool, string) {
	d, ok := s.Get(id)
	if !ok {
		return false, fmt.Sprintf("no decision recorded for %q: run decide first", id)
	}

	switch d.Verdict {
	case VerdictLearnThenApply:
		return true, fmt.Sprintf("verdict is %s: invest about %dh before applying",
			d.Verdict, d.EstimatedLearningHours)
	case VerdictApplyNow:
		return false, fmt.Sprintf("verdict is %s with readiness %.0f: apply now instead of over-preparing",
			d.Verdict, d.ReadinessScore)
	default:
		return false, fmt.Sprintf("verdict is %s: do not spend learning time on this posting", d.Verdict)
	}
}
