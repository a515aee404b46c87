// Package decision persists one verdict per posting and gates the
// apply/learn workflows on it. The store is the single authority for
// whether downstream side effects may run: no command applies or
// schedules learning without passing CanApply/CanLearn first.
package decision

import (
	"time"

	"github.com/jobsieve/jobsieve/internal/scoring"
)

// Verdict is the persisted form of a decision outcome.
type Verdict string

const (
	VerdictApplyNow       Verdict = "APPLY_NOW"
	VerdictLearnThenApply Verdict = "LEARN_THEN_APPLY"
	VerdictSkip           Verdict = "SKIP"
)

// Decision is the stored verdict for one posting. Last write wins.
type Decision struct {
	Verdict                Verdict   `json:"verdict"`
	ReadinessScore         float64   `json:"readiness_score"`
	EstimatedLearningHours int       `json:"estimated_learning_hours"`
	CreatedAt              time.Time `json:"created_at"`
}

// Focused learning hours assumed per estimated week of preparation.
const hoursPerWeek = 8

// FromScore maps a match score to a decision. Both preparation-flavored
// actions become LEARN_THEN_APPLY; only the hour estimate differs, via
// the weeks-to-ready figure carried by the score.
func FromScore(score *scoring.MatchScore) Decision {
	d := Decision{
		ReadinessScore: score.OverallScore,
		CreatedAt:      time.Now().UTC(),
	}

	switch score.RecommendedAction {
	case scoring.ActionApply:
		d.Verdict = VerdictApplyNow
	case scoring.ActionPrepareAndApply, scoring.ActionSkillUpFirst:
		d.Verdict = VerdictLearnThenApply
		d.EstimatedLearningHours = score.EstimatedWeeksToReady * hoursPerWeek
	default:
		d.Verdict = VerdictSkip
	}

	return d
}
