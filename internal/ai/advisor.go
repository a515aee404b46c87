// Package ai defines the optional second-opinion advisory. The
// advisory never participates in scoring or gating: it produces a
// non-binding assessment that is logged next to the deterministic
// result, and the decide command works identically without it.
package ai

import (
	"context"

	"github.com/jobsieve/jobsieve/internal/jobs"
)

// FitAssessment is the advisory verdict for one posting.
type FitAssessment struct {
	Fit    bool
	Score  float64
	Reason string
	Raw    string
}

// Advisor gives a second opinion on a posting for a candidate.
type Advisor interface {
	Evaluate(ctx context.Context, profile *jobs.CandidateProfile, posting *jobs.JobPosting) (*FitAssessment, error)
}
