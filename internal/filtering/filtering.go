// Package filtering narrows a posting list down to the ones worth
// scoring. The first step is the categorical eligibility gate; the
// rest apply candidate preferences. Every step only removes postings
// and never reorders them, so the surviving set does not depend on
// step order.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobsieve/jobsieve/internal/jobs"
)

// Filter is a single removal-only filtering step.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, p *jobs.Postings) (*jobs.Postings, Step, error)
}

// Step describes the result of executing one filtering step.
type Step struct {
	Initial    int
	Dropped    int
	Left       int
	DroppedIDs []string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Filtering runs an ordered list of steps over one posting set.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// DefaultSteps builds the standard pipeline for the profile:
// the eligibility gate first, then the preference filters.
func DefaultSteps(profile *jobs.CandidateProfile) []Filter {
	return []Filter{
		NewEligibility(),
		NewExcludedCompanies(profile),
		NewMinSeniority(profile),
		NewRemoteOnly(profile),
		NewSalaryFloor(profile),
	}
}

// Run executes the enabled steps sequentially, logging which step
// removed which postings.
func (f *Filtering) Run(ctx context.Context, postings *jobs.Postings) (*jobs.Postings, error) {
	if postings == nil {
		return nil, fmt.Errorf("postings are required")
	}

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, postings)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		if len(info.DroppedIDs) > 0 {
			f.logger.Info("excluded postings",
				zap.String("name", step.Name()),
				zap.Strings("posting_ids", info.DroppedIDs),
			)
		}

		postings = next
	}

	return postings, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
