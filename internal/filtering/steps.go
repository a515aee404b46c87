package filtering

import (
	"context"
	"strconv"
	"strings"

	"github.com/jobsieve/jobsieve/internal/eligibility"
	"github.com/jobsieve/jobsieve/internal/jobs"
)

// keep filters the postings with the predicate and reports the step
// outcome. All steps funnel through it so order preservation and drop
// accounting live in one place.
func keep(p *jobs.Postings, pred func(*jobs.JobPosting) bool) (*jobs.Postings, Step) {
	initial := p.Len()
	var dropped []string

	kept := p.Keep(func(posting *jobs.JobPosting) bool {
		if pred(posting) {
			return true
		}
		dropped = append(dropped, posting.ID)
		return false
	})

	return kept, Step{
		Initial:    initial,
		Dropped:    len(dropped),
		Left:       kept.Len(),
		DroppedIDs: dropped,
	}
}

type eligibilityFilter struct{}

// NewEligibility wraps the categorical gate as the first pipeline step.
func NewEligibility() Filter {
	return &eligibilityFilter{}
}

func (f *eligibilityFilter) Name() string { return "eligibility" }

func (f *eligibilityFilter) Disable(string) {}

func (f *eligibilityFilter) IsEnabled() bool { return true }

func (f *eligibilityFilter) Apply(_ context.Context, p *jobs.Postings) (*jobs.Postings, Step, error) {
	kept, step := keep(p, eligibility.IsEligible)
	return kept, step, nil
}

type excludedCompaniesFilter struct {
	profile *jobs.CandidateProfile
}

// NewExcludedCompanies creates a filter that removes postings from
// companies on the candidate's exclusion list.
func NewExcludedCompanies(profile *jobs.CandidateProfile) Filter {
	return &excludedCompaniesFilter{profile: profile}
}

func (f *excludedCompaniesFilter) Name() string { return "excluded_companies" }

func (f *excludedCompaniesFilter) Disable(string) {}

func (f *excludedCompaniesFilter) IsEnabled() bool {
	return len(f.profile.Preferences.ExcludeCompanies) > 0
}

func (f *excludedCompaniesFilter) Apply(_ context.Context, p *jobs.Postings) (*jobs.Postings, Step, error) {
	kept, step := keep(p, func(posting *jobs.JobPosting) bool {
		return !f.profile.ExcludesCompany(posting.Company)
	})
	return kept, step, nil
}

func (f *excludedCompaniesFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Details: map[string]string{
			"companies": strings.Join(f.profile.Preferences.ExcludeCompanies, ","),
		},
	}
}

type minSeniorityFilter struct {
	profile *jobs.CandidateProfile
}

// NewMinSeniority creates a filter that removes postings below the
// candidate's minimum seniority. Unknown on either side passes.
func NewMinSeniority(profile *jobs.CandidateProfile) Filter {
	return &minSeniorityFilter{profile: profile}
}

func (f *minSeniorityFilter) Name() string { return "min_seniority" }

func (f *minSeniorityFilter) Disable(string) {}

func (f *minSeniorityFilter) IsEnabled() bool {
	return f.profile.Preferences.MinSeniority.Known()
}

func (f *minSeniorityFilter) Apply(_ context.Context, p *jobs.Postings) (*jobs.Postings, Step, error) {
	floor := f.profile.Preferences.MinSeniority
	kept, step := keep(p, func(posting *jobs.JobPosting) bool {
		if !posting.Seniority.Known() {
			return true
		}
		return posting.Seniority >= floor
	})
	return kept, step, nil
}

func (f *minSeniorityFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Details: map[string]string{"min_seniority": f.profile.Preferences.MinSeniority.String()},
	}
}

type remoteOnlyFilter struct {
	profile  *jobs.CandidateProfile
	disabled bool
	reason   string
}

// NewRemoteOnly creates a filter that removes office-bound postings.
// It only runs when the candidate requires remote work; an unknown
// policy passes either way.
func NewRemoteOnly(profile *jobs.CandidateProfile) Filter {
	f := &remoteOnlyFilter{profile: profile}
	if !profile.Preferences.RemoteOnly {
		f.Disable("candidate does not require remote work")
	}
	return f
}

func (f *remoteOnlyFilter) Name() string { return "remote_only" }

func (f *remoteOnlyFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *remoteOnlyFilter) IsEnabled() bool { return !f.disabled }

func (f *remoteOnlyFilter) Apply(_ context.Context, p *jobs.Postings) (*jobs.Postings, Step, error) {
	kept, step := keep(p, func(posting *jobs.JobPosting) bool {
		switch posting.Remote {
		case jobs.RemoteFully, jobs.RemoteFriendly, jobs.RemoteUnknown:
			return true
		default:
			return false
		}
	})
	return kept, step, nil
}

func (f *remoteOnlyFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type salaryFloorFilter struct {
	profile *jobs.CandidateProfile
}

// NewSalaryFloor creates a filter that removes postings whose best
// disclosed figure is below the candidate's floor. Postings without
// salary data pass.
func NewSalaryFloor(profile *jobs.CandidateProfile) Filter {
	return &salaryFloorFilter{profile: profile}
}

func (f *salaryFloorFilter) Name() string { return "salary_floor" }

func (f *salaryFloorFilter) Disable(string) {}

func (f *salaryFloorFilter) IsEnabled() bool {
	return f.profile.Preferences.MinSalary > 0
}

func (f *salaryFloorFilter) Apply(_ context.Context, p *jobs.Postings) (*jobs.Postings, Step, error) {
	floor := f.profile.Preferences.MinSalary
	kept, step := keep(p, func(posting *jobs.JobPosting) bool {
		if !posting.HasSalary() {
			return true
		}
		return posting.OfferedSalary() >= floor
	})
	return kept, step, nil
}

func (f *salaryFloorFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Details: map[string]string{"min_salary": strconv.Itoa(f.profile.Preferences.MinSalary)},
	}
}
