package filtering

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/jobsieve/jobsieve/internal/jobs"
)

func testProfile() *jobs.CandidateProfile {
	return &jobs.CandidateProfile{
		Skills: []jobs.SkillRating{{Name: "Go", Proficiency: 4, Years: 5}},
		Preferences: jobs.Preferences{
			MinSalary:        70000,
			RemoteOnly:       true,
			MinSeniority:     jobs.SenioritySenior,
			ExcludeCompanies: []string{"Acme"},
		},
	}
}

func testPostings() *jobs.Postings {
	return &jobs.Postings{Items: []*jobs.JobPosting{
		{ID: "good", Company: "Globex", Seniority: jobs.SenioritySenior, Remote: jobs.RemoteFully, SalaryMax: 90000},
		{ID: "excluded-company", Company: "ACME", Seniority: jobs.SenioritySenior, Remote: jobs.RemoteFully, SalaryMax: 90000},
		{ID: "too-junior", Company: "Globex", Seniority: jobs.SeniorityJunior, Remote: jobs.RemoteFully, SalaryMax: 90000},
		{ID: "office-bound", Company: "Globex", Seniority: jobs.SenioritySenior, Remote: jobs.RemoteOnSite, SalaryMax: 90000},
		{ID: "underpaid", Company: "Globex", Seniority: jobs.SenioritySenior, Remote: jobs.RemoteFully, SalaryMax: 50000},
		{ID: "all-unknown", Company: "Globex"},
		{ID: "not-eligible", Company: "Globex", Engagement: jobs.EngagementEmployment, Remote: jobs.RemoteFully, Seniority: jobs.SenioritySenior, SalaryMax: 90000},
	}}
}

func runSteps(t *testing.T, steps []Filter, postings *jobs.Postings) *jobs.Postings {
	t.Helper()
	filtered, err := New(steps, zap.NewNop()).Run(context.Background(), postings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return filtered
}

func assertIDs(t *testing.T, got *jobs.Postings, want ...string) {
	t.Helper()
	ids := got.IDs()
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	filtered := runSteps(t, DefaultSteps(profile), testPostings())

	// Each rule removes exactly its target; the unknown-everything
	// posting survives on benefit of the doubt.
	assertIDs(t, filtered, "good", "all-unknown")
}

func TestFiltersAreOrderInsensitive(t *testing.T) {
	t.Parallel()

	profile := testProfile()

	forward := runSteps(t, DefaultSteps(profile), testPostings())

	reversed := []Filter{
		NewSalaryFloor(profile),
		NewRemoteOnly(profile),
		NewMinSeniority(profile),
		NewExcludedCompanies(profile),
		NewEligibility(),
	}
	backward := runSteps(t, reversed, testPostings())

	assertIDs(t, backward, forward.IDs()...)
}

func TestExcludedCompaniesMatchesCaseInsensitively(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	step := NewExcludedCompanies(profile)

	kept, info, err := step.Apply(context.Background(), &jobs.Postings{Items: []*jobs.JobPosting{
		{ID: "1", Company: "acme"},
		{ID: "2", Company: "Globex"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertIDs(t, kept, "2")
	if info.Dropped != 1 || info.DroppedIDs[0] != "1" {
		t.Fatalf("expected posting 1 to be reported dropped, got %+v", info)
	}
}

func TestExcludedCompaniesDisabledWithoutList(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	profile.Preferences.ExcludeCompanies = nil

	if NewExcludedCompanies(profile).IsEnabled() {
		t.Fatalf("expected the filter to be disabled without a list")
	}
}

func TestMinSeniorityUnknownPasses(t *testing.T) {
	t.Parallel()

	step := NewMinSeniority(testProfile())

	kept, _, err := step.Apply(context.Background(), &jobs.Postings{Items: []*jobs.JobPosting{
		{ID: "unknown"},
		{ID: "junior", Seniority: jobs.SeniorityJunior},
		{ID: "lead", Seniority: jobs.SeniorityLead},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertIDs(t, kept, "unknown", "lead")
}

func TestMinSeniorityDisabledWhenUnset(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	profile.Preferences.MinSeniority = jobs.SeniorityUnknown

	if NewMinSeniority(profile).IsEnabled() {
		t.Fatalf("expected the filter to be disabled without a minimum")
	}
}

func TestRemoteOnlyFilter(t *testing.T) {
	t.Parallel()

	step := NewRemoteOnly(testProfile())

	kept, _, err := step.Apply(context.Background(), &jobs.Postings{Items: []*jobs.JobPosting{
		{ID: "fully", Remote: jobs.RemoteFully},
		{ID: "friendly", Remote: jobs.RemoteFriendly},
		{ID: "unknown"},
		{ID: "hybrid", Remote: jobs.RemoteHybrid},
		{ID: "office", Remote: jobs.RemoteOnSite},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertIDs(t, kept, "fully", "friendly", "unknown")
}

func TestRemoteOnlyDisabledForFlexibleCandidate(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	profile.Preferences.RemoteOnly = false

	step := NewRemoteOnly(profile)
	if step.IsEnabled() {
		t.Fatalf("expected the filter to be disabled for a flexible candidate")
	}

	status := Describe([]Filter{step})[0]
	if status.Reason == "" {
		t.Fatalf("expected a disable reason in the status")
	}
}

func TestSalaryFloorPassesUndisclosed(t *testing.T) {
	t.Parallel()

	step := NewSalaryFloor(testProfile())

	kept, _, err := step.Apply(context.Background(), &jobs.Postings{Items: []*jobs.JobPosting{
		{ID: "undisclosed"},
		{ID: "below", SalaryMin: 30000, SalaryMax: 50000},
		{ID: "above", SalaryMax: 80000},
		{ID: "min-only", SalaryMin: 75000},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertIDs(t, kept, "undisclosed", "above", "min-only")
}

func TestSalaryFloorDisabledWithoutFloor(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	profile.Preferences.MinSalary = 0

	if NewSalaryFloor(profile).IsEnabled() {
		t.Fatalf("expected the filter to be disabled without a floor")
	}
}

func TestRunRequiresPostings(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, zap.NewNop()).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for nil postings")
	}
}
