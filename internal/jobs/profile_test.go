package jobs

import (
	"testing"
)

func TestDecodeProfile(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"skills": []map[string]any{
			{"name": "Go", "proficiency": 5, "years": 6},
			{"name": "SQL", "proficiency": 3, "years": 4.5},
		},
		"preferences": map[string]any{
			"min_salary":        70000,
			"target_salary":     90000,
			"remote_only":       true,
			"min_seniority":     "senior",
			"exclude_companies": []string{"Acme"},
		},
	}

	profile, err := DecodeProfile(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profile.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(profile.Skills))
	}
	if profile.Preferences.MinSeniority != SenioritySenior {
		t.Fatalf("expected the seniority string to decode, got %v", profile.Preferences.MinSeniority)
	}
	if !profile.Preferences.RemoteOnly {
		t.Fatalf("expected remote_only to be set")
	}
}

func TestDecodeProfileRejectsBadProficiency(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"skills": []map[string]any{
			{"name": "Go", "proficiency": 9, "years": 6},
		},
	}

	if _, err := DecodeProfile(raw); err == nil {
		t.Fatalf("expected a validation error for proficiency above 5")
	}
}

func TestHasSkill(t *testing.T) {
	t.Parallel()

	profile := &CandidateProfile{Skills: []SkillRating{
		{Name: "Go", Proficiency: 5, Years: 6},
		{Name: "ASP.NET", Proficiency: 4, Years: 3},
	}}

	if !profile.HasSkill("go") {
		t.Fatalf("skill lookup must be case-insensitive")
	}
	if !profile.HasSkill(" asp.net ") {
		t.Fatalf("skill lookup must trim whitespace")
	}
	if profile.HasSkill("Rust") {
		t.Fatalf("unexpected skill hit")
	}
}

func TestExcludesCompany(t *testing.T) {
	t.Parallel()

	profile := &CandidateProfile{Preferences: Preferences{
		ExcludeCompanies: []string{"Acme", "Hooli"},
	}}

	if !profile.ExcludesCompany("ACME") {
		t.Fatalf("company exclusion must be case-insensitive")
	}
	if profile.ExcludesCompany("Globex") {
		t.Fatalf("unexpected exclusion")
	}
}
