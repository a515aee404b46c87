package jobs

import (
	"encoding/json"
	"testing"
)

func TestParseSeniorityLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect SeniorityLevel
	}{
		{"senior", SenioritySenior},
		{"SENIOR", SenioritySenior},
		{" Lead ", SeniorityLead},
		{"principal", SeniorityPrincipal},
		{"", SeniorityUnknown},
		{"ninja", SeniorityUnknown},
	}

	for _, tt := range tests {
		if got := ParseSeniorityLevel(tt.input); got != tt.expect {
			t.Fatalf("ParseSeniorityLevel(%q) = %v, expected %v", tt.input, got, tt.expect)
		}
	}
}

func TestSeniorityOrdering(t *testing.T) {
	t.Parallel()

	ordered := []SeniorityLevel{
		SeniorityUnknown,
		SeniorityIntern,
		SeniorityJunior,
		SeniorityMiddle,
		SenioritySenior,
		SeniorityLead,
		SeniorityArchitect,
		SeniorityPrincipal,
	}

	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Fatalf("%s must sort below %s", ordered[i-1], ordered[i])
		}
	}
}

func TestParseEngagementAndRemoteVariants(t *testing.T) {
	t.Parallel()

	if got := ParseEngagementType("Inside IR35"); got != EngagementInsideIR35 {
		t.Fatalf("expected inside_ir35, got %v", got)
	}
	if got := ParseEngagementType("contract-b2b"); got != EngagementContractB2B {
		t.Fatalf("expected contract_b2b, got %v", got)
	}
	if got := ParseRemotePolicy("Fully Remote"); got != RemoteFully {
		t.Fatalf("expected fully_remote, got %v", got)
	}
	if got := ParseRemotePolicy(""); got != RemoteUnknown {
		t.Fatalf("expected unknown, got %v", got)
	}
}

func TestPostingJSONDecoding(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "hn-123",
		"title": "Go Developer",
		"company": "Globex",
		"required_skills": ["Go", "SQL"],
		"salary_max": 90000,
		"seniority": "senior",
		"remote_policy": "fully_remote",
		"engagement_type": "contract_b2b",
		"geo_restrictions": ["UK-only"]
	}`

	var posting JobPosting
	if err := json.Unmarshal([]byte(raw), &posting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if posting.Seniority != SenioritySenior {
		t.Fatalf("expected senior, got %v", posting.Seniority)
	}
	if posting.Remote != RemoteFully {
		t.Fatalf("expected fully_remote, got %v", posting.Remote)
	}
	if posting.Engagement != EngagementContractB2B {
		t.Fatalf("expected contract_b2b, got %v", posting.Engagement)
	}
	if posting.OfferedSalary() != 90000 {
		t.Fatalf("expected 90000, got %d", posting.OfferedSalary())
	}

	// Unrecognized enum strings degrade to unknown instead of failing.
	var odd JobPosting
	if err := json.Unmarshal([]byte(`{"id":"x","seniority":"rockstar"}`), &odd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if odd.Seniority != SeniorityUnknown {
		t.Fatalf("expected unknown, got %v", odd.Seniority)
	}
}
