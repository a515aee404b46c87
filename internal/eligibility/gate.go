// Package eligibility implements the categorical pass/fail gate that
// runs before any preference-based filtering. The gate knows nothing
// about the candidate: it only rejects postings that are structurally
// not actionable (wrong engagement form, office-bound, geo-fenced).
//
// Missing data always passes. Ingestion frequently cannot determine
// these fields and dropping on uncertainty would silently discard too
// much signal.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/jobsieve/jobsieve/internal/jobs"
)

// exclusionaryGeoTags are restriction tags that make a posting
// unactionable regardless of everything else. Matched case-insensitively.
var exclusionaryGeoTags = map[string]struct{}{
	"uk-only":                     {},
	"us-based":                    {},
	"work-auth-required":          {},
	"no-visa-sponsorship":         {},
	"security-clearance-required": {},
}

// RuleResult records a single rule outcome for auditing.
type RuleResult struct {
	Name   string
	Passed bool
	Reason string
}

// Report is the audit form of the gate: same rules, per-rule outcomes.
type Report struct {
	IsEligible bool
	Summary    string
	Rules      []RuleResult
}

type rule struct {
	name  string
	check func(*jobs.JobPosting) (bool, string)
}

// The boolean gate and Assess share this table so the two can never
// disagree.
var rules = []rule{
	{name: "Engagement Type", check: checkEngagement},
	{name: "Remote Policy", check: checkRemotePolicy},
	{name: "Geo Restrictions", check: checkGeoRestrictions},
}

// IsEligible reports whether the posting survives all categorical
// rules. Pure and total for any non-nil posting; unknown fields pass.
// A nil posting is a programmer error, not missing domain data.
func IsEligible(posting *jobs.JobPosting) bool {
	if posting == nil {
		panic("eligibility: nil posting")
	}
	for _, r := range rules {
		if passed, _ := r.check(posting); !passed {
			return false
		}
	}
	return true
}

// Assess runs the same rules as IsEligible but returns a per-rule
// record with a human-readable reason. It exists for audit and
// debugging; filtering decisions always go through IsEligible.
func Assess(posting *jobs.JobPosting) (*Report, error) {
	if posting == nil {
		return nil, fmt.Errorf("posting is required")
	}

	report := &Report{IsEligible: true}
	failed := make([]string, 0, len(rules))

	for _, r := range rules {
		passed, reason := r.check(posting)
		report.Rules = append(report.Rules, RuleResult{
			Name:   r.name,
			Passed: passed,
			Reason: reason,
		})
		if !passed {
			report.IsEligible = false
			failed = append(failed, r.name)
		}
	}

	if report.IsEligible {
		report.Summary = "eligible: all rules passed"
	} else {
		report.Summary = fmt.Sprintf("not eligible: failed %s", strings.Join(failed, ", "))
	}

	return report, nil
}

// Filter returns the postings that pass IsEligible, preserving order.
// This is the single bulk-filter entry point.
func Filter(postings *jobs.Postings) *jobs.Postings {
	return postings.Keep(IsEligible)
}

func checkEngagement(p *jobs.JobPosting) (bool, string) {
	switch p.Engagement {
	case jobs.EngagementEmployment, jobs.EngagementInsideIR35:
		return false, fmt.Sprintf("engagement type %q is not available to the candidate", p.Engagement)
	default:
		return true, fmt.Sprintf("engagement type %q is acceptable", p.Engagement)
	}
}

func checkRemotePolicy(p *jobs.JobPosting) (bool, string) {
	switch p.Remote {
	case jobs.RemoteOnSite, jobs.RemoteHybrid:
		return false, fmt.Sprintf("remote policy %q requires office presence", p.Remote)
	default:
		return true, fmt.Sprintf("remote policy %q is acceptable", p.Remote)
	}
}

func checkGeoRestrictions(p *jobs.JobPosting) (bool, string) {
	for _, tag := range p.GeoRestrictions {
		if _, hit := exclusionaryGeoTags[strings.ToLower(strings.TrimSpace(tag))]; hit {
			return false, fmt.Sprintf("geo restriction %q excludes the candidate", tag)
		}
	}
	return true, "no exclusionary geo restrictions"
}
