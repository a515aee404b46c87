package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jobsieve/jobsieve/internal/jobs"
)

// Explanation is the human-readable companion of a MatchScore: one
// sentence per dimension, the strongest dimensions, and concrete risks.
type Explanation struct {
	Dimensions []string
	Strengths  []string
	Risks      []string
}

type dimension struct {
	name  string
	score float64
}

const strengthCutoff = 50.0

func explain(posting *jobs.JobPosting, profile *jobs.CandidateProfile, score *MatchScore) Explanation {
	var ex Explanation

	ex.Dimensions = []string{
		skillSentence(posting, score),
		senioritySentence(posting, profile, score),
		salarySentence(posting, profile, score),
		remoteSentence(posting, profile, score),
		growthSentence(posting, score),
	}
	ex.Strengths = strengths(score)
	ex.Risks = risks(posting, profile, score)

	return ex
}

func skillSentence(posting *jobs.JobPosting, score *MatchScore) string {
	return fmt.Sprintf("Covers %d of %d required and %d of %d preferred skills (skill score %.0f).",
		len(score.MatchingSkills), len(posting.RequiredSkills),
		len(score.BonusSkills), len(posting.PreferredSkills),
		score.SkillScore)
}

func senioritySentence(posting *jobs.JobPosting, profile *jobs.CandidateProfile, score *MatchScore) string {
	if !posting.Seniority.Known() || !profile.Preferences.MinSeniority.Known() {
		return fmt.Sprintf("Seniority is undetermined on one side, scored neutrally at %.0f.", score.SeniorityScore)
	}
	return fmt.Sprintf("Vacancy level %s against target %s scores %.0f.",
		posting.Seniority, profile.Preferences.MinSeniority, score.SeniorityScore)
}

func salarySentence(posting *jobs.JobPosting, profile *jobs.CandidateProfile, score *MatchScore) string {
	if !posting.HasSalary() {
		return fmt.Sprintf("No salary disclosed, scored neutrally at %.0f.", score.SalaryScore)
	}
	return fmt.Sprintf("Offered %d against a floor of %d and a target of %d scores %.0f.",
		posting.OfferedSalary(), profile.Preferences.MinSalary, profile.Preferences.TargetSalary, score.SalaryScore)
}

func remoteSentence(posting *jobs.JobPosting, profile *jobs.CandidateProfile, score *MatchScore) string {
	mode := "flexible on location"
	if profile.Preferences.RemoteOnly {
		mode = "remote-only"
	}
	return fmt.Sprintf("Remote policy %s for a %s candidate scores %.0f.", posting.Remote, mode, score.RemoteScore)
}

func growthSentence(posting *jobs.JobPosting, score *MatchScore) string {
	stretch := len(posting.PreferredSkills) - len(score.BonusSkills)
	return fmt.Sprintf("%d of %d preferred skills would be new territory (growth score %.0f).",
		stretch, len(posting.PreferredSkills), score.GrowthScore)
}

// strengths ranks the five dimensions and keeps the top three that
// clear the cutoff.
func strengths(score *MatchScore) []string {
	dims := []dimension{
		{"skill match", score.SkillScore},
		{"seniority fit", score.SeniorityScore},
		{"salary fit", score.SalaryScore},
		{"remote fit", score.RemoteScore},
		{"growth potential", score.GrowthScore},
	}

	sort.SliceStable(dims, func(i, j int) bool { return dims[i].score > dims[j].score })

	result := make([]string, 0, 3)
	for _, d := range dims {
		if len(result) == 3 {
			break
		}
		if d.score < strengthCutoff {
			continue
		}
		result = append(result, fmt.Sprintf("%s (%.0f)", d.name, d.score))
	}
	return result
}

// risks lists the concrete conditions that argue against acting on the
// posting. Each entry is specific enough to show to the candidate
// directly.
func risks(posting *jobs.JobPosting, profile *jobs.CandidateProfile, score *MatchScore) []string {
	var result []string

	if len(score.MissingSkills) > 0 {
		result = append(result, fmt.Sprintf("missing required skills: %s", strings.Join(score.MissingSkills, ", ")))
	}

	if posting.HasSalary() && profile.Preferences.MinSalary > 0 && posting.OfferedSalary() < profile.Preferences.MinSalary {
		result = append(result, fmt.Sprintf("offered salary %d is below the %d floor",
			posting.OfferedSalary(), profile.Preferences.MinSalary))
	}

	if profile.Preferences.RemoteOnly && (posting.Remote == jobs.RemoteOnSite || posting.Remote == jobs.RemoteHybrid) {
		result = append(result, fmt.Sprintf("remote policy %s conflicts with the remote-only requirement", posting.Remote))
	}

	if posting.Seniority.Known() && profile.Preferences.MinSeniority.Known() &&
		posting.Seniority < profile.Preferences.MinSeniority {
		result = append(result, fmt.Sprintf("vacancy level %s is below the %s target",
			posting.Seniority, profile.Preferences.MinSeniority))
	}

	return result
}
