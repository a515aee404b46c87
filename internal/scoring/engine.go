// Package scoring computes a weighted multi-dimensional compatibility
// score for one posting against one profile. Scoring is deterministic
// and side-effect free; it never touches the network or the decision
// store, so callers are free to batch-score postings concurrently.
package scoring

import (
	"errors"
	"math"
	"strings"

	"github.com/jobsieve/jobsieve/internal/jobs"
)

var (
	ErrNilPosting = errors.New("posting is required")
	ErrNilProfile = errors.New("profile is required")
)

// Action is the recommendation derived from the overall score.
type Action int

const (
	ActionSkip Action = iota
	ActionSkillUpFirst
	ActionPrepareAndApply
	ActionApply
)

func (a Action) String() string {
	switch a {
	case ActionApply:
		return "apply"
	case ActionPrepareAndApply:
		return "prepare_and_apply"
	case ActionSkillUpFirst:
		return "skill_up_first"
	default:
		return "skip"
	}
}

// Action thresholds, inclusive lower bounds on the overall score.
const (
	applyThreshold     = 75.0
	prepareThreshold   = 55.0
	skillUpThreshold   = 35.0
	neutralScore       = 50.0
	weeksNeverSentinel = 99
)

// MatchScore is the full evaluation result. It is recomputed on every
// call and never mutated in place.
type MatchScore struct {
	OverallScore float64

	SkillScore     float64
	SeniorityScore float64
	SalaryScore    float64
	RemoteScore    float64
	GrowthScore    float64

	MatchingSkills []string
	MissingSkills  []string
	BonusSkills    []string

	Confidence  float64
	Explanation Explanation

	RecommendedAction     Action
	EstimatedWeeksToReady int
}

// remoteScores holds the two lookup tables keyed by the remote-only
// preference. When the candidate is flexible every policy is
// acceptable and the table only expresses a soft preference; when the
// candidate is remote-only, office-bound policies collapse.
var remoteScores = map[bool]map[jobs.RemotePolicy]float64{
	false: {
		jobs.RemoteFully:    100,
		jobs.RemoteFriendly: 95,
		jobs.RemoteHybrid:   90,
		jobs.RemoteOnSite:   80,
		jobs.RemoteUnknown:  85,
	},
	true: {
		jobs.RemoteFully:    100,
		jobs.RemoteFriendly: 80,
		jobs.RemoteHybrid:   40,
		jobs.RemoteOnSite:   0,
		jobs.RemoteUnknown:  50,
	},
}

// seniorityGapScores maps the absolute distance between the vacancy
// level and the candidate's minimum seniority to a score. Distances
// beyond the table use the last entry.
var seniorityGapScores = []float64{100, 75, 40, 10}

// Engine scores postings with a fixed weight distribution.
type Engine struct {
	weights Weights
}

// NewEngine builds an engine, rejecting weight sets that break the
// sum-to-one invariant.
func NewEngine(weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights}, nil
}

// Score evaluates one posting against one profile.
func (e *Engine) Score(posting *jobs.JobPosting, profile *jobs.CandidateProfile) (*MatchScore, error) {
	if posting == nil {
		return nil, ErrNilPosting
	}
	if profile == nil {
		return nil, ErrNilProfile
	}

	skills := profile.SkillSet()

	matching, missing := splitByOwnership(posting.RequiredSkills, skills)
	bonus, stretch := splitByOwnership(posting.PreferredSkills, skills)

	score := &MatchScore{
		MatchingSkills: matching,
		MissingSkills:  missing,
		BonusSkills:    bonus,
	}

	score.SkillScore = skillScore(len(matching), len(posting.RequiredSkills), len(bonus), len(posting.PreferredSkills))
	score.SeniorityScore = seniorityScore(posting.Seniority, profile.Preferences.MinSeniority)
	score.SalaryScore = salaryScore(posting, profile.Preferences)
	score.RemoteScore = remoteScores[profile.Preferences.RemoteOnly][posting.Remote]
	score.GrowthScore = growthScore(len(stretch), len(posting.PreferredSkills))

	overall := score.SkillScore*e.weights.Skill +
		score.SeniorityScore*e.weights.Seniority +
		score.SalaryScore*e.weights.Salary +
		score.RemoteScore*e.weights.Remote +
		score.GrowthScore*e.weights.Growth
	score.OverallScore = math.Round(overall*100) / 100

	score.RecommendedAction = actionFor(score.OverallScore)
	score.EstimatedWeeksToReady = weeksToReady(score.RecommendedAction, len(missing))
	score.Confidence = confidence(posting, profile)
	score.Explanation = explain(posting, profile, score)

	return score, nil
}

// splitByOwnership partitions the listed skills into those the
// candidate has and those they lack, keeping the posting's spelling.
func splitByOwnership(listed []string, owned map[string]struct{}) (have, lack []string) {
	for _, skill := range listed {
		if _, ok := owned[strings.ToLower(strings.TrimSpace(skill))]; ok {
			have = append(have, skill)
		} else {
			lack = append(lack, skill)
		}
	}
	return have, lack
}

// skillScore weighs required coverage at 70 and preferred coverage at
// 30. A side with nothing listed grants its full portion: absence of a
// stated requirement is not evidence of mismatch. Both sides empty is
// a neutral 50.
func skillScore(matchedRequired, totalRequired, matchedPreferred, totalPreferred int) float64 {
	if totalRequired == 0 && totalPreferred == 0 {
		return neutralScore
	}

	required := 70.0
	if totalRequired > 0 {
		required = float64(matchedRequired) / float64(totalRequired) * 70
	}

	preferred := 30.0
	if totalPreferred > 0 {
		preferred = float64(matchedPreferred) / float64(totalPreferred) * 30
	}

	return required + preferred
}

func seniorityScore(vacancy, candidate jobs.SeniorityLevel) float64 {
	if !vacancy.Known() || !candidate.Known() {
		return neutralScore
	}

	gap := int(vacancy) - int(candidate)
	if gap < 0 {
		gap = -gap
	}
	if gap >= len(seniorityGapScores) {
		gap = len(seniorityGapScores) - 1
	}
	return seniorityGapScores[gap]
}

func salaryScore(posting *jobs.JobPosting, prefs jobs.Preferences) float64 {
	if !posting.HasSalary() {
		return neutralScore
	}

	offered := posting.OfferedSalary()
	switch {
	case prefs.TargetSalary > 0 && offered >= prefs.TargetSalary:
		return 100
	case prefs.MinSalary > 0 && offered >= prefs.MinSalary:
		return 70
	case prefs.MinSalary == 0 && prefs.TargetSalary == 0:
		return 70
	default:
		return 20
	}
}

// growthScore rewards stretch: the more preferred skills the candidate
// would pick up on the job, the higher the growth potential.
func growthScore(stretchCount, totalPreferred int) float64 {
	if totalPreferred == 0 {
		return neutralScore
	}
	score := float64(stretchCount) / float64(totalPreferred) * 100
	return math.Min(score, 100)
}

func actionFor(overall float64) Action {
	switch {
	case overall >= applyThreshold:
		return ActionApply
	case overall >= prepareThreshold:
		return ActionPrepareAndApply
	case overall >= skillUpThreshold:
		return ActionSkillUpFirst
	default:
		return ActionSkip
	}
}

func weeksToReady(action Action, missingRequired int) int {
	switch action {
	case ActionApply:
		return 0
	case ActionPrepareAndApply:
		return missingRequired * 2
	case ActionSkillUpFirst:
		return missingRequired * 4
	default:
		return weeksNeverSentinel
	}
}

// confidence starts at 1.0 and loses a fixed amount per sparse-data
// condition. It signals how much missing source data undermines the
// score; callers surface it next to the score, never instead of it.
func confidence(posting *jobs.JobPosting, profile *jobs.CandidateProfile) float64 {
	c := 1.0
	if len(posting.RequiredSkills) == 0 {
		c -= 0.30
	}
	if !posting.HasSalary() {
		c -= 0.15
	}
	if !posting.Seniority.Known() {
		c -= 0.15
	}
	if posting.Remote == jobs.RemoteUnknown {
		c -= 0.10
	}
	if len(profile.Skills) < 3 {
		c -= 0.20
	}

	if c < 0.10 {
		c = 0.10
	}
	if c > 1.0 {
		c = 1.0
	}
	return c
}
