package jobs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// SkillRating is one candidate skill with self-assessed proficiency.
type SkillRating struct {
	Name        string  `mapstructure:"name" validate:"required"`
	Proficiency int     `mapstructure:"proficiency" validate:"min=1,max=5"`
	Years       float64 `mapstructure:"years" validate:"min=0"`
}

// Preferences holds the candidate-side constraints consumed by the
// relevance filter and the scoring engine.
type Preferences struct {
	MinSalary        int            `mapstructure:"min_salary" validate:"min=0"`
	TargetSalary     int            `mapstructure:"target_salary" validate:"min=0"`
	RemoteOnly       bool           `mapstructure:"remote_only"`
	MinSeniority     SeniorityLevel `mapstructure:"min_seniority"`
	ExcludeCompanies []string       `mapstructure:"exclude_companies"`
}

// CandidateProfile is the evaluation subject. Read-only during a
// pipeline run.
type CandidateProfile struct {
	Skills      []SkillRating `mapstructure:"skills" validate:"dive"`
	Preferences Preferences   `mapstructure:"preferences"`
}

// HasSkill reports whether the candidate lists the skill, matching
// case-insensitively.
func (p *CandidateProfile) HasSkill(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, skill := range p.Skills {
		if strings.ToLower(strings.TrimSpace(skill.Name)) == name {
			return true
		}
	}
	return false
}

// SkillSet returns the candidate skills as a lowercased lookup set.
func (p *CandidateProfile) SkillSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Skills))
	for _, skill := range p.Skills {
		set[strings.ToLower(strings.TrimSpace(skill.Name))] = struct{}{}
	}
	return set
}

// ExcludesCompany reports whether the company is on the candidate's
// exclusion list, matching case-insensitively.
func (p *CandidateProfile) ExcludesCompany(company string) bool {
	company = strings.ToLower(strings.TrimSpace(company))
	for _, excluded := range p.Preferences.ExcludeCompanies {
		if strings.ToLower(strings.TrimSpace(excluded)) == company {
			return true
		}
	}
	return false
}

var profileValidator = validator.New()

// Validate checks the structural constraints on the profile:
// proficiency within 1..5, non-negative years and salary floors.
func (p *CandidateProfile) Validate() error {
	if err := profileValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

// DecodeProfile builds a CandidateProfile from a loosely-typed config
// section (viper hands these over as map[string]any). Seniority levels
// arrive as strings and are decoded through the parse helper.
func DecodeProfile(raw any) (*CandidateProfile, error) {
	var profile CandidateProfile

	cfg := &mapstructure.DecoderConfig{
		Result:     &profile,
		DecodeHook: seniorityDecodeHook,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}

func seniorityDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(SeniorityLevel(0)) {
		return data, nil
	}
	return ParseSeniorityLevel(data.(string)), nil
}
