package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// JobPosting is a normalized posting produced by the ingestion side.
// The pipeline treats it as read-only; a zero salary means the posting
// did not disclose one.
type JobPosting struct {
	ID              string         `json:"id"`
	Title           string         `json:"title,omitempty"`
	Company         string         `json:"company,omitempty"`
	RequiredSkills  []string       `json:"required_skills,omitempty"`
	PreferredSkills []string       `json:"preferred_skills,omitempty"`
	SalaryMin       int            `json:"salary_min,omitempty"`
	SalaryMax       int            `json:"salary_max,omitempty"`
	Seniority       SeniorityLevel `json:"seniority,omitempty"`
	Remote          RemotePolicy   `json:"remote_policy,omitempty"`
	Engagement      EngagementType `json:"engagement_type,omitempty"`
	GeoRestrictions []string       `json:"geo_restrictions,omitempty"`
	URL             string         `json:"url,omitempty"`
	Source          string         `json:"source,omitempty"`
}

// HasSalary reports whether the posting disclosed any salary figure.
func (p *JobPosting) HasSalary() bool {
	return p.SalaryMin > 0 || p.SalaryMax > 0
}

// OfferedSalary is the figure the pipeline compares against candidate
// expectations: the max when present, the min otherwise, 0 when nothing
// was disclosed.
func (p *JobPosting) OfferedSalary() int {
	if p.SalaryMax > 0 {
		return p.SalaryMax
	}
	return p.SalaryMin
}

// Postings is an ordered collection of postings. Order is the ingestion
// order and filters must preserve it.
type Postings struct {
	Items []*JobPosting
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *JobPosting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

func (p *Postings) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, posting := range p.Items {
		ids = append(ids, posting.ID)
	}
	return ids
}

// Keep returns a new collection holding only postings the predicate
// accepts, preserving order. The receiver is not modified.
func (p *Postings) Keep(pred func(*JobPosting) bool) *Postings {
	kept := &Postings{Items: make([]*JobPosting, 0, len(p.Items))}
	for _, posting := range p.Items {
		if pred(posting) {
			kept.Items = append(kept.Items, posting)
		}
	}
	return kept
}

// ReportByCompany groups postings per company for the interactive report.
func (p *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, posting := range p.Items {
		entry := map[string]string{
			"title":           posting.Title,
			"url":             posting.URL,
			"seniority":       posting.Seniority.String(),
			"remote_policy":   posting.Remote.String(),
			"salary":          fmt.Sprintf("%d-%d", posting.SalaryMin, posting.SalaryMax),
			"required_skills": strings.Join(posting.RequiredSkills, ", "),
		}
		report[posting.Company] = append(report[posting.Company], entry)
	}
	return report
}

// DumpToTmpFile writes the collection as indented JSON to a temp file
// and returns its name.
func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// LoadPostings reads an ingestion output file. An empty file yields an
// empty collection; a posting without an id is rejected since every
// downstream decision is keyed by it.
func LoadPostings(path string) (*Postings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open postings file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &Postings{}, nil
	}

	var postings Postings
	if err := json.NewDecoder(file).Decode(&postings); err != nil {
		return nil, fmt.Errorf("decode postings file %q: %w", path, err)
	}

	for i, posting := range postings.Items {
		if posting == nil || strings.TrimSpace(posting.ID) == "" {
			return nil, fmt.Errorf("posting at index %d has no id", i)
		}
	}

	return &postings, nil
}
