package jobs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPostings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "postings.json")
	content := `{
		"Items": [
			{"id": "a", "title": "Go Developer", "company": "Globex"},
			{"id": "b", "title": "Platform Engineer", "company": "Initech", "remote_policy": "hybrid"}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	postings, err := LoadPostings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if postings.Len() != 2 {
		t.Fatalf("expected 2 postings, got %d", postings.Len())
	}
	if postings.FindByID("b").Remote != RemoteHybrid {
		t.Fatalf("expected hybrid remote policy")
	}
	if postings.FindByID("missing") != nil {
		t.Fatalf("expected nil for an unknown id")
	}
}

func TestLoadPostingsEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "postings.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	postings, err := LoadPostings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if postings.Len() != 0 {
		t.Fatalf("expected an empty collection")
	}
}

func TestLoadPostingsRejectsMissingID(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "postings.json")
	if err := os.WriteFile(path, []byte(`{"Items":[{"title":"No ID"}]}`), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := LoadPostings(path); err == nil {
		t.Fatalf("expected an error for a posting without an id")
	}
}

func TestKeepPreservesOrder(t *testing.T) {
	t.Parallel()

	postings := &Postings{Items: []*JobPosting{
		{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"},
	}}

	kept := postings.Keep(func(p *JobPosting) bool { return p.ID != "2" })

	ids := kept.IDs()
	want := []string{"1", "3", "4"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestReportByCompany(t *testing.T) {
	t.Parallel()

	postings := &Postings{Items: []*JobPosting{
		{ID: "1", Company: "Globex", Title: "Go Developer", RequiredSkills: []string{"Go"}},
		{ID: "2", Company: "Globex", Title: "SRE"},
		{ID: "3", Company: "Initech", Title: "Backend Engineer"},
	}}

	report := postings.ReportByCompany()

	if len(report["Globex"]) != 2 {
		t.Fatalf("expected 2 entries for Globex, got %d", len(report["Globex"]))
	}
	if report["Globex"][0]["title"] != "Go Developer" {
		t.Fatalf("unexpected title: %q", report["Globex"][0]["title"])
	}
	if report["Globex"][0]["required_skills"] != "Go" {
		t.Fatalf("unexpected skills: %q", report["Globex"][0]["required_skills"])
	}
}
