package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jobsieve/jobsieve/internal/jobs"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testPosting() *jobs.JobPosting {
	return &jobs.JobPosting{ID: "p1", Title: "Go Developer", RequiredSkills: []string{"Go"}}
}

func testProfile() *jobs.CandidateProfile {
	return &jobs.CandidateProfile{Skills: []jobs.SkillRating{{Name: "Go", Proficiency: 5, Years: 6}}}
}

func TestAdvisorEvaluate(t *testing.T) {
	stub := &stubGenerator{response: `{"fit": true, "score": 0.9, "reason": "Matches the stack"}`}
	advisor := NewAdvisor(stub, 0.5, 0, zap.NewNop())

	assessment, err := advisor.Evaluate(context.Background(), testProfile(), testPosting())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assessment.Fit {
		t.Fatalf("expected fit to be true")
	}
	if assessment.Score != 0.9 {
		t.Fatalf("expected score 0.9, got %v", assessment.Score)
	}
	if assessment.Reason == "" {
		t.Fatalf("expected reason to be populated")
	}
	if stub.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}
	if !strings.Contains(stub.lastPrompt, "Go Developer") {
		t.Fatalf("expected the posting payload in the prompt")
	}
}

func TestAdvisorAppliesScoreThreshold(t *testing.T) {
	stub := &stubGenerator{response: `{"fit": true, "score": 0.3, "reason": "weak"}`}
	advisor := NewAdvisor(stub, 0.5, 0, zap.NewNop())

	assessment, err := advisor.Evaluate(context.Background(), testProfile(), testPosting())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Fit {
		t.Fatalf("expected fit to be downgraded below the threshold")
	}
}

func TestAdvisorParsesFencedResponses(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"fit\": true, \"score\": \"0.8\", \"reason\": \"ok\"}\n```"}
	advisor := NewAdvisor(stub, 0, 0, zap.NewNop())

	assessment, err := advisor.Evaluate(context.Background(), testProfile(), testPosting())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assessment.Fit || assessment.Score != 0.8 {
		t.Fatalf("unexpected assessment: %+v", assessment)
	}
	if assessment.Raw == "" {
		t.Fatalf("expected the raw response to be kept")
	}
}

func TestAdvisorPropagatesGeneratorErrors(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	advisor := NewAdvisor(stub, 0, 0, zap.NewNop())

	if _, err := advisor.Evaluate(context.Background(), testProfile(), testPosting()); err == nil {
		t.Fatalf("expected the generator error to surface")
	}
}

func TestAdvisorRejectsMalformedResponses(t *testing.T) {
	stub := &stubGenerator{response: "not json at all"}
	advisor := NewAdvisor(stub, 0, 0, zap.NewNop())

	if _, err := advisor.Evaluate(context.Background(), testProfile(), testPosting()); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestAdvisorRequiresInputs(t *testing.T) {
	advisor := NewAdvisor(&stubGenerator{}, 0, 0, zap.NewNop())

	if _, err := advisor.Evaluate(context.Background(), nil, testPosting()); err == nil {
		t.Fatalf("expected an error for a nil profile")
	}
	if _, err := advisor.Evaluate(context.Background(), testProfile(), nil); err == nil {
		t.Fatalf("expected an error for a nil posting")
	}
}
