// Package jobsearch suggests job roles for a user's skills and degree.
package jobsearch

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/parser"
	"careercraft-backend/internal/prompt"
	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/telemetry"
)

// UseCase labels completion metrics and logs.
const UseCase = "job_search"

const (
	DefaultCount = 5
	// MoreStep is how many extra roles "show more" asks for.
	MoreStep = 5
	MaxCount = 30
)

// ErrMissingInput is returned when both skills and degree are blank.
var ErrMissingInput = errors.New("skills or degree required")

// Request is the job search form. Count defaults to DefaultCount.
type Request struct {
	Skills string `json:"skills"`
	Degree string `json:"degree"`
	Count  int    `json:"count"`
}

// Result holds the parsed jobs and what the client should ask for next.
type Result struct {
	Jobs      []parser.Job `json:"jobs"`
	Count     int          `json:"count"`
	NextCount int          `json:"nextCount,omitempty"`
	Reply     string       `json:"reply"`
}

type Service struct {
	LLM llm.Completer
}

func NewService(c llm.Completer) *Service {
	return &Service{LLM: llm.Observe(c, UseCase)}
}

// Search asks the model for the requested number of roles.
func (s *Service) Search(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Skills) == "" && strings.TrimSpace(req.Degree) == "" {
		return Result{}, ErrMissingInput
	}
	count := ClampCount(req.Count)
	reply, err := s.LLM.Complete(ctx, prompt.JobSearch(req.Skills, req.Degree, count))
	if err != nil {
		return Result{}, err
	}
	jobs := parser.Jobs(reply)
	if len(jobs) == 0 {
		metrics.IncParseEmpty(UseCase)
		telemetry.Warn("parse.empty", map[string]any{"use_case": UseCase, "reply_chars": len(reply)})
	}
	res := Result{Jobs: jobs, Count: count, Reply: reply}
	if count < MaxCount {
		res.NextCount = ClampCount(count + MoreStep)
	}
	return res, nil
}

// ClampCount applies the default and the upper bound.
func ClampCount(n int) int {
	switch {
	case n <= 0:
		return DefaultCount
	case n > MaxCount:
		return MaxCount
	default:
		return n
	}
}
