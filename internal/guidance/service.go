// Package guidance suggests career paths from a user's skills, interests and
// degree.
package guidance

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
const UseCase = "career_guidance"

// ErrMissingInput is returned when skills, interests and degree are all blank.
var ErrMissingInput = errors.New("skills, interests or degree required")

// Request is the guidance form.
type Request struct {
	Skills    string `json:"skills"`
	Interests string `json:"interests"`
	Degree    string `json:"degree"`
}

// Result holds the parsed careers and the reply they came from.
type Result struct {
	Careers []parser.Career `json:"careers"`
	Reply   string          `json:"reply"`
}

type Service struct {
	LLM llm.Completer
}

func NewService(c llm.Completer) *Service {
	return &Service{LLM: llm.Observe(c, UseCase)}
}

// Suggest asks the model for career paths and parses its numbered list.
func (s *Service) Suggest(ctx context.Context, req Request) (Result, error) {
	if blank(req.Skills) && blank(req.Interests) && blank(req.Degree) {
		return Result{}, ErrMissingInput
	}
	reply, err := s.LLM.Complete(ctx, prompt.CareerGuidance(req.Skills, req.Interests, req.Degree))
	if err != nil {
		return Result{}, err
	}
	careers := parser.Careers(reply)
	if len(careers) == 0 {
		metrics.IncParseEmpty(UseCase)
		telemetry.Warn("parse.empty", map[string]any{"use_case": UseCase, "reply_chars": len(reply)})
	}
	return Result{Careers: careers, Reply: reply}, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
