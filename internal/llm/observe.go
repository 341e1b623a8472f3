package llm

import (
	"context"
	"time"

	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/telemetry"
)

type observed struct {
	next    Completer
	useCase string
}

// Observe wraps c so every call is counted and logged under useCase.
func Observe(c Completer, useCase string) Completer {
	return observed{next: c, useCase: useCase}
}

func (o observed) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := o.next.Complete(ctx, prompt)
	took := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = string(ReasonOf(err))
		if outcome == "" {
			outcome = "error"
		}
		telemetry.Warn("llm.complete_failed", map[string]any{
			"use_case":    o.useCase,
			"reason":      outcome,
			"duration_ms": took.Milliseconds(),
			"err":         err,
		})
	} else {
		telemetry.Info("llm.complete", map[string]any{
			"use_case":     o.useCase,
			"duration_ms":  took.Milliseconds(),
			"prompt_chars": len(prompt),
			"reply_chars":  len(reply),
		})
	}
	metrics.ObserveCompletion(o.useCase, outcome, took)
	return reply, err
}
