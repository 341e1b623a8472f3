package resumes

import (
	"context"
	"time"

	"careercraft-backend/internal/shared/telemetry"
)

// DefaultAutosaveInterval matches how often the builder form saves a draft.
const DefaultAutosaveInterval = 30 * time.Second

// Autosaver periodically writes changed editors to their draft slots.
type Autosaver struct {
	Svc      *Service
	Interval time.Duration
}

// Run saves drafts on every tick until ctx is cancelled, then flushes once
// more so edits made since the last tick are not lost on shutdown.
func (a *Autosaver) Run(ctx context.Context) error {
	interval := a.Interval
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	telemetry.Info("autosave.start", map[string]any{"interval_ms": interval.Milliseconds()})
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			saved, _ := a.Svc.FlushDrafts(flushCtx)
			cancel()
			telemetry.Info("autosave.stop", map[string]any{"saved": saved})
			return nil
		case <-ticker.C:
			if saved, _ := a.Svc.FlushDrafts(ctx); saved > 0 {
				telemetry.Info("autosave.flushed", map[string]any{"saved": saved})
			}
		}
	}
}
