// Package resumes runs the resume builder: open editing forms, drafts,
// autosave, submit, preview and export.
package resumes

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"careercraft-backend/internal/events"
	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/storage/kv"
	"careercraft-backend/internal/shared/telemetry"
	"careercraft-backend/resume/model"
	"careercraft-backend/resume/render"
)

// Service owns the editing sessions and the resume slots.
type Service struct {
	Store  kv.Store
	Events events.Publisher

	editors *registry
	slots   *ownerLocks
}

// NewService constructs a Service. A nil publisher drops events.
func NewService(store kv.Store, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{Store: store, Events: pub, editors: newRegistry(), slots: newOwnerLocks()}
}

// Open starts editing for owner with template t. The saved draft, when there
// is one, is loaded over the defaults. An editor that is already open keeps
// its unsaved edits and switches to t.
func (s *Service) Open(ctx context.Context, owner string, t model.Template) (Editing, error) {
	v := model.ValidatorFor(t)
	if cur, _, ok := s.editors.get(owner); ok {
		return s.editors.openIfAbsent(owner, cur.Record, v), nil
	}
	rec, err := s.loadDraft(ctx, owner)
	if err != nil {
		return Editing{}, err
	}
	return s.editors.openIfAbsent(owner, rec, v), nil
}

func (s *Service) loadDraft(ctx context.Context, owner string) (model.Record, error) {
	raw, err := s.Store.Get(ctx, owner, kv.SlotResumeDraft)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return model.New(), nil
	case err != nil:
		return model.Record{}, errors.Wrap(err, "load resume draft")
	}
	rec, err := model.Decode(raw)
	if err != nil {
		telemetry.Warn("resume.draft_unreadable", map[string]any{"owner": owner, "error": err})
		return model.New(), nil
	}
	return rec, nil
}

// Current returns the open editor of owner.
func (s *Service) Current(owner string) (Editing, error) {
	cur, _, ok := s.editors.get(owner)
	if !ok {
		return Editing{}, ErrNotOpen
	}
	return cur, nil
}

// Edit applies one mutation to the open editor. A refused mutation changes
// nothing.
func (s *Service) Edit(owner string, fn func(*model.Record) error) (Editing, error) {
	return s.editors.edit(owner, fn)
}

// SaveDraft writes the open editor to the draft slot now.
func (s *Service) SaveDraft(ctx context.Context, owner string) error {
	cur, _, ok := s.editors.get(owner)
	if !ok {
		return ErrNotOpen
	}
	err := s.saveDraft(ctx, owner, cur)
	if errors.Is(err, errEditorGone) {
		return ErrNotOpen
	}
	return err
}

// saveDraft writes cur unless its editor was closed since the snapshot was
// taken, in which case it returns errEditorGone.
func (s *Service) saveDraft(ctx context.Context, owner string, cur Editing) error {
	unlock := s.slots.lock(owner)
	defer unlock()
	if !s.editors.isOpen(owner, cur.gen) {
		return errEditorGone
	}
	raw, err := cur.Record.Encode()
	if err != nil {
		return err
	}
	if err := s.Store.Put(ctx, owner, kv.SlotResumeDraft, raw); err != nil {
		return errors.Wrap(err, "save resume draft")
	}
	s.editors.markSaved(owner, cur.version)
	return nil
}

// FlushDrafts saves every editor changed since its last save and reports how
// many were written. The first failure is returned after all were attempted.
func (s *Service) FlushDrafts(ctx context.Context) (int, error) {
	var (
		saved    int
		firstErr error
	)
	for owner, cur := range s.editors.dirty() {
		err := s.saveDraft(ctx, owner, cur)
		if errors.Is(err, errEditorGone) {
			continue
		}
		if err != nil {
			metrics.IncAutosave("error")
			telemetry.Error("resume.autosave_failed", map[string]any{"owner": owner, "error": err})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.IncAutosave("ok")
		saved++
	}
	return saved, firstErr
}

// Submit validates the open editor with the validator chosen at Open. On
// success the normalised record replaces the submitted slot, the draft is
// removed and the editor is closed. On failure nothing is written.
func (s *Service) Submit(ctx context.Context, owner string) (model.Record, error) {
	unlock := s.slots.lock(owner)
	defer unlock()
	cur, v, ok := s.editors.get(owner)
	if !ok {
		return model.Record{}, ErrNotOpen
	}
	tmpl := string(v.Template())
	if err := v.Validate(cur.Record); err != nil {
		metrics.IncSubmit(tmpl, "invalid")
		return model.Record{}, err
	}

	out := model.Normalize(cur.Record, v.Template())
	raw, err := out.Encode()
	if err != nil {
		metrics.IncSubmit(tmpl, "error")
		return model.Record{}, err
	}
	if err := s.Store.Put(ctx, owner, kv.SlotResumeData, raw); err != nil {
		metrics.IncSubmit(tmpl, "error")
		return model.Record{}, errors.Wrap(err, "save submitted resume")
	}
	if err := s.Store.Delete(ctx, owner, kv.SlotResumeDraft); err != nil && !errors.Is(err, kv.ErrNotFound) {
		telemetry.Warn("resume.draft_delete_failed", map[string]any{"owner": owner, "error": err})
	}
	s.editors.close(owner)
	metrics.IncSubmit(tmpl, "ok")

	ev := events.New(events.ResumeSubmitted, owner, map[string]any{"template": tmpl})
	if err := s.Events.Publish(ctx, ev); err != nil {
		telemetry.Warn("events.publish_failed", map[string]any{"type": ev.Type, "owner": owner, "error": err})
	}
	return out, nil
}

// Submitted reads the submitted resume for the preview.
func (s *Service) Submitted(ctx context.Context, owner string) (model.Record, error) {
	raw, err := s.Store.Get(ctx, owner, kv.SlotResumeData)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return model.Record{}, ErrNoResume
	case err != nil:
		return model.Record{}, errors.Wrap(err, "load submitted resume")
	}
	rec, err := model.DecodeSubmitted(raw)
	if err != nil {
		return model.Record{}, errors.Wrap(ErrCorruptResume, err.Error())
	}
	return rec, nil
}

// Export renders the submitted resume as a downloadable document.
func (s *Service) Export(ctx context.Context, owner string, f render.Format) (render.Document, error) {
	rec, err := s.Submitted(ctx, owner)
	if err != nil {
		return render.Document{}, err
	}
	start := time.Now()
	doc, err := render.Render(rec, f)
	if err != nil {
		telemetry.Error("resume.export_failed", map[string]any{"owner": owner, "format": f, "error": err})
		return render.Document{}, &ExportError{Format: f, Err: err}
	}
	telemetry.Info("resume.exported", map[string]any{
		"owner":       owner,
		"format":      f,
		"bytes":       len(doc.Body),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return doc, nil
}
