package resumes

import (
	"sync"

	"careercraft-backend/resume/model"
)

// editor is one owner's open resume form.
type editor struct {
	record    model.Record
	validator model.Validator
	dirty     bool
	// version increments on every edit so a save only clears the dirty flag
	// when nothing changed while it was in flight.
	version uint64
	// gen identifies this editor among every editor the owner ever opened.
	gen uint64
}

// Editing is a point-in-time view of an open editor.
type Editing struct {
	Record   model.Record
	Template model.Template
	Dirty    bool
	version  uint64
	gen      uint64
}

type registry struct {
	mu      sync.Mutex
	editors map[string]*editor
	nextGen uint64
}

func newRegistry() *registry {
	return &registry{editors: make(map[string]*editor)}
}

// openIfAbsent registers an editor unless one is already open. The validator
// is replaced either way.
func (r *registry) openIfAbsent(owner string, rec model.Record, v model.Validator) Editing {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[owner]
	if !ok {
		r.nextGen++
		e = &editor{record: rec, gen: r.nextGen}
		r.editors[owner] = e
	}
	e.validator = v
	return e.view()
}

func (r *registry) get(owner string) (Editing, model.Validator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[owner]
	if !ok {
		return Editing{}, nil, false
	}
	return e.view(), e.validator, true
}

// edit applies fn to a copy of the record and keeps the copy only when fn
// succeeds, so refused mutations leave the form untouched.
func (r *registry) edit(owner string, fn func(*model.Record) error) (Editing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[owner]
	if !ok {
		return Editing{}, ErrNotOpen
	}
	next := e.record.Clone()
	if err := fn(&next); err != nil {
		return Editing{}, err
	}
	e.record = next
	e.dirty = true
	e.version++
	return e.view(), nil
}

func (r *registry) markSaved(owner string, version uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.editors[owner]; ok && e.version == version {
		e.dirty = false
	}
}

// isOpen reports whether the editor with generation gen is still the open
// editor of owner.
func (r *registry) isOpen(owner string, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[owner]
	return ok && e.gen == gen
}

func (r *registry) dirty() map[string]Editing {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Editing)
	for owner, e := range r.editors {
		if e.dirty {
			out[owner] = e.view()
		}
	}
	return out
}

func (r *registry) close(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.editors, owner)
}

func (e *editor) view() Editing {
	return Editing{
		Record:   e.record.Clone(),
		Template: e.validator.Template(),
		Dirty:    e.dirty,
		version:  e.version,
		gen:      e.gen,
	}
}

// ownerLocks serialises slot writes per owner so a draft save cannot land
// after the submit that closed its editor.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*ownerLock
}

type ownerLock struct {
	sync.Mutex
	refs int
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*ownerLock)}
}

// lock blocks until owner is free and returns the matching unlock.
func (l *ownerLocks) lock(owner string) func() {
	l.mu.Lock()
	ol, ok := l.locks[owner]
	if !ok {
		ol = &ownerLock{}
		l.locks[owner] = ol
	}
	ol.refs++
	l.mu.Unlock()

	ol.Lock()
	return func() {
		ol.Unlock()
		l.mu.Lock()
		ol.refs--
		if ol.refs == 0 {
			delete(l.locks, owner)
		}
		l.mu.Unlock()
	}
}
