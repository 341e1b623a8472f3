package feedback

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu       sync.Mutex
	contacts []Contact
	feedback []Feedback
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) SaveContact(ctx context.Context, c Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, c)
	return nil
}

func (r *MemoryRepo) SaveFeedback(ctx context.Context, f Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append(r.feedback, f)
	return nil
}

// Contacts returns the stored contact messages in arrival order.
func (r *MemoryRepo) Contacts() []Contact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Contact(nil), r.contacts...)
}

// Feedback returns the stored feedback in arrival order.
func (r *MemoryRepo) Feedback() []Feedback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Feedback(nil), r.feedback...)
}
