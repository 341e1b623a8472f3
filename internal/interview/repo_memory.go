package interview

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	messages map[string][]Message
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{messages: make(map[string][]Message)}
}

func (r *MemoryRepo) Append(ctx context.Context, msgs ...Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.messages[m.Owner] = append(r.messages[m.Owner], m)
	}
	return nil
}

func (r *MemoryRepo) Recent(ctx context.Context, owner string, limit int) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.messages[owner]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return append([]Message{}, all...), nil
}

func (r *MemoryRepo) Clear(ctx context.Context, owner string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, owner)
	return nil
}
