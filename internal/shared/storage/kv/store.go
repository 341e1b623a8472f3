// Package kv stores small string values in named slots per owner.
package kv

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Slot names shared with the web client.
const (
	SlotResumeDraft = "resumeDraft"
	SlotResumeData  = "resumeData"
	SlotAuth        = "auth-storage"
)

// ErrNotFound is returned when a slot holds no value.
var ErrNotFound = errors.New("slot not found")

// Store reads and writes slot values scoped to an owner.
type Store interface {
	Get(ctx context.Context, owner, key string) (string, error)
	Put(ctx context.Context, owner, key, value string) error
	Delete(ctx context.Context, owner, key string) error
}

// UserOwner scopes resume slots to a logged-in user.
func UserOwner(email string) string {
	return "user:" + strings.ToLower(strings.TrimSpace(email))
}

// SessionOwner scopes the auth slot to a browser session.
func SessionOwner(sessionID string) string {
	return "session:" + sessionID
}

func validate(owner, key string) error {
	if strings.TrimSpace(owner) == "" {
		return errors.New("slot owner is required")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("slot key is required")
	}
	return nil
}
