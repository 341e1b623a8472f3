package interview

import "context"

// Repo stores transcripts.
type Repo interface {
	Append(ctx context.Context, msgs ...Message) error
	// Recent returns the last limit messages of owner, oldest first. A limit
	// of zero or less returns the whole transcript.
	Recent(ctx context.Context, owner string, limit int) ([]Message, error)
	Clear(ctx context.Context, owner string) error
}
