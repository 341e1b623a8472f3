// Package interview runs mock interviews against the language model and keeps
// the transcript per user.
package interview

import "time"

const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// Message is one line of the transcript.
type Message struct {
	ID        string    `json:"id"`
	Owner     string    `json:"-"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
