package interview

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"careercraft-backend/internal/events"
	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/prompt"
	"careercraft-backend/internal/shared/telemetry"
)

// UseCase labels completion metrics and logs.
const UseCase = "interview"

// MaxMessageLength is the longest message a candidate may send, in characters.
const MaxMessageLength = 500

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrTooLong      = errors.New("message too long")
)

// Exchange is one candidate message and the interviewer's reply.
type Exchange struct {
	Question Message `json:"message"`
	Reply    Message `json:"reply"`
	Farewell bool    `json:"farewell"`
}

type Service struct {
	Repo   Repo
	LLM    llm.Completer
	Events events.Publisher
	now    func() time.Time
}

func NewService(repo Repo, c llm.Completer, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{Repo: repo, LLM: llm.Observe(c, UseCase), Events: pub, now: time.Now}
}

// Send passes the candidate's message to the interviewer with the recent
// transcript. Both lines are stored only when the model answered.
func (s *Service) Send(ctx context.Context, owner, text string) (Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return Exchange{}, ErrTooLong
	}

	history, err := s.Repo.Recent(ctx, owner, prompt.HistoryLimit)
	if err != nil {
		return Exchange{}, err
	}
	turns := make([]prompt.Turn, len(history))
	for i, m := range history {
		turns[i] = prompt.Turn{Role: m.Role, Text: m.Text}
	}

	askedAt := s.now().UTC()
	input, farewell := prompt.Interview(text, turns)
	reply, err := s.LLM.Complete(ctx, input)
	if err != nil {
		return Exchange{}, err
	}
	repliedAt := s.now().UTC()
	if !repliedAt.After(askedAt) {
		repliedAt = askedAt.Add(time.Microsecond)
	}

	ex := Exchange{
		Question: Message{ID: uuid.NewString(), Owner: owner, Role: RoleUser, Text: text, CreatedAt: askedAt},
		Reply:    Message{ID: uuid.NewString(), Owner: owner, Role: RoleAI, Text: strings.TrimSpace(reply), CreatedAt: repliedAt},
		Farewell: farewell,
	}
	if err := s.Repo.Append(ctx, ex.Question, ex.Reply); err != nil {
		return Exchange{}, err
	}

	if farewell {
		ev := events.New(events.InterviewCompleted, owner, map[string]any{"messages": len(history) + 2})
		if err := s.Events.Publish(ctx, ev); err != nil {
			telemetry.Warn("events.publish_failed", map[string]any{"type": ev.Type, "owner": owner, "error": err})
		}
	}
	return ex, nil
}

// Transcript returns the whole conversation of owner, oldest first.
func (s *Service) Transcript(ctx context.Context, owner string) ([]Message, error) {
	return s.Repo.Recent(ctx, owner, 0)
}

// Clear deletes the conversation of owner.
func (s *Service) Clear(ctx context.Context, owner string) error {
	return s.Repo.Clear(ctx, owner)
}
