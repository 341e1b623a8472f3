package feedback

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"careercraft-backend/internal/shared/telemetry"
)

// ValidationError lists the form fields that were missing or invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

func (s *Service) SubmitContact(ctx context.Context, in Contact) (Contact, error) {
	c := Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	var bad []string
	if c.Name == "" {
		bad = append(bad, "name")
	}
	if !validEmail(c.Email) {
		bad = append(bad, "email")
	}
	if c.Subject == "" {
		bad = append(bad, "subject")
	}
	if c.Message == "" {
		bad = append(bad, "message")
	}
	if len(bad) > 0 {
		return Contact{}, &ValidationError{Fields: bad}
	}

	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()
	if err := s.Repo.SaveContact(ctx, c); err != nil {
		return Contact{}, err
	}
	telemetry.Info("contact.received", map[string]any{"id": c.ID, "subject": c.Subject})
	return c, nil
}

func (s *Service) SubmitFeedback(ctx context.Context, in Feedback) (Feedback, error) {
	f := Feedback{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Rating:   in.Rating,
		Feedback: strings.TrimSpace(in.Feedback),
	}
	var bad []string
	if f.Name == "" {
		bad = append(bad, "name")
	}
	if !validEmail(f.Email) {
		bad = append(bad, "email")
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		bad = append(bad, "rating")
	}
	if f.Feedback == "" {
		bad = append(bad, "feedback")
	}
	if len(bad) > 0 {
		return Feedback{}, &ValidationError{Fields: bad}
	}

	f.ID = uuid.NewString()
	f.CreatedAt = s.now().UTC()
	if err := s.Repo.SaveFeedback(ctx, f); err != nil {
		return Feedback{}, err
	}
	telemetry.Info("feedback.received", map[string]any{"id": f.ID, "rating": f.Rating})
	return f, nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
