// Package llm defines the text-completion contract shared by all providers.
package llm

import (
	"context"
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// Completer sends one prompt to a language model and returns its reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Reason classifies a completion failure.
type Reason string

const (
	ReasonNetwork      Reason = "network"
	ReasonTimeout      Reason = "timeout"
	ReasonMalformed    Reason = "malformed_response"
	ReasonEmpty        Reason = "empty_response"
	ReasonUnconfigured Reason = "unconfigured"
)

const (
	// FallbackFailed is shown to users when a completion fails.
	FallbackFailed = "AI request failed. Please try again."
	// FallbackEmpty is shown when the model returned no text.
	FallbackEmpty = "No response from Gemini AI."
)

// Error is the typed failure every Completer returns.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("completion %s", e.Reason)
	}
	return fmt.Sprintf("completion %s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fail builds a typed completion error.
func Fail(reason Reason, err error) error {
	return &Error{Reason: reason, Err: err}
}

// ReasonOf returns the failure reason of err, or "" when err is not a completion error.
func ReasonOf(err error) Reason {
	var target *Error
	if errors.As(err, &target) {
		return target.Reason
	}
	return ""
}

// FallbackText returns the message displayed in place of a reply for err.
func FallbackText(err error) string {
	if ReasonOf(err) == ReasonEmpty {
		return FallbackEmpty
	}
	return FallbackFailed
}

// Classify maps a transport error to a failure reason. ctx is the context the
// request was sent with, so deadline expiry is reported as a timeout.
func Classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ReasonOf(err) != "" {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return Fail(ReasonTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Fail(ReasonTimeout, err)
	}
	return Fail(ReasonNetwork, err)
}

// Unconfigured fails every call; it stands in when no API key is set.
type Unconfigured struct {
	Provider string
}

func (u Unconfigured) Complete(ctx context.Context, prompt string) (string, error) {
	return "", Fail(ReasonUnconfigured, errors.Errorf("%s api key not configured", u.Provider))
}

var _ Completer = Unconfigured{}
