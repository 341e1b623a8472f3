package llm

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func TestReasonOfAndFallbackText(t *testing.T) {
	wrapped := errors.Wrap(Fail(ReasonEmpty, nil), "guidance")
	assert.Equal(t, ReasonEmpty, ReasonOf(wrapped))
	assert.Equal(t, "No response from Gemini AI.", FallbackText(wrapped))

	timeout := Fail(ReasonTimeout, context.DeadlineExceeded)
	assert.Equal(t, ReasonTimeout, ReasonOf(timeout))
	assert.Equal(t, "AI request failed. Please try again.", FallbackText(timeout))

	assert.Equal(t, Reason(""), ReasonOf(errors.New("plain")))
}

func TestClassify(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	assert.Equal(t, ReasonTimeout, ReasonOf(Classify(ctx, errors.New("request aborted"))))

	assert.Equal(t, ReasonNetwork, ReasonOf(Classify(context.Background(), http.ErrServerClosed)))

	already := Fail(ReasonMalformed, nil)
	assert.Same(t, already, Classify(context.Background(), already))

	assert.NoError(t, Classify(context.Background(), nil))
}

func TestUnconfiguredAlwaysFails(t *testing.T) {
	_, err := Unconfigured{Provider: "gemini"}.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, ReasonUnconfigured, ReasonOf(err))
}

func TestObservePassesThrough(t *testing.T) {
	reply, err := Observe(stubCompleter{reply: "1. Engineer"}, "careers").Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "1. Engineer", reply)

	_, err = Observe(stubCompleter{err: Fail(ReasonNetwork, nil)}, "careers").Complete(context.Background(), "p")
	assert.Equal(t, ReasonNetwork, ReasonOf(err))
}
