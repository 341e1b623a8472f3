package guidance

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careercraft-backend/internal/llm"
)

type scripted struct {
	reply   string
	err     error
	prompts []string
}

func (s *scripted) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func TestSuggestParsesCareers(t *testing.T) {
	model := &scripted{reply: "1. Data Analyst\nAnalyze data.\nStep: learn SQL\n2. UX Designer\nDesign interfaces.\n- Build a portfolio"}
	svc := NewService(model)

	res, err := svc.Suggest(context.Background(), Request{Skills: "  Python ", Degree: "BSc"})
	require.NoError(t, err)
	require.Len(t, res.Careers, 2)
	assert.Equal(t, "Data Analyst", res.Careers[0].Name)
	assert.Equal(t, []string{"Step: learn SQL"}, res.Careers[0].Steps)
	assert.Equal(t, []string{"Build a portfolio"}, res.Careers[1].Steps)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "skills: Python,")
	assert.Contains(t, model.prompts[0], "interests: N/A")
}

func TestSuggestRequiresSomeInput(t *testing.T) {
	model := &scripted{}
	_, err := NewService(model).Suggest(context.Background(), Request{Skills: " ", Interests: "\t"})
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Empty(t, model.prompts)
}

func TestSuggestPassesCompletionFailure(t *testing.T) {
	model := &scripted{err: llm.Fail(llm.ReasonTimeout, nil)}
	_, err := NewService(model).Suggest(context.Background(), Request{Interests: "art"})
	assert.Equal(t, llm.ReasonTimeout, llm.ReasonOf(err))
}

func TestSuggestUnstructuredReplyYieldsNoCareers(t *testing.T) {
	model := &scripted{reply: "I think you would enjoy many careers in technology."}
	res, err := NewService(model).Suggest(context.Background(), Request{Skills: "Go"})
	require.NoError(t, err)
	assert.Empty(t, res.Careers)
	assert.True(t, strings.HasPrefix(res.Reply, "I think"))
}
