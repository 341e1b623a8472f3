package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careercraft-backend/internal/events"
	"careercraft-backend/internal/shared/config"
)

type cannedModel struct {
	mu    sync.Mutex
	calls int
}

func (m *cannedModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return "1. Data Analyst\nTurn data into decisions.\n- Learn SQL\n2. UX Designer\nDesign interfaces.\n- Build a portfolio", nil
}

func testConfig() config.Config {
	return config.Config{
		Env:              "test",
		StorageBackend:   "memory",
		CORSAllowOrigin:  []string{"http://localhost:5173"},
		JWTSecret:        "test-secret",
		SessionTTL:       time.Hour,
		LLMProvider:      "gemini",
		LLMRateLimit:     0.001,
		LLMRateBurst:     2,
		AutosaveInterval: time.Minute,
	}
}

func buildTestApp(t *testing.T) (*App, *cannedModel, *events.Recorder) {
	t.Helper()
	model := &cannedModel{}
	rec := &events.Recorder{}
	app, err := Build(testConfig(), WithCompleter(model), WithPublisher(rec))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, model, rec
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	resp := call(t, r, http.MethodPost, "/api/v1/session/login", "", gin.H{"name": "Ada", "email": "ada@example.com"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestGatedRoutesRefuseAnonymousCallers(t *testing.T) {
	app, model, _ := buildTestApp(t)

	gated := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/careers/guidance"},
		{http.MethodPost, "/api/v1/jobs/search"},
		{http.MethodPost, "/api/v1/interview/messages"},
		{http.MethodPost, "/api/v1/resume/open"},
		{http.MethodGet, "/api/v1/resume"},
		{http.MethodGet, "/api/v1/me"},
	}
	for _, g := range gated {
		resp := call(t, app.Router, g.method, g.path, "", gin.H{"skills": "Go", "message": "hi"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code, g.path)
		assert.Contains(t, resp.Body.String(), `"redirect":"/login"`, g.path)
	}
	assert.Zero(t, model.calls)
}

func TestLoginUnlocksFeaturesUntilLogout(t *testing.T) {
	app, model, rec := buildTestApp(t)
	token := login(t, app.Router)

	resp := call(t, app.Router, http.MethodPost, "/api/v1/careers/guidance", token, gin.H{"skills": "Python"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "Data Analyst")
	assert.Equal(t, 1, model.calls)

	resp = call(t, app.Router, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ada@example.com")

	resp = call(t, app.Router, http.MethodPost, "/api/v1/session/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = call(t, app.Router, http.MethodPost, "/api/v1/careers/guidance", token, gin.H{"skills": "Python"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, 1, model.calls)
	assert.Equal(t, []string{events.UserLoggedIn}, rec.Types())
}

func TestCompletionRoutesAreRateLimited(t *testing.T) {
	app, _, _ := buildTestApp(t)
	token := login(t, app.Router)

	for i := 0; i < 2; i++ {
		resp := call(t, app.Router, http.MethodPost, "/api/v1/jobs/search", token, gin.H{"degree": "BSc"})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}
	resp := call(t, app.Router, http.MethodPost, "/api/v1/jobs/search", token, gin.H{"degree": "BSc"})
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)

	// Non-completion routes are not limited.
	for i := 0; i < 5; i++ {
		resp = call(t, app.Router, http.MethodGet, "/api/v1/interview/messages", token, nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestResumeSubmitPublishesEvent(t *testing.T) {
	app, _, rec := buildTestApp(t)
	token := login(t, app.Router)
	r := app.Router

	require.Equal(t, http.StatusOK, call(t, r, http.MethodPost, "/api/v1/resume/open", token, gin.H{"template": "personal"}).Code)
	for field, value := range map[string]string{"name": "Ada Lovelace", "email": "ada@example.com", "phone": "555"} {
		resp := call(t, r, http.MethodPatch, "/api/v1/resume/editor/fields", token, gin.H{"field": field, "value": value})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}
	for _, edit := range []struct{ path, field, value string }{
		{"/api/v1/resume/editor/items/education/0", "degree", "BSc"},
		{"/api/v1/resume/editor/items/education/0", "institute", "Home"},
		{"/api/v1/resume/editor/items/projects/0", "title", "Notes"},
	} {
		resp := call(t, r, http.MethodPatch, edit.path, token, gin.H{"field": edit.field, "value": edit.value})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := call(t, r, http.MethodPost, "/api/v1/resume/submit", token, nil)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, []string{events.UserLoggedIn, events.ResumeSubmitted}, rec.Types())
}

func TestPublicEndpoints(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp := call(t, app.Router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = call(t, app.Router, http.MethodPost, "/api/v1/contact", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": "Hello",
	})
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = call(t, app.Router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), "http_requests_total"))
}

func TestUnconfiguredModelReportsFallback(t *testing.T) {
	cfg := testConfig()
	app, err := Build(cfg, WithPublisher(&events.Recorder{}))
	require.NoError(t, err)
	token := login(t, app.Router)

	resp := call(t, app.Router, http.MethodPost, "/api/v1/careers/guidance", token, gin.H{"skills": "Go"})
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "llm_unconfigured")
}
