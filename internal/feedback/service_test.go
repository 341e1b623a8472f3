package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContactNormalisesAndStores(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	got, err := svc.SubmitContact(context.Background(), Contact{
		Name: " Ada ", Email: "Ada@Example.com ", Subject: "Hello", Message: " Great site ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "Great site", got.Message)
	assert.Len(t, repo.Contacts(), 1)
}

func TestSubmitContactListsMissingFields(t *testing.T) {
	repo := NewMemoryRepo()
	_, err := NewService(repo).SubmitContact(context.Background(), Contact{Name: "Ada", Email: "not-an-email"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email", "subject", "message"}, verr.Fields)
	assert.Empty(t, repo.Contacts())
}

func TestSubmitFeedbackChecksRating(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	base := Feedback{Name: "Ada", Email: "ada@example.com", Feedback: "Useful"}

	for _, rating := range []int{0, 6, -1} {
		in := base
		in.Rating = rating
		_, err := svc.SubmitFeedback(context.Background(), in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "rating %d", rating)
		assert.Equal(t, []string{"rating"}, verr.Fields)
	}

	in := base
	in.Rating = 5
	_, err := svc.SubmitFeedback(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, repo.Feedback(), 1)
}

func TestPGRepoInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &PGRepo{DB: db}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contact_messages")).
		WithArgs("c1", "Ada", "ada@example.com", "Hi", "Hello", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SaveContact(context.Background(), Contact{
		ID: "c1", Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello", CreatedAt: at,
	}))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO feedback")).
		WithArgs("f1", "Ada", "ada@example.com", 4, "Nice", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SaveFeedback(context.Background(), Feedback{
		ID: "f1", Name: "Ada", Email: "ada@example.com", Rating: 4, Feedback: "Nice", CreatedAt: at,
	}))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerIsPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(r.Group("/api/v1"))

	post := func(path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	resp := post("/api/v1/feedback", gin.H{"name": "Ada", "email": "ada@example.com", "rating": 4, "feedback": "Nice"})
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = post("/api/v1/contact", gin.H{"name": "Ada"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	var body struct {
		Error struct {
			Details struct {
				Fields []string `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"email", "subject", "message"}, body.Error.Details.Fields)
}
