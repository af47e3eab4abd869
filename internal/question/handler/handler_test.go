package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questionboard/questionboard/internal/question"
	"github.com/questionboard/questionboard/internal/question/service"
)

func init() { gin.SetMode(gin.TestMode) }

// allow lets every request through; deny rejects them like RequireSession would.
func allow(c *gin.Context) { c.Next() }

func deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

type questionResponse struct {
	Message  string             `json:"message"`
	Error    string             `json:"error"`
	Question *question.Question `json:"question"`
}

func newEngine(svc *service.Service, guard gin.HandlerFunc) *gin.Engine {
	g := gin.New()
	RegisterQuestionRoutes(g, svc, guard)
	return g
}

func do(t *testing.T, g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) questionResponse {
	t.Helper()
	var out questionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func steppingClock() func() time.Time {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func TestQuestionHandler_Lifecycle(t *testing.T) {
	g := newEngine(service.NewMemoryService(service.WithClock(steppingClock())), allow)

	// create
	w := do(t, g, http.MethodPost, "/api/questions", `{"content":"  What is Go?  "}`)
	require.Equal(t, http.StatusCreated, w.Code)
	cr := decode(t, w)
	assert.Equal(t, "Question submitted successfully", cr.Message)
	require.NotNil(t, cr.Question)
	assert.Equal(t, "What is Go?", cr.Question.Content)
	assert.Equal(t, question.StatusPending, cr.Question.Status)
	id := cr.Question.ID

	// get
	w = do(t, g, http.MethodGet, fmt.Sprintf("/api/questions/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode(t, w).Question.ID)

	// patch
	w = do(t, g, http.MethodPatch, fmt.Sprintf("/api/questions/%d", id), `{"status":"answered"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ur := decode(t, w)
	assert.Equal(t, "Question updated successfully", ur.Message)
	assert.Equal(t, question.StatusAnswered, ur.Question.Status)
	assert.True(t, ur.Question.UpdatedAt.After(ur.Question.CreatedAt))

	// delete
	w = do(t, g, http.MethodDelete, fmt.Sprintf("/api/questions/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Question deleted successfully", decode(t, w).Message)

	w = do(t, g, http.MethodGet, fmt.Sprintf("/api/questions/%d", id), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Question not found", decode(t, w).Error)
}

func TestQuestionHandler_CreateValidation(t *testing.T) {
	g := newEngine(service.NewMemoryService(), allow)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing", `{}`, "Question content is required"},
		{"not a string", `{"content":42}`, "Question content is required"},
		{"malformed", `{"content":`, "Question content is required"},
		{"too short", `{"content":"H"}`, "Question must be between 2 and 1000 characters"},
		{"whitespace", `{"content":"     "}`, "Question must be between 2 and 1000 characters"},
		{"too long", fmt.Sprintf(`{"content":%q}`, strings.Repeat("x", 1001)), "Question must be between 2 and 1000 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, g, http.MethodPost, "/api/questions", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, decode(t, w).Error)
		})
	}

	w := do(t, g, http.MethodPost, "/api/questions", fmt.Sprintf(`{"content":%q}`, strings.Repeat("я", 1000)))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestQuestionHandler_ListFilterAndOrder(t *testing.T) {
	svc := service.NewMemoryService(service.WithClock(steppingClock()))
	g := newEngine(svc, allow)

	// empty store lists as [] rather than null
	w := do(t, g, http.MethodGet, "/api/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"questions":[]}`, w.Body.String())

	for _, c := range []string{"first", "second", "third"} {
		_, err := svc.Submit(context.Background(), c)
		require.NoError(t, err)
	}
	_, err := svc.UpdateStatus(context.Background(), 2, "archived")
	require.NoError(t, err)

	var out struct {
		Questions []question.Question `json:"questions"`
	}
	w = do(t, g, http.MethodGet, "/api/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Questions, 3)
	assert.Equal(t, "third", out.Questions[0].Content)
	assert.Equal(t, "first", out.Questions[2].Content)

	w = do(t, g, http.MethodGet, "/api/questions?status=archived", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "second", out.Questions[0].Content)

	w = do(t, g, http.MethodGet, "/api/questions?status=done", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status value", decode(t, w).Error)
}

func TestQuestionHandler_BadInput(t *testing.T) {
	svc := service.NewMemoryService()
	g := newEngine(svc, allow)
	q, err := svc.Submit(context.Background(), "Hello there")
	require.NoError(t, err)
	path := fmt.Sprintf("/api/questions/%d", q.ID)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		w := do(t, g, method, "/api/questions/abc", `{"status":"answered"}`)
		require.Equal(t, http.StatusBadRequest, w.Code, method)
		assert.Equal(t, "Invalid ID format", decode(t, w).Error)
	}

	w := do(t, g, http.MethodPatch, path, `{"status":"closed"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status value", decode(t, w).Error)

	w = do(t, g, http.MethodPatch, path, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, g, http.MethodPatch, "/api/questions/999", `{"status":"answered"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	// deleting a missing question is reported as a delete failure
	w = do(t, g, http.MethodDelete, "/api/questions/999", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to delete question", decode(t, w).Error)
}

func TestQuestionHandler_AdminRoutesUseSessionGuard(t *testing.T) {
	g := newEngine(service.NewMemoryService(), deny)

	w := do(t, g, http.MethodPost, "/api/questions", `{"content":"public"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/questions"},
		{http.MethodGet, "/api/questions/1"},
		{http.MethodPatch, "/api/questions/1"},
		{http.MethodDelete, "/api/questions/1"},
	} {
		w := do(t, g, tc.method, tc.path, `{"status":"answered"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}

// brokenRepo fails every call, standing in for an unreachable database.
type brokenRepo struct{}

var errDown = errors.New("connection reset")

func (brokenRepo) Create(context.Context, *question.Question) error { return errDown }
func (brokenRepo) Get(context.Context, int64) (*question.Question, error) {
	return nil, errDown
}
func (brokenRepo) List(context.Context, question.Filter) ([]*question.Question, error) {
	return nil, errDown
}
func (brokenRepo) UpdateStatus(context.Context, int64, question.Status, time.Time) (*question.Question, error) {
	return nil, errDown
}
func (brokenRepo) Delete(context.Context, int64) error { return errDown }
func (brokenRepo) Ping(context.Context) error          { return errDown }

func TestQuestionHandler_StoreFailuresAreHidden(t *testing.T) {
	g := newEngine(service.New(brokenRepo{}), allow)

	cases := []struct {
		method, path, body, want string
	}{
		{http.MethodPost, "/api/questions", `{"content":"hello"}`, "Failed to submit question"},
		{http.MethodGet, "/api/questions", "", "Failed to fetch questions"},
		{http.MethodGet, "/api/questions/1", "", "Failed to fetch question"},
		{http.MethodPatch, "/api/questions/1", `{"status":"answered"}`, "Failed to update question"},
		{http.MethodDelete, "/api/questions/1", "", "Failed to delete question"},
	}
	for _, tc := range cases {
		w := do(t, g, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusInternalServerError, w.Code, tc.method+" "+tc.path)
		assert.Equal(t, tc.want, decode(t, w).Error)
		assert.NotContains(t, w.Body.String(), errDown.Error())
	}
}
