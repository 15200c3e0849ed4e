package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pinboard/internal/auth"
	"pinboard/internal/handler"
	"pinboard/internal/middleware"
	"pinboard/internal/model"
	"pinboard/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *gin.Engine
	users    *MockUserRepository
	boards   *MockBoardRepository
	pins     *MockPinRepository
	comments *MockCommentRepository
	likes    *MockLikeRepository
	images   *MockImageStore
	trash    *MockDiscarder
	sessions *MockSessionStore
	tokens   *auth.Manager
}

// setupTest wires the real routes. user (and sess) stand in for what the
// session middleware would resolve; nil means an anonymous request.
func setupTest(user *model.User, sess *auth.Session) *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:    new(MockUserRepository),
		boards:   new(MockBoardRepository),
		pins:     new(MockPinRepository),
		comments: new(MockCommentRepository),
		likes:    new(MockLikeRepository),
		images:   new(MockImageStore),
		trash:    new(MockDiscarder),
		sessions: new(MockSessionStore),
		tokens:   auth.NewManager("test-secret", time.Hour),
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.UserIDKey, user.ID)
			c.Set(middleware.UserKey, user)
		}
		if sess != nil {
			c.Set(middleware.SessionKey, sess)
		}
		c.Next()
	})

	server.RegisterRoutes(r, server.Handlers{
		Pin:   handler.NewPinHandler(env.pins, env.boards, env.comments, env.likes, env.images, env.trash),
		Board: handler.NewBoardHandler(env.boards, env.pins, env.likes),
		User:  handler.NewUserHandler(env.users, env.pins, env.boards, env.likes, env.tokens, env.sessions, false),
		Media: handler.NewMediaHandler(env.images),
	})
	env.router = r
	return env
}

func (e *testEnv) assertExpectations(t *testing.T) {
	e.users.AssertExpectations(t)
	e.boards.AssertExpectations(t)
	e.pins.AssertExpectations(t)
	e.comments.AssertExpectations(t)
	e.likes.AssertExpectations(t)
	e.images.AssertExpectations(t)
	e.trash.AssertExpectations(t)
	e.sessions.AssertExpectations(t)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func newUser(username string) *model.User {
	return &model.User{ID: uuid.New(), Username: username, Email: username + "@example.com"}
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func findCookie(resp *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range resp.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashes returns the notices the response carries over to the next page.
func flashes(t *testing.T, resp *httptest.ResponseRecorder) []middleware.Message {
	t.Helper()
	cookie := findCookie(resp, middleware.MessagesCookie)
	if cookie == nil || cookie.Value == "" {
		return nil
	}
	msgs, err := middleware.DecodeMessages(cookie.Value)
	require.NoError(t, err)
	return msgs
}
