package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnmate/internal/audio"
	"learnmate/internal/logger"
	"learnmate/internal/metrics"
	"learnmate/internal/notify"
	"learnmate/internal/repository"
	"learnmate/internal/security"
	"learnmate/internal/service"
)

type testServer struct {
	handler http.Handler
	startup *StartupStatus
}

func newTestServer(t *testing.T, loginRate int) *testServer {
	t.Helper()

	log := logger.Nop()
	m := metrics.New()
	kv := repository.NewMemoryKV()
	notifier := notify.NewLogNotifier(log)

	accounts := service.NewAccountService(repository.NewAccountRepository(kv), security.PlaintextVerifier{})
	sessions := service.NewSessionService(repository.NewSessionRepository(kv), accounts)
	auth := service.NewAuthService(accounts, sessions, notifier, m, log)
	learning := service.NewLearningService(
		repository.NewProgressRepository(kv),
		repository.NewLessonRepository(kv),
		sessions,
		security.NewShareSigner("test-secret", time.Hour),
		notifier,
		m,
		log,
		"http://localhost:8080",
	)
	rooms := service.NewRoomService(repository.NewRoomRepository(kv), sessions, m, log)

	limiter := security.NewRateLimiter(loginRate, time.Minute)
	t.Cleanup(limiter.Close)

	startup := NewStartupStatus()
	router := &Router{
		Middleware:     NewMiddleware(sessions, log, m, limiter),
		Startup:        startup,
		Auth:           NewAuthHandler(auth, sessions, log),
		Learning:       NewLearningHandler(learning, audio.NewTTSService(t.TempDir(), "http://127.0.0.1:0", false), log),
		Quiz:           NewQuizHandler(log),
		Flashcards:     NewFlashcardHandler(log),
		Rooms:          NewRoomHandler(rooms, log),
		MetricsHandler: m.Handler(),
	}
	return &testServer{handler: router.Handler(), startup: startup}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body APIError
	decode(t, rec, &body)
	return body.Code
}

func (s *testServer) signup(t *testing.T) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "ada@example.com", "password": "secret", "name": "Ada",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodGet, "/api/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no_active_session", errorCode(t, rec))

	srv.signup(t)

	rec = srv.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "ada@example.com", "password": "other", "name": "Ada",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_email", errorCode(t, rec))

	rec = srv.do(t, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var account map[string]interface{}
	decode(t, rec, &account)
	assert.Equal(t, "ada@example.com", account["email"])
	assert.NotContains(t, account, "password")

	rec = srv.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body APIError
	decode(t, rec, &body)
	assert.Equal(t, "no_active_session", body.Code)
	assert.Equal(t, ErrUnauthorized, body.Message)

	rec = srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, rec))

	rec = srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupValidationDetails(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPost, "/api/auth/signup", map[string]string{"email": "ada@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    string `json:"code"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "missing_required_input", body.Code)
	require.Len(t, body.Details, 2)
	assert.Equal(t, "password", body.Details[0].Field)
	assert.Equal(t, "name", body.Details[1].Field)
}

func TestInvalidJSON(t *testing.T) {
	srv := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", errorCode(t, rec))
}

func TestLoginRateLimit(t *testing.T) {
	srv := newTestServer(t, 2)
	creds := map[string]string{"email": "x@example.com", "password": "nope"}

	for i := 0; i < 2; i++ {
		rec := srv.do(t, http.MethodPost, "/api/auth/login", creds)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := srv.do(t, http.MethodPost, "/api/auth/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestPatchSession(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPatch, "/api/session", map[string]int{"xp": 10})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	srv.signup(t)
	rec = srv.do(t, http.MethodPatch, "/api/session", map[string]interface{}{"xp": 240, "avatar": "owl"})
	require.Equal(t, http.StatusOK, rec.Code)

	var account struct {
		XP     int    `json:"xp"`
		Level  int    `json:"level"`
		Avatar string `json:"avatar"`
	}
	decode(t, rec, &account)
	assert.Equal(t, 240, account.XP)
	assert.Equal(t, 3, account.Level)
	assert.Equal(t, "owl", account.Avatar)

	rec = srv.do(t, http.MethodPatch, "/api/session", map[string]string{"learningStyle": "smell"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/session", map[string]int{"xp": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", errorCode(t, rec))

	rec = srv.do(t, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &account)
	assert.Equal(t, 240, account.XP)
}

func TestLessonFlow(t *testing.T) {
	srv := newTestServer(t, 100)
	srv.signup(t)

	rec := srv.do(t, http.MethodPost, "/api/lessons", map[string]string{"topic": "Cells"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "style_not_selected", errorCode(t, rec))

	rec = srv.do(t, http.MethodPut, "/api/style", map[string]string{"style": "telepathic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_style", errorCode(t, rec))

	rec = srv.do(t, http.MethodPut, "/api/style", map[string]string{"style": "visual"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/lessons", map[string]string{"topic": "Cells"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var lesson struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &lesson)

	rec = srv.do(t, http.MethodPost, fmt.Sprintf("/api/lessons/%d/complete", lesson.ID+7), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, fmt.Sprintf("/api/lessons/%d/complete", lesson.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var completion struct {
		Duplicate bool `json:"duplicate"`
		XPAwarded int  `json:"xpAwarded"`
	}
	decode(t, rec, &completion)
	assert.False(t, completion.Duplicate)
	assert.GreaterOrEqual(t, completion.XPAwarded, 25)
	assert.Less(t, completion.XPAwarded, 75)

	rec = srv.do(t, http.MethodPost, fmt.Sprintf("/api/lessons/%d/complete", lesson.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &completion)
	assert.True(t, completion.Duplicate)

	rec = srv.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		RecentTopics     []string `json:"recentTopics"`
		LessonsCompleted int      `json:"lessonsCompleted"`
	}
	decode(t, rec, &dash)
	assert.Equal(t, []string{"Cells"}, dash.RecentTopics)
	assert.Equal(t, 1, dash.LessonsCompleted)

	rec = srv.do(t, http.MethodPost, "/api/lessons/bookmark", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLessonContent(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodGet, "/api/lessons/content?topic=Newton%27s+laws&style=kinesthetic", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lesson struct {
		Style     string        `json:"style"`
		Questions []interface{} `json:"questions"`
	}
	decode(t, rec, &lesson)
	assert.Equal(t, "kinesthetic", lesson.Style)
	assert.Len(t, lesson.Questions, 3)

	rec = srv.do(t, http.MethodGet, "/api/lessons/content?topic=Cells", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/lessons/content?style=visual", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAudioDisabled(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodGet, "/api/lessons/audio?topic=Cells", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body APIError
	decode(t, rec, &body)
	assert.Equal(t, ErrSpeechUnsupported, body.Message)
}

func TestQuizFlow(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPost, "/api/quiz/next", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/quiz?topic=Cells", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/quiz/answer", map[string]int{"option": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/quiz/answer", map[string]int{"option": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	var answer struct {
		Result struct {
			Accepted bool `json:"accepted"`
			Correct  bool `json:"correct"`
		} `json:"result"`
		State struct {
			Score int `json:"score"`
		} `json:"state"`
	}
	decode(t, rec, &answer)
	assert.True(t, answer.Result.Accepted)
	assert.True(t, answer.Result.Correct)
	assert.Equal(t, 1, answer.State.Score)

	rec = srv.do(t, http.MethodPost, "/api/quiz/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state struct {
		State struct {
			Index int `json:"index"`
		} `json:"state"`
	}
	decode(t, rec, &state)
	assert.Equal(t, 1, state.State.Index)

	rec = srv.do(t, http.MethodPost, "/api/quiz/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &state)
	assert.Equal(t, 0, state.State.Index)
}

func TestFlashcardFlow(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPost, "/api/flashcards/next", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/flashcards?topic=Cells", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Position int  `json:"position"`
		Total    int  `json:"total"`
		Flipped  bool `json:"flipped"`
	}
	rec = srv.do(t, http.MethodPost, "/api/flashcards/flip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	assert.True(t, view.Flipped)

	rec = srv.do(t, http.MethodPost, "/api/flashcards/prev", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	assert.Equal(t, 3, view.Position)
	assert.False(t, view.Flipped)

	rec = srv.do(t, http.MethodPost, "/api/flashcards/sideways", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/flashcards/2/favorite", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var card struct {
		IsFavorite bool `json:"isFavorite"`
	}
	decode(t, rec, &card)
	assert.True(t, card.IsFavorite)

	rec = srv.do(t, http.MethodPost, "/api/flashcards/99/favorite", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRooms(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPost, "/api/rooms", map[string]string{"name": "Club", "topic": "Cells"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	srv.signup(t)
	rec = srv.do(t, http.MethodPost, "/api/rooms", map[string]string{"name": "Club", "topic": "Cells"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var room struct {
		ID string `json:"id"`
	}
	decode(t, rec, &room)

	rec = srv.do(t, http.MethodPost, "/api/rooms/"+room.ID+"/join", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/rooms/nope/join", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rooms []interface{}
	decode(t, rec, &rooms)
	assert.Len(t, rooms, 1)
}

func TestShareLink(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPost, "/api/share", map[string]string{"topic": "Gravity", "style": "auditory"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var share struct {
		URL string `json:"url"`
	}
	decode(t, rec, &share)
	require.True(t, strings.HasPrefix(share.URL, "http://localhost:8080/share/"))

	rec = srv.do(t, http.MethodGet, strings.TrimPrefix(share.URL, "http://localhost:8080"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lesson struct {
		Topic string `json:"topic"`
		Style string `json:"style"`
	}
	decode(t, rec, &lesson)
	assert.Equal(t, "Gravity", lesson.Topic)
	assert.Equal(t, "auditory", lesson.Style)

	rec = srv.do(t, http.MethodGet, "/share/not-a-token", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDoubts(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPost, "/api/doubts", map[string]string{"topic": "Gravity"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/doubts", map[string]string{"topic": "Gravity", "question": "Why?"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var doubt struct {
		UserID string `json:"userId"`
	}
	decode(t, rec, &doubt)
	assert.Equal(t, "current-user", doubt.UserID)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	srv.startup.CompleteStep(StepStore)
	rec = srv.do(t, http.MethodGet, "/health", nil)
	var health struct {
		Ready    bool `json:"ready"`
		Progress int  `json:"progress"`
	}
	decode(t, rec, &health)
	assert.False(t, health.Ready)
	assert.Equal(t, 20, health.Progress)

	srv.startup.MarkReady()
	rec = srv.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	srv.signup(t)
	rec = srv.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "learnmate_signups_total 1")
	assert.Contains(t, rec.Body.String(), `route="POST /api/auth/signup"`)
}
