package handlers

import (
	"net/http"
	"strings"
	"sync"

	"learnmate/internal/lessons"
	"learnmate/internal/logger"
	"learnmate/internal/validation"
)

// QuizHandler runs the kinesthetic quiz for the current topic
type QuizHandler struct {
	mu    sync.Mutex
	topic string
	quiz  *lessons.Quiz
	log   *logger.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(log *logger.Logger) *QuizHandler {
	return &QuizHandler{log: log}
}

type quizResponse struct {
	Topic string            `json:"topic"`
	State lessons.QuizState `json:"state"`
}

type answerRequest struct {
	Option *int `json:"option"`
}

type answerResponse struct {
	Result lessons.AnswerResult `json:"result"`
	State  lessons.QuizState    `json:"state"`
}

// Get returns the quiz for ?topic=, starting a new one when the topic changes
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		respondWithError(w, h.log, validation.Required("topic"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.quiz == nil || h.topic != topic {
		quiz, err := lessons.NewQuiz(lessons.Kinesthetic(topic))
		if err != nil {
			respondWithError(w, h.log, err)
			return
		}
		h.quiz, h.topic = quiz, topic
	}
	respondJSON(w, http.StatusOK, quizResponse{Topic: h.topic, State: h.quiz.State()})
}

// Answer submits an option for the current question
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Option == nil {
		respondWithError(w, h.log, validation.Required("option"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireQuiz(w) {
		return
	}

	result, err := h.quiz.Answer(*req.Option)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, answerResponse{Result: result, State: h.quiz.State()})
}

func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireQuiz(w) {
		return
	}
	h.quiz.Next()
	respondJSON(w, http.StatusOK, quizResponse{Topic: h.topic, State: h.quiz.State()})
}

func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireQuiz(w) {
		return
	}
	h.quiz.Reset()
	respondJSON(w, http.StatusOK, quizResponse{Topic: h.topic, State: h.quiz.State()})
}

// requireQuiz must be called with mu held
func (h *QuizHandler) requireQuiz(w http.ResponseWriter) bool {
	if h.quiz == nil {
		respondWithError(w, h.log, lessons.ErrNoQuestions)
		return false
	}
	return true
}
