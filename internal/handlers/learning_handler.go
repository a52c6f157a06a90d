package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"learnmate/internal/audio"
	"learnmate/internal/lessons"
	"learnmate/internal/logger"
	"learnmate/internal/models"
	"learnmate/internal/service"
	"learnmate/internal/validation"
)

// LearningHandler serves style selection, lessons, doubts and the dashboard
type LearningHandler struct {
	learningService *service.LearningService
	ttsService      *audio.TTSService
	log             *logger.Logger
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(learningService *service.LearningService, ttsService *audio.TTSService, log *logger.Logger) *LearningHandler {
	return &LearningHandler{
		learningService: learningService,
		ttsService:      ttsService,
		log:             log,
	}
}

type styleRequest struct {
	Style models.LearningStyle `json:"style"`
}

type styleResponse struct {
	Style  models.LearningStyle   `json:"style"`
	Styles []models.LearningStyle `json:"styles"`
}

func (h *LearningHandler) GetStyle(w http.ResponseWriter, r *http.Request) {
	style, err := h.learningService.CurrentStyle(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, styleResponse{Style: style, Styles: models.LearningStyles})
}

func (h *LearningHandler) SelectStyle(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.learningService.SelectStyle(r.Context(), req.Style); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, styleResponse{Style: req.Style, Styles: models.LearningStyles})
}

type startLessonRequest struct {
	Topic string `json:"topic"`
}

// StartLesson opens a lesson session for a topic in the stored style
func (h *LearningHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	var req startLessonRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lesson, err := h.learningService.StartLesson(r.Context(), req.Topic)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, lesson)
}

func (h *LearningHandler) CurrentLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.learningService.CurrentLesson(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if lesson == nil {
		respondWithError(w, h.log, service.ErrLessonNotFound)
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}

// CompleteLesson finishes the lesson session named in the path
func (h *LearningHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, h.log, service.ErrLessonNotFound)
		return
	}
	completion, err := h.learningService.CompleteLesson(r.Context(), id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, completion)
}

func (h *LearningHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	bookmark, err := h.learningService.Bookmark(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, bookmark)
}

// Content renders the lesson for ?topic= in ?style=, defaulting to the stored style
func (h *LearningHandler) Content(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		respondWithError(w, h.log, validation.Required("topic"))
		return
	}
	style, err := h.resolveStyle(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	lesson, err := lessons.Render(style, topic)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}

type audioResponse struct {
	URL    string `json:"url"`
	Script string `json:"script"`
}

// Audio speaks the auditory lesson for ?topic=. With ?section=N only that
// section is rendered; otherwise the whole lesson.
func (h *LearningHandler) Audio(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		respondWithError(w, h.log, validation.Required("topic"))
		return
	}
	if !h.ttsService.Enabled() {
		respondWithError(w, h.log, audio.ErrDisabled)
		return
	}

	lesson := lessons.Auditory(topic)
	script := lesson.FullScript()
	prefix := "lesson_" + topic + "_full"

	if raw := r.URL.Query().Get("section"); raw != "" {
		section, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, h.log, fmt.Errorf("%w: section must be a number", service.ErrInvalidInput))
			return
		}
		if script, err = lesson.SectionScript(section); err != nil {
			respondWithError(w, h.log, err)
			return
		}
		prefix = fmt.Sprintf("lesson_%s_section_%d", topic, section)
	}

	filename, err := h.ttsService.GenerateAudioFile(r.Context(), script, prefix)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, audioResponse{URL: "/audio/" + filename, Script: script})
}

func (h *LearningHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.learningService.Dashboard(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

type doubtRequest struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
}

func (h *LearningHandler) AskDoubt(w http.ResponseWriter, r *http.Request) {
	var req doubtRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	doubt, err := h.learningService.AskDoubt(r.Context(), req.Topic, req.Question)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, doubt)
}

type shareRequest struct {
	Topic string               `json:"topic"`
	Style models.LearningStyle `json:"style"`
}

type shareResponse struct {
	URL string `json:"url"`
}

// Share returns a signed link to a topic and style
func (h *LearningHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Style == "" {
		style, err := h.learningService.CurrentStyle(r.Context())
		if err != nil {
			respondWithError(w, h.log, err)
			return
		}
		req.Style = style
	}

	link, err := h.learningService.ShareLink(req.Topic, req.Style)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, shareResponse{URL: link})
}

// OpenShare starts the lesson a share link points at
func (h *LearningHandler) OpenShare(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.learningService.OpenShare(r.Context(), r.PathValue("token"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}

func (h *LearningHandler) resolveStyle(r *http.Request) (models.LearningStyle, error) {
	style := models.LearningStyle(r.URL.Query().Get("style"))
	if style == "" {
		stored, err := h.learningService.CurrentStyle(r.Context())
		if err != nil {
			return "", err
		}
		if stored == "" {
			return "", service.ErrStyleNotSelected
		}
		return stored, nil
	}
	if !style.Valid() {
		return "", fmt.Errorf("%w: %q", service.ErrUnknownStyle, style)
	}
	return style, nil
}
