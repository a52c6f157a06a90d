package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"learnmate/internal/audio"
	"learnmate/internal/flashcards"
	"learnmate/internal/lessons"
	"learnmate/internal/logger"
	"learnmate/internal/service"
	"learnmate/internal/validation"
)

// APIError is the JSON error body
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is checked in order with errors.Is
var errorMappings = []errorMapping{
	{service.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrNoActiveSession, http.StatusUnauthorized, "no_active_session"},
	{service.ErrMissingRequiredInput, http.StatusBadRequest, "missing_required_input"},
	{service.ErrUnknownStyle, http.StatusBadRequest, "unknown_style"},
	{service.ErrStyleNotSelected, http.StatusConflict, "style_not_selected"},
	{service.ErrLessonNotFound, http.StatusNotFound, "lesson_not_found"},
	{service.ErrRoomNotFound, http.StatusNotFound, "room_not_found"},
	{service.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{lessons.ErrInvalidOption, http.StatusBadRequest, "invalid_option"},
	{lessons.ErrNoQuestions, http.StatusNotFound, "no_questions"},
	{lessons.ErrSectionNotFound, http.StatusNotFound, "section_not_found"},
	{flashcards.ErrCardNotFound, http.StatusNotFound, "card_not_found"},
	{audio.ErrDisabled, http.StatusServiceUnavailable, "speech_not_supported"},
}

// fixedMessages replaces err.Error() in the body for these targets
var fixedMessages = map[error]string{
	service.ErrNoActiveSession: ErrUnauthorized,
	audio.ErrDisabled:          ErrSpeechUnsupported,
}

// respondWithError maps err to a status and JSON body. Unmapped errors are
// logged and reported as internal errors.
func respondWithError(w http.ResponseWriter, log *logger.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			body := APIError{Code: m.code, Message: err.Error()}
			var verr *validation.Error
			if errors.As(err, &verr) {
				body.Details = verr.Fields
			}
			if msg, ok := fixedMessages[m.target]; ok {
				body.Message = msg
			}
			respondJSON(w, m.status, body)
			return
		}
	}

	log.Error("request failed", "error", err)
	respondJSON(w, http.StatusInternalServerError, APIError{Code: "internal", Message: ErrInternalServerError})
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, APIError{Code: "invalid_json", Message: ErrInvalidJSON})
		return false
	}
	return true
}
