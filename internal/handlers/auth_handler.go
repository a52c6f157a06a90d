package handlers

import (
	"net/http"

	"learnmate/internal/logger"
	"learnmate/internal/models"
	"learnmate/internal/service"
)

// AuthHandler handles signup, login and the active session
type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
	log            *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		log:            log,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers an account and signs it in
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.authService.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

// Login signs an existing account in
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session restores the mirrored account and returns it, or 401 when nobody
// is signed in
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	account, err := h.sessionService.Restore(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if account == nil {
		respondWithError(w, h.log, service.ErrNoActiveSession)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// PatchSession overwrites the provided fields of the active account
func (h *AuthHandler) PatchSession(w http.ResponseWriter, r *http.Request) {
	var patch models.AccountPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.LearningStyle != nil && !patch.LearningStyle.Valid() {
		respondWithError(w, h.log, service.ErrUnknownStyle)
		return
	}
	if patch.IsEmpty() {
		current := h.sessionService.Current()
		if current == nil {
			respondWithError(w, h.log, service.ErrNoActiveSession)
			return
		}
		respondJSON(w, http.StatusOK, current)
		return
	}

	account, err := h.sessionService.Patch(r.Context(), patch)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}
