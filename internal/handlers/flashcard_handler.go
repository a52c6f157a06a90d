package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"learnmate/internal/flashcards"
	"learnmate/internal/logger"
	"learnmate/internal/service"
	"learnmate/internal/validation"
)

// FlashcardHandler serves the flashcard deck for the current topic
type FlashcardHandler struct {
	mu   sync.Mutex
	deck *flashcards.Deck
	log  *logger.Logger
	now  func() time.Time
}

// NewFlashcardHandler creates a new flashcard handler
func NewFlashcardHandler(log *logger.Logger) *FlashcardHandler {
	return &FlashcardHandler{log: log, now: time.Now}
}

type deckResponse struct {
	View  flashcards.View   `json:"view"`
	Cards []flashcards.Card `json:"cards"`
}

// Get returns the deck for ?topic=, generating a new one when the topic changes
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		respondWithError(w, h.log, validation.Required("topic"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.deck == nil || h.deck.Topic != topic {
		h.deck = flashcards.NewDeck(topic, h.now())
	}
	respondJSON(w, http.StatusOK, deckResponse{View: h.deck.View(), Cards: h.deck.Cards()})
}

// Move flips the current card or steps to the next or previous one
func (h *FlashcardHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.deck == nil {
		respondWithError(w, h.log, flashcards.ErrCardNotFound)
		return
	}

	var view flashcards.View
	switch r.PathValue("direction") {
	case "next":
		view = h.deck.Next()
	case "prev":
		view = h.deck.Prev()
	case "flip":
		view = h.deck.Flip()
	default:
		respondWithError(w, h.log, service.ErrInvalidInput)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Favorite toggles the favorite flag of the card named in the path
func (h *FlashcardHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.deck == nil {
		respondWithError(w, h.log, flashcards.ErrCardNotFound)
		return
	}
	card, err := h.deck.ToggleFavorite(r.PathValue("id"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}
