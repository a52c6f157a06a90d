package handlers

import (
	"net/http"

	"learnmate/internal/logger"
	"learnmate/internal/service"
)

// RoomHandler handles study room requests
type RoomHandler struct {
	roomService *service.RoomService
	log         *logger.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{roomService: roomService, log: log}
}

type createRoomRequest struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.List(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	room, err := h.roomService.Create(r.Context(), req.Name, req.Topic)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomService.Join(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}
