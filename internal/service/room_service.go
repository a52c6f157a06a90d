package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"learnmate/internal/logger"
	"learnmate/internal/metrics"
	"learnmate/internal/models"
	"learnmate/internal/repository"
	"learnmate/internal/security"
	"learnmate/internal/validation"
)

// RoomService manages study rooms for the active account
type RoomService struct {
	rooms    *repository.RoomRepository
	sessions *SessionService
	metrics  *metrics.Metrics
	log      *logger.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewRoomService(rooms *repository.RoomRepository, sessions *SessionService, m *metrics.Metrics, log *logger.Logger) *RoomService {
	return &RoomService{
		rooms:    rooms,
		sessions: sessions,
		metrics:  m,
		log:      log.With("service", "rooms"),
		now:      time.Now,
	}
}

type createRoomInput struct {
	Name  string `json:"name" validate:"notblank,max=100"`
	Topic string `json:"topic" validate:"notblank,max=200"`
}

// Create opens a room with the active account as its first participant
func (s *RoomService) Create(ctx context.Context, name, topic string) (models.StudyRoom, error) {
	current := s.sessions.Current()
	if current == nil {
		return models.StudyRoom{}, ErrNoActiveSession
	}

	input := createRoomInput{Name: strings.TrimSpace(name), Topic: strings.TrimSpace(topic)}
	if err := validation.Struct(input); err != nil {
		return models.StudyRoom{}, err
	}

	room := models.StudyRoom{
		ID:           security.NewID(),
		Name:         input.Name,
		Topic:        input.Topic,
		Participants: []string{current.ID},
		CreatedBy:    current.ID,
		CreatedAt:    s.now(),
		IsActive:     true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rooms.Save(ctx, room); err != nil {
		return models.StudyRoom{}, fmt.Errorf("failed to create room: %w", err)
	}

	s.metrics.RoomsCreated.Inc()
	s.log.Info("room created", "room_id", room.ID, "account_id", current.ID)
	return room, nil
}

// Join adds the active account to the room. Joining twice is harmless.
func (s *RoomService) Join(ctx context.Context, roomID string) (models.StudyRoom, error) {
	current := s.sessions.Current()
	if current == nil {
		return models.StudyRoom{}, ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.rooms.Find(ctx, roomID)
	if err != nil {
		return models.StudyRoom{}, fmt.Errorf("failed to load room: %w", err)
	}
	if room == nil {
		return models.StudyRoom{}, ErrRoomNotFound
	}
	if room.HasParticipant(current.ID) {
		return *room, nil
	}

	room.Participants = append(room.Participants, current.ID)
	if err := s.rooms.Save(ctx, *room); err != nil {
		return models.StudyRoom{}, fmt.Errorf("failed to join room: %w", err)
	}
	return *room, nil
}

func (s *RoomService) List(ctx context.Context) ([]models.StudyRoom, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []models.StudyRoom{}
	}
	return rooms, nil
}
