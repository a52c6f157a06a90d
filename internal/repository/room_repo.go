package repository

import (
	"context"

	"learnmate/internal/models"
)

// RoomRepository stores study rooms
type RoomRepository struct {
	kv KV
}

func NewRoomRepository(kv KV) *RoomRepository {
	return &RoomRepository{kv: kv}
}

func (r *RoomRepository) List(ctx context.Context) ([]models.StudyRoom, error) {
	var rooms []models.StudyRoom
	if _, err := getJSON(ctx, r.kv, KeyStudyRooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Find returns the room with id, or nil
func (r *RoomRepository) Find(ctx context.Context, id string) (*models.StudyRoom, error) {
	rooms, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i], nil
		}
	}
	return nil, nil
}

// Save inserts the room or replaces the stored room with the same id
func (r *RoomRepository) Save(ctx context.Context, room models.StudyRoom) error {
	rooms, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range rooms {
		if rooms[i].ID == room.ID {
			rooms[i] = room
			return setJSON(ctx, r.kv, KeyStudyRooms, rooms)
		}
	}
	return setJSON(ctx, r.kv, KeyStudyRooms, append(rooms, room))
}
