package repository

import (
	"context"
	"strconv"

	"learnmate/internal/models"
)

// maxAwardedLessons bounds the remembered awarded lesson ids
const maxAwardedLessons = 200

// LessonRepository tracks lesson sessions and which of them already paid out XP
type LessonRepository struct {
	kv KV
}

func NewLessonRepository(kv KV) *LessonRepository {
	return &LessonRepository{kv: kv}
}

// NextID returns the next lesson session id. Ids start at 1 and never repeat.
func (r *LessonRepository) NextID(ctx context.Context) (int64, error) {
	var seq int64
	if v, ok, err := r.kv.Get(ctx, KeyLessonSeq); err != nil {
		return 0, err
	} else if ok {
		seq, _ = strconv.ParseInt(v, 10, 64)
	}
	seq++
	if err := r.kv.Set(ctx, KeyLessonSeq, strconv.FormatInt(seq, 10)); err != nil {
		return 0, err
	}
	return seq, nil
}

// Current returns the lesson session in progress, or nil
func (r *LessonRepository) Current(ctx context.Context) (*models.LessonSession, error) {
	var lesson models.LessonSession
	ok, err := getJSON(ctx, r.kv, KeyCurrentLesson, &lesson)
	if err != nil || !ok {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) SetCurrent(ctx context.Context, lesson models.LessonSession) error {
	return setJSON(ctx, r.kv, KeyCurrentLesson, lesson)
}

func (r *LessonRepository) awarded(ctx context.Context) ([]int64, error) {
	var ids []int64
	if _, err := getJSON(ctx, r.kv, KeyAwardedLessons, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// IsAwarded reports whether the lesson session was already completed
func (r *LessonRepository) IsAwarded(ctx context.Context, id int64) (bool, error) {
	ids, err := r.awarded(ctx)
	if err != nil {
		return false, err
	}
	for _, awarded := range ids {
		if awarded == id {
			return true, nil
		}
	}
	return false, nil
}

// MarkAwarded records id as completed
func (r *LessonRepository) MarkAwarded(ctx context.Context, id int64) error {
	ids, err := r.awarded(ctx)
	if err != nil {
		return err
	}
	ids = append(ids, id)
	if len(ids) > maxAwardedLessons {
		ids = ids[len(ids)-maxAwardedLessons:]
	}
	return setJSON(ctx, r.kv, KeyAwardedLessons, ids)
}
