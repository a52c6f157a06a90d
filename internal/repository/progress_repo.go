package repository

import (
	"context"
	"fmt"
	"strconv"

	"learnmate/internal/models"
)

// MaxRecentTopics caps the recent topics list
const MaxRecentTopics = 10

// ProgressRepository holds the learner's device-level progress scalars
type ProgressRepository struct {
	kv KV
}

func NewProgressRepository(kv KV) *ProgressRepository {
	return &ProgressRepository{kv: kv}
}

// RecentTopics returns the recent topics, most recent first
func (r *ProgressRepository) RecentTopics(ctx context.Context) ([]string, error) {
	var topics []string
	if _, err := getJSONLenient(ctx, r.kv, KeyRecentTopics, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// PushRecentTopic puts topic at the head of the list unless it is already there
func (r *ProgressRepository) PushRecentTopic(ctx context.Context, topic string) ([]string, error) {
	topics, err := r.RecentTopics(ctx)
	if err != nil {
		return nil, err
	}
	if len(topics) > 0 && topics[0] == topic {
		return topics, nil
	}
	topics = append([]string{topic}, topics...)
	if len(topics) > MaxRecentTopics {
		topics = topics[:MaxRecentTopics]
	}
	return topics, setJSON(ctx, r.kv, KeyRecentTopics, topics)
}

// TotalStudyTime returns accumulated study minutes
func (r *ProgressRepository) TotalStudyTime(ctx context.Context) (int, error) {
	return r.getInt(ctx, KeyTotalStudyTime)
}

func (r *ProgressRepository) AddStudyTime(ctx context.Context, minutes int) (int, error) {
	return r.addInt(ctx, KeyTotalStudyTime, minutes)
}

// LessonsCompleted returns how many lessons were finished on this store
func (r *ProgressRepository) LessonsCompleted(ctx context.Context) (int, error) {
	return r.getInt(ctx, KeyLessonsDone)
}

func (r *ProgressRepository) IncrementLessonsCompleted(ctx context.Context) (int, error) {
	return r.addInt(ctx, KeyLessonsDone, 1)
}

func (r *ProgressRepository) CurrentTopic(ctx context.Context) (string, error) {
	v, _, err := r.kv.Get(ctx, KeyCurrentTopic)
	return v, err
}

func (r *ProgressRepository) SetCurrentTopic(ctx context.Context, topic string) error {
	return r.kv.Set(ctx, KeyCurrentTopic, topic)
}

func (r *ProgressRepository) LearningStyle(ctx context.Context) (models.LearningStyle, error) {
	v, _, err := r.kv.Get(ctx, KeyLearningStyle)
	return models.LearningStyle(v), err
}

func (r *ProgressRepository) SetLearningStyle(ctx context.Context, style models.LearningStyle) error {
	return r.kv.Set(ctx, KeyLearningStyle, string(style))
}

// Bookmark returns the saved topic and style, or nil when nothing was saved
func (r *ProgressRepository) Bookmark(ctx context.Context) (*models.Bookmark, error) {
	topic, ok, err := r.kv.Get(ctx, KeyLastTopic)
	if err != nil || !ok {
		return nil, err
	}
	style, _, err := r.kv.Get(ctx, KeyLastStyle)
	if err != nil {
		return nil, err
	}
	return &models.Bookmark{Topic: topic, Style: models.LearningStyle(style)}, nil
}

func (r *ProgressRepository) SaveBookmark(ctx context.Context, b models.Bookmark) error {
	if err := r.kv.Set(ctx, KeyLastTopic, b.Topic); err != nil {
		return err
	}
	return r.kv.Set(ctx, KeyLastStyle, string(b.Style))
}

// getInt treats a missing or unparsable value as zero
func (r *ProgressRepository) getInt(ctx context.Context, key string) (int, error) {
	v, ok, err := r.kv.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (r *ProgressRepository) addInt(ctx context.Context, key string, delta int) (int, error) {
	n, err := r.getInt(ctx, key)
	if err != nil {
		return 0, err
	}
	n += delta
	if err := r.kv.Set(ctx, key, strconv.Itoa(n)); err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", key, err)
	}
	return n, nil
}
