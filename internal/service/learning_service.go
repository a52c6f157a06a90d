package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"learnmate/internal/gamification"
	"learnmate/internal/lessons"
	"learnmate/internal/logger"
	"learnmate/internal/metrics"
	"learnmate/internal/models"
	"learnmate/internal/notify"
	"learnmate/internal/repository"
	"learnmate/internal/security"
	"learnmate/internal/validation"
)

// dashboardRecentTopics is how many recent topics the dashboard shows
const dashboardRecentTopics = 5

// Completion is the outcome of finishing a lesson session
type Completion struct {
	LessonID         int64               `json:"lessonId"`
	Duplicate        bool                `json:"duplicate"`
	LessonsCompleted int                 `json:"lessonsCompleted"`
	TotalStudyTime   int                 `json:"totalStudyTime"`
	RecentTopics     []string            `json:"recentTopics"`
	XPAwarded        int                 `json:"xpAwarded"`
	Award            *gamification.Award `json:"award,omitempty"`
	Account          *models.Account     `json:"account,omitempty"`
}

// Dashboard summarizes the learner's progress
type Dashboard struct {
	Account          *models.Account        `json:"account"`
	Progress         *gamification.Progress `json:"progress"`
	RecentTopics     []string               `json:"recentTopics"`
	TotalStudyTime   int                    `json:"totalStudyTime"`
	LessonsCompleted int                    `json:"lessonsCompleted"`
	Bookmark         *models.Bookmark       `json:"bookmark"`
}

// LearningService drives style selection, lessons and their rewards
type LearningService struct {
	progress *repository.ProgressRepository
	lessons  *repository.LessonRepository
	sessions *SessionService
	signer   *security.ShareSigner
	notifier notify.Notifier
	metrics  *metrics.Metrics
	log      *logger.Logger
	baseURL  string

	// mu serializes lesson bookkeeping so an id is never awarded twice
	mu  sync.Mutex
	rng gamification.Roller
	now func() time.Time
}

type globalRoller struct{}

func (globalRoller) IntN(n int) int { return rand.IntN(n) }

func NewLearningService(
	progress *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	sessions *SessionService,
	signer *security.ShareSigner,
	notifier notify.Notifier,
	m *metrics.Metrics,
	log *logger.Logger,
	baseURL string,
) *LearningService {
	return &LearningService{
		progress: progress,
		lessons:  lessonRepo,
		sessions: sessions,
		signer:   signer,
		notifier: notifier,
		metrics:  m,
		log:      log.With("service", "learning"),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		rng:      globalRoller{},
		now:      time.Now,
	}
}

// SelectStyle stores the preferred learning style
func (s *LearningService) SelectStyle(ctx context.Context, style models.LearningStyle) error {
	if strings.TrimSpace(string(style)) == "" {
		return validation.Required("style")
	}
	if !style.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	if err := s.progress.SetLearningStyle(ctx, style); err != nil {
		return fmt.Errorf("failed to save learning style: %w", err)
	}

	if s.sessions.Current() != nil {
		if _, err := s.sessions.Patch(ctx, models.AccountPatch{LearningStyle: &style}); err != nil && !errors.Is(err, ErrNoActiveSession) {
			return err
		}
	}
	return nil
}

// CurrentStyle returns the stored style, or "" when none was chosen
func (s *LearningService) CurrentStyle(ctx context.Context) (models.LearningStyle, error) {
	style, err := s.progress.LearningStyle(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load learning style: %w", err)
	}
	if !style.Valid() {
		return "", nil
	}
	return style, nil
}

// StartLesson opens a new lesson session for topic in the stored style
func (s *LearningService) StartLesson(ctx context.Context, topic string) (models.LessonSession, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.LessonSession{}, validation.Required("topic")
	}

	style, err := s.CurrentStyle(ctx)
	if err != nil {
		return models.LessonSession{}, err
	}
	if style == "" {
		return models.LessonSession{}, ErrStyleNotSelected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.lessons.NextID(ctx)
	if err != nil {
		return models.LessonSession{}, fmt.Errorf("failed to allocate lesson id: %w", err)
	}
	lesson := models.LessonSession{ID: id, Topic: topic, Style: style, StartedAt: s.now()}

	if err := s.progress.SetCurrentTopic(ctx, topic); err != nil {
		return models.LessonSession{}, fmt.Errorf("failed to save current topic: %w", err)
	}
	if err := s.lessons.SetCurrent(ctx, lesson); err != nil {
		return models.LessonSession{}, fmt.Errorf("failed to save lesson: %w", err)
	}

	s.metrics.LessonsStarted.WithLabelValues(string(style)).Inc()
	s.log.Debug("lesson started", "lesson_id", id, "topic", topic, "style", style)
	return lesson, nil
}

// CurrentLesson returns the lesson in progress, or nil
func (s *LearningService) CurrentLesson(ctx context.Context) (*models.LessonSession, error) {
	return s.lessons.Current(ctx)
}

// CompleteLesson records the lesson as finished and grants XP to the active
// account. Completing the same lesson again changes nothing. The lesson is
// marked awarded only after every other write succeeds, so a failed
// completion can be retried.
func (s *LearningService) CompleteLesson(ctx context.Context, lessonID int64) (Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson, err := s.lessons.Current(ctx)
	if err != nil {
		return Completion{}, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil || lesson.ID != lessonID {
		return Completion{}, ErrLessonNotFound
	}

	awarded, err := s.lessons.IsAwarded(ctx, lessonID)
	if err != nil {
		return Completion{}, fmt.Errorf("failed to check lesson: %w", err)
	}
	if awarded {
		return Completion{LessonID: lessonID, Duplicate: true}, nil
	}

	result := Completion{LessonID: lessonID}
	if result.LessonsCompleted, err = s.progress.IncrementLessonsCompleted(ctx); err != nil {
		return Completion{}, err
	}
	if result.RecentTopics, err = s.progress.PushRecentTopic(ctx, lesson.Topic); err != nil {
		return Completion{}, fmt.Errorf("failed to update recent topics: %w", err)
	}

	minutes := int(s.now().Sub(lesson.StartedAt) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	if result.TotalStudyTime, err = s.progress.AddStudyTime(ctx, minutes); err != nil {
		return Completion{}, err
	}

	if current := s.sessions.Current(); current != nil {
		amount := gamification.RollAward(s.rng)
		award := gamification.AwardExperience(current.XP, current.Level, amount)
		account, err := s.sessions.Patch(ctx, models.AccountPatch{XP: &award.XP})
		if err != nil {
			return Completion{}, err
		}
		result.XPAwarded = amount
		result.Award = &award
		result.Account = &account
	}

	if err := s.lessons.MarkAwarded(ctx, lessonID); err != nil {
		return Completion{}, fmt.Errorf("failed to record lesson: %w", err)
	}
	s.metrics.LessonsCompleted.WithLabelValues(string(lesson.Style)).Inc()

	if result.Award == nil {
		return result, nil
	}
	s.metrics.XPAwarded.Add(float64(result.XPAwarded))
	if result.Award.LeveledUp {
		account := *result.Account
		s.metrics.LevelUps.Inc()
		s.log.Info("level up", "account_id", account.ID, "level", result.Award.Level)
		if err := s.notifier.LevelUp(ctx, account, result.Award.Level); err != nil {
			s.log.Warn("level up notification failed", "account_id", account.ID, "error", err)
		}
	}
	return result, nil
}

// Bookmark saves the current topic and style for later
func (s *LearningService) Bookmark(ctx context.Context) (models.Bookmark, error) {
	topic, err := s.progress.CurrentTopic(ctx)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("failed to load current topic: %w", err)
	}
	if topic == "" {
		return models.Bookmark{}, validation.Required("topic")
	}
	style, err := s.CurrentStyle(ctx)
	if err != nil {
		return models.Bookmark{}, err
	}

	b := models.Bookmark{Topic: topic, Style: style}
	if err := s.progress.SaveBookmark(ctx, b); err != nil {
		return models.Bookmark{}, fmt.Errorf("failed to save bookmark: %w", err)
	}
	return b, nil
}

// Dashboard collects the progress summary. Account and level progress are
// nil without an active session.
func (s *LearningService) Dashboard(ctx context.Context) (Dashboard, error) {
	recent, err := s.progress.RecentTopics(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load recent topics: %w", err)
	}
	if len(recent) > dashboardRecentTopics {
		recent = recent[:dashboardRecentTopics]
	}
	if recent == nil {
		recent = []string{}
	}

	total, err := s.progress.TotalStudyTime(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	completed, err := s.progress.LessonsCompleted(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	bookmark, err := s.progress.Bookmark(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Account:          s.sessions.Current(),
		RecentTopics:     recent,
		TotalStudyTime:   total,
		LessonsCompleted: completed,
		Bookmark:         bookmark,
	}
	if d.Account != nil {
		p := gamification.ProgressToNextLevel(d.Account.XP, d.Account.Level)
		d.Progress = &p
	}
	return d, nil
}

// AskDoubt answers a question about topic on behalf of the active account
func (s *LearningService) AskDoubt(ctx context.Context, topic, question string) (models.Doubt, error) {
	userID := ""
	if current := s.sessions.Current(); current != nil {
		userID = current.ID
	}
	if strings.TrimSpace(topic) == "" {
		stored, err := s.progress.CurrentTopic(ctx)
		if err != nil {
			return models.Doubt{}, err
		}
		topic = stored
	}

	doubt, err := lessons.AnswerDoubt(security.NewID(), userID, topic, question, s.now())
	if errors.Is(err, lessons.ErrEmptyQuestion) {
		return models.Doubt{}, validation.Required("question")
	}
	return doubt, err
}

// ShareLink returns a signed link that opens topic in style
func (s *LearningService) ShareLink(topic string, style models.LearningStyle) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", validation.Required("topic")
	}
	if !style.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	token, err := s.signer.Sign(topic, string(style))
	if err != nil {
		return "", err
	}
	return s.baseURL + "/share/" + token, nil
}

// OpenShare validates token, selects its style and starts its lesson
func (s *LearningService) OpenShare(ctx context.Context, token string) (models.LessonSession, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return models.LessonSession{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.SelectStyle(ctx, models.LearningStyle(claims.Style)); err != nil {
		return models.LessonSession{}, err
	}
	return s.StartLesson(ctx, claims.Topic)
}
