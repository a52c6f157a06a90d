package models

import "time"

// LearningStyle is the self-reported preference that selects a lesson renderer
type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
)

// LearningStyles lists the supported styles in display order
var LearningStyles = []LearningStyle{StyleVisual, StyleAuditory, StyleKinesthetic}

// Valid reports whether s is one of the supported styles
func (s LearningStyle) Valid() bool {
	for _, style := range LearningStyles {
		if s == style {
			return true
		}
	}
	return false
}

// LessonSession identifies one rendering of a lesson for a topic.
// ID increases monotonically and keys the one-time XP award.
type LessonSession struct {
	ID        int64         `json:"id"`
	Topic     string        `json:"topic"`
	Style     LearningStyle `json:"style"`
	StartedAt time.Time     `json:"startedAt"`
}

// StudyRoom is a named group studying a topic together
type StudyRoom struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Topic        string    `json:"topic"`
	Participants []string  `json:"participants"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	IsActive     bool      `json:"isActive"`
}

// HasParticipant reports whether accountID already joined the room
func (r *StudyRoom) HasParticipant(accountID string) bool {
	for _, p := range r.Participants {
		if p == accountID {
			return true
		}
	}
	return false
}

// Doubt is a question asked about a topic and its templated answer
type Doubt struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	TopicID    string    `json:"topicId"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"createdAt"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// Bookmark remembers the last topic and style the learner saved
type Bookmark struct {
	Topic string        `json:"topic"`
	Style LearningStyle `json:"style"`
}
