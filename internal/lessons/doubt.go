package lessons

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"learnmate/internal/models"
)

// ErrEmptyQuestion is returned when a doubt has no question text
var ErrEmptyQuestion = errors.New("question is required")

// AnonymousUserID marks doubts asked without an active session
const AnonymousUserID = "current-user"

// AnswerDoubt produces the templated answer for question about topic
func AnswerDoubt(id, userID, topic, question string, now time.Time) (models.Doubt, error) {
	if strings.TrimSpace(question) == "" {
		return models.Doubt{}, ErrEmptyQuestion
	}
	if userID == "" {
		userID = AnonymousUserID
	}
	return models.Doubt{
		ID:       id,
		UserID:   userID,
		TopicID:  topic,
		Question: question,
		Answer: fmt.Sprintf("Based on the topic \"%s\", here's a detailed explanation: %s is an important concept that relates to the fundamental principles we've been discussing. "+
			"This involves understanding the core mechanisms and their practical applications in real-world scenarios.", topic, question),
		CreatedAt:  now,
		ResolvedAt: now,
	}, nil
}
