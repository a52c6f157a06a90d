// Package notify tells learners about account milestones.
package notify

import (
	"context"

	"learnmate/internal/logger"
	"learnmate/internal/models"
)

// Notifier delivers milestone messages. Implementations must not block for long.
type Notifier interface {
	Welcome(ctx context.Context, account models.Account) error
	LevelUp(ctx context.Context, account models.Account, level int) error
}

// LogNotifier records notifications in the application log
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("component", "notify")}
}

func (n *LogNotifier) Welcome(_ context.Context, account models.Account) error {
	n.log.Info("welcome", "account_id", account.ID, "name", account.Name)
	return nil
}

func (n *LogNotifier) LevelUp(_ context.Context, account models.Account, level int) error {
	n.log.Info("level up", "account_id", account.ID, "level", level, "xp", account.XP)
	return nil
}

// Multi fans a notification out to several notifiers, returning the first error
type Multi []Notifier

func (m Multi) Welcome(ctx context.Context, account models.Account) error {
	var first error
	for _, n := range m {
		if err := n.Welcome(ctx, account); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) LevelUp(ctx context.Context, account models.Account, level int) error {
	var first error
	for _, n := range m {
		if err := n.LevelUp(ctx, account, level); err != nil && first == nil {
			first = err
		}
	}
	return first
}
