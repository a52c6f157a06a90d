package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"learnmate/internal/gamification"
	"learnmate/internal/models"
	"learnmate/internal/repository"
	"learnmate/internal/validation"
)

// SessionService holds the single active account and its persisted mirror
type SessionService struct {
	mirror   *repository.SessionRepository
	accounts *AccountService

	mu     sync.RWMutex
	active *models.Account
	now    func() time.Time
}

func NewSessionService(mirror *repository.SessionRepository, accounts *AccountService) *SessionService {
	return &SessionService{
		mirror:   mirror,
		accounts: accounts,
		now:      time.Now,
	}
}

// Restore reloads the mirrored account, advancing its streak for today and
// stamping the login time. It returns nil when no account was mirrored.
func (s *SessionService) Restore(ctx context.Context) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.mirror.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if account == nil {
		s.active = nil
		return nil, nil
	}

	now := s.now()
	account.Streak = gamification.ReconcileStreak(account.LastLoginDate, now, account.Streak)
	account.LastLoginDate = now
	if account.Badges == nil {
		account.Badges = []models.Badge{}
	}

	if err := s.persist(ctx, *account); err != nil {
		return nil, err
	}
	s.active = account
	return copyAccount(account), nil
}

// Establish makes account the active one
func (s *SessionService) Establish(ctx context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mirror.Save(ctx, account); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.active = copyAccount(&account)
	return nil
}

// Clear ends the active session
func (s *SessionService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	if err := s.mirror.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Patch overwrites the provided fields of the active account. The level is
// re-derived whenever xp changes.
func (s *SessionService) Patch(ctx context.Context, patch models.AccountPatch) (models.Account, error) {
	if err := validation.Struct(patch); err != nil {
		return models.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return models.Account{}, ErrNoActiveSession
	}

	updated := *copyAccount(s.active)
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Avatar != nil {
		updated.Avatar = *patch.Avatar
	}
	if patch.LearningStyle != nil {
		updated.LearningStyle = *patch.LearningStyle
	}
	if patch.XP != nil {
		updated.XP = *patch.XP
		updated.Level = gamification.LevelForXP(updated.XP)
	}
	if patch.Streak != nil {
		updated.Streak = *patch.Streak
	}
	if patch.LastLoginDate != nil {
		updated.LastLoginDate = *patch.LastLoginDate
	}
	if patch.Badges != nil {
		updated.Badges = append([]models.Badge{}, patch.Badges...)
	}

	if err := s.persist(ctx, updated); err != nil {
		return models.Account{}, err
	}
	s.active = &updated
	return *copyAccount(&updated), nil
}

// Current returns a copy of the active account, or nil
func (s *SessionService) Current() *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAccount(s.active)
}

func (s *SessionService) persist(ctx context.Context, account models.Account) error {
	if err := s.mirror.Save(ctx, account); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return s.accounts.Sync(ctx, account)
}

func copyAccount(a *models.Account) *models.Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Badges = append([]models.Badge{}, a.Badges...)
	return &c
}
