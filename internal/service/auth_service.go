package service

import (
	"context"
	"errors"
	"time"

	"learnmate/internal/gamification"
	"learnmate/internal/logger"
	"learnmate/internal/metrics"
	"learnmate/internal/models"
	"learnmate/internal/notify"
)

// AuthService runs the signup, login and logout flows on top of the
// account store and the session state.
type AuthService struct {
	accounts *AccountService
	sessions *SessionService
	notifier notify.Notifier
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

func NewAuthService(accounts *AccountService, sessions *SessionService, notifier notify.Notifier, m *metrics.Metrics, log *logger.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		notifier: notifier,
		metrics:  m,
		log:      log.With("service", "auth"),
		now:      time.Now,
	}
}

// Signup registers an account and makes it the active session
func (s *AuthService) Signup(ctx context.Context, email, credential, name string) (models.Account, error) {
	account, err := s.accounts.Register(ctx, email, credential, name)
	if err != nil {
		return models.Account{}, err
	}
	if err := s.sessions.Establish(ctx, account); err != nil {
		return models.Account{}, err
	}

	s.metrics.Signups.Inc()
	s.log.Info("account registered", "account_id", account.ID)
	if err := s.notifier.Welcome(ctx, account); err != nil {
		s.log.Warn("welcome notification failed", "account_id", account.ID, "error", err)
	}
	return account, nil
}

// Login authenticates and makes the account the active session. The streak
// is carried forward to today.
func (s *AuthService) Login(ctx context.Context, email, credential string) (models.Account, error) {
	account, err := s.accounts.Authenticate(ctx, email, credential)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.metrics.Logins.WithLabelValues("failure").Inc()
		}
		return models.Account{}, err
	}

	now := s.now()
	account.Streak = gamification.ReconcileStreak(account.LastLoginDate, now, account.Streak)
	account.LastLoginDate = now

	if err := s.sessions.Establish(ctx, account); err != nil {
		return models.Account{}, err
	}
	if err := s.accounts.Sync(ctx, account); err != nil {
		return models.Account{}, err
	}

	s.metrics.Logins.WithLabelValues("success").Inc()
	s.log.Info("login", "account_id", account.ID, "streak", account.Streak)
	return account, nil
}

// Logout clears the active session
func (s *AuthService) Logout(ctx context.Context) error {
	if current := s.sessions.Current(); current != nil {
		s.log.Info("logout", "account_id", current.ID)
	}
	return s.sessions.Clear(ctx)
}
