package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"learnmate/internal/models"
	"learnmate/internal/repository"
	"learnmate/internal/security"
	"learnmate/internal/validation"
)

// AccountService registers and authenticates accounts
type AccountService struct {
	accounts *repository.AccountRepository
	verifier security.CredentialVerifier

	// mu serializes the read-modify-write of the accounts collection
	mu  sync.Mutex
	now func() time.Time
}

func NewAccountService(accounts *repository.AccountRepository, verifier security.CredentialVerifier) *AccountService {
	return &AccountService{
		accounts: accounts,
		verifier: verifier,
		now:      time.Now,
	}
}

type registerInput struct {
	Email      string `json:"email" validate:"notblank,email"`
	Credential string `json:"password" validate:"notblank"`
	Name       string `json:"name" validate:"notblank"`
}

// Register creates an account. Emails are matched exactly, case included.
func (s *AccountService) Register(ctx context.Context, email, credential, name string) (models.Account, error) {
	if err := validation.Struct(registerInput{Email: email, Credential: credential, Name: name}); err != nil {
		return models.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return models.Account{}, ErrDuplicateEmail
	}

	sealed, err := s.verifier.Seal(credential)
	if err != nil {
		return models.Account{}, err
	}

	now := s.now()
	stored := models.StoredAccount{
		Account: models.Account{
			ID:            security.NewID(),
			Email:         email,
			Name:          name,
			CreatedAt:     now,
			XP:            0,
			Level:         1,
			Streak:        1,
			LastLoginDate: now,
			Badges:        []models.Badge{},
		},
		Credential: sealed,
	}
	if err := s.accounts.Add(ctx, stored); err != nil {
		return models.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return stored.Public(), nil
}

// Authenticate returns the account matching email whose credential verifies
func (s *AccountService) Authenticate(ctx context.Context, email, credential string) (models.Account, error) {
	stored, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to look up account: %w", err)
	}
	if stored == nil || !s.verifier.Verify(stored.Credential, credential) {
		return models.Account{}, ErrInvalidCredentials
	}
	return stored.Public(), nil
}

// Sync writes the profile fields of account back to the collection.
// Accounts missing from the collection are ignored.
func (s *AccountService) Sync(ctx context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accounts.UpdateProfile(ctx, account); err != nil {
		return fmt.Errorf("failed to sync account: %w", err)
	}
	return nil
}
