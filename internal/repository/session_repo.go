package repository

import (
	"context"

	"learnmate/internal/models"
)

// SessionRepository mirrors the active account
type SessionRepository struct {
	kv KV
}

func NewSessionRepository(kv KV) *SessionRepository {
	return &SessionRepository{kv: kv}
}

// Load returns the mirrored account, or nil when there is none
func (r *SessionRepository) Load(ctx context.Context) (*models.Account, error) {
	var account models.Account
	ok, err := getJSON(ctx, r.kv, KeySessionAccount, &account)
	if err != nil || !ok {
		return nil, err
	}
	return &account, nil
}

func (r *SessionRepository) Save(ctx context.Context, account models.Account) error {
	return setJSON(ctx, r.kv, KeySessionAccount, account)
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, KeySessionAccount)
}
