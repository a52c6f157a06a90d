package repository

import (
	"context"

	"learnmate/internal/models"
)

// AccountRepository owns the collection of registered accounts
type AccountRepository struct {
	kv KV
}

func NewAccountRepository(kv KV) *AccountRepository {
	return &AccountRepository{kv: kv}
}

// List returns every stored account, credentials included
func (r *AccountRepository) List(ctx context.Context) ([]models.StoredAccount, error) {
	var accounts []models.StoredAccount
	if _, err := getJSON(ctx, r.kv, KeyAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindByEmail returns the account whose email matches exactly, or nil
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.StoredAccount, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}
	return nil, nil
}

// Add appends an account to the collection
func (r *AccountRepository) Add(ctx context.Context, account models.StoredAccount) error {
	accounts, err := r.List(ctx)
	if err != nil {
		return err
	}
	return setJSON(ctx, r.kv, KeyAccounts, append(accounts, account))
}

// UpdateProfile overwrites the non-credential fields of the account with the
// same ID. It reports false when no such account is stored.
func (r *AccountRepository) UpdateProfile(ctx context.Context, account models.Account) (bool, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range accounts {
		if accounts[i].ID == account.ID {
			accounts[i].Account = account
			return true, setJSON(ctx, r.kv, KeyAccounts, accounts)
		}
	}
	return false, nil
}
