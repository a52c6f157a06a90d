package models

import "time"

// Account is a learner profile as seen by the session and display layers.
// It never carries a credential.
type Account struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	Avatar        string        `json:"avatar,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	LearningStyle LearningStyle `json:"learningStyle,omitempty"`
	XP            int           `json:"xp"`
	Level         int           `json:"level"`
	Streak        int           `json:"streak"`
	LastLoginDate time.Time     `json:"lastLoginDate"`
	Badges        []Badge       `json:"badges"`
}

// Badge is an unlocked achievement
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// StoredAccount is the persisted form of an account, credential included
type StoredAccount struct {
	Account
	Credential string `json:"password"`
}

// Public returns a copy of the account with the credential dropped
func (s StoredAccount) Public() Account {
	a := s.Account
	a.Badges = append([]Badge{}, s.Badges...)
	return a
}

// AccountPatch holds the fields a session patch may overwrite.
// Nil fields are left untouched.
type AccountPatch struct {
	Name          *string        `json:"name,omitempty"`
	Avatar        *string        `json:"avatar,omitempty"`
	LearningStyle *LearningStyle `json:"learningStyle,omitempty"`
	XP            *int           `json:"xp,omitempty" validate:"omitempty,min=0"`
	Streak        *int           `json:"streak,omitempty" validate:"omitempty,min=0"`
	LastLoginDate *time.Time     `json:"lastLoginDate,omitempty"`
	Badges        []Badge        `json:"badges,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p AccountPatch) IsEmpty() bool {
	return p.Name == nil && p.Avatar == nil && p.LearningStyle == nil && p.XP == nil &&
		p.Streak == nil && p.LastLoginDate == nil && p.Badges == nil
}
