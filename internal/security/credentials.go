package security

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier turns a credential into its stored form and checks a
// presented credential against that form.
type CredentialVerifier interface {
	Seal(credential string) (string, error)
	Verify(stored, presented string) bool
}

// NewCredentialVerifier returns the verifier for a configured scheme
func NewCredentialVerifier(scheme string) (CredentialVerifier, error) {
	switch strings.ToLower(scheme) {
	case "", "plaintext":
		return PlaintextVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme: %s", scheme)
	}
}

// PlaintextVerifier stores credentials as given and compares them exactly.
// It reads accounts written by the browser client.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Seal(credential string) (string, error) {
	return credential, nil
}

func (PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptVerifier stores bcrypt hashes
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Seal(credential string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}
