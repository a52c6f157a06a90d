package security

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialVerifiers(t *testing.T) {
	tests := []struct {
		name     string
		verifier CredentialVerifier
	}{
		{"plaintext", PlaintextVerifier{}},
		{"bcrypt", BcryptVerifier{Cost: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := tt.verifier.Seal("hunter2")
			require.NoError(t, err)

			assert.True(t, tt.verifier.Verify(sealed, "hunter2"))
			assert.False(t, tt.verifier.Verify(sealed, "hunter3"))
			assert.False(t, tt.verifier.Verify(sealed, ""))
		})
	}
}

func TestPlaintextSealIsIdentity(t *testing.T) {
	sealed, err := PlaintextVerifier{}.Seal("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", sealed)
}

func TestNewCredentialVerifier(t *testing.T) {
	v, err := NewCredentialVerifier("")
	require.NoError(t, err)
	assert.IsType(t, PlaintextVerifier{}, v)

	v, err = NewCredentialVerifier("BCRYPT")
	require.NoError(t, err)
	assert.IsType(t, BcryptVerifier{}, v)

	_, err = NewCredentialVerifier("rot13")
	assert.Error(t, err)
}

func TestShareSignerRoundTrip(t *testing.T) {
	signer := NewShareSigner("s3cret", time.Hour)

	token, err := signer.Sign("Newton's laws", "visual")
	require.NoError(t, err)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Newton's laws", claims.Topic)
	assert.Equal(t, "visual", claims.Style)
}

func TestShareSignerRejectsBadTokens(t *testing.T) {
	signer := NewShareSigner("s3cret", time.Hour)
	token, err := signer.Sign("optics", "auditory")
	require.NoError(t, err)

	other := NewShareSigner("different", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidShareToken)

	_, err = signer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidShareToken)

	expired := NewShareSigner("s3cret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Sign("optics", "auditory")
	require.NoError(t, err)
	_, err = signer.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidShareToken)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "clients are limited independently")

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.2.3.4"), "tokens refill after the window")
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.3")
	assert.Equal(t, "203.0.113.7", GetClientIP(r))
}

func TestNewIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
	assert.Len(t, NewID(), 36)
}
