package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const shareIssuer = "learnmate"

// ErrInvalidShareToken is returned for tampered, expired or malformed links
var ErrInvalidShareToken = errors.New("invalid share token")

// ShareClaims carries the lesson a share link points at
type ShareClaims struct {
	jwt.RegisteredClaims
	Topic string `json:"topic"`
	Style string `json:"style"`
}

// ShareSigner signs and verifies lesson share tokens with HS256
type ShareSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewShareSigner(secret string, ttl time.Duration) *ShareSigner {
	return &ShareSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token for topic and style
func (s *ShareSigner) Sign(topic, style string) (string, error) {
	now := s.now()
	claims := ShareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   shareIssuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Topic: topic,
		Style: style,
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// Parse validates token and returns its claims
func (s *ShareSigner) Parse(token string) (*ShareClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(shareIssuer),
		jwt.WithTimeFunc(s.now),
	)
	claims := &ShareClaims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidShareToken
	}
	return claims, nil
}
