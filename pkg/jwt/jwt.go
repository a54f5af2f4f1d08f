package jwt

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const signingKeyInfo = "blog-backend session signing key"

var (
	ErrMissingSecret  = errors.New("auth secret must not be empty")
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims is the session payload carried in the bearer token.
// Subject holds the user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a validated session resolves to.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Manager signs and validates session tokens.
// The HMAC key is never the raw secret: it is derived with HKDF-SHA256(secret, salt).
type Manager struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager derives the signing key and returns a ready manager.
func NewManager(secret, salt, issuer string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	key, err := deriveKey(secret, salt)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	return &Manager{key: key, issuer: issuer, ttl: ttl, now: time.Now}, nil
}

func deriveKey(secret, salt string) ([]byte, error) {
	reader := hkdf.New(sha256.New, []byte(secret), []byte(salt), []byte(signingKeyInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	return key, nil
}

// GenerateAccessToken issues a token for the given identity.
func (m *Manager) GenerateAccessToken(id Identity) (string, error) {
	if id.ID == "" {
		return "", ErrMissingSubject
	}

	now := m.now()
	claims := Claims{
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// ValidateToken verifies signature, algorithm, issuer and expiry.
func (m *Manager) ValidateToken(tokenString string) (*Identity, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}
