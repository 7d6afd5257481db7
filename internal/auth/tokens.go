package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Claims is the identity carried by a validated access token.
type Claims struct {
	UserID uuid.UUID
	Role   domain.UserRole
	Series string
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role   domain.UserRole `json:"role"`
	Series string          `json:"series,omitempty"`
}

// Validate runs after the registered claims have been checked by the parser.
func (c accessClaims) Validate() error {
	if !c.Role.IsValid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	if _, err := uuid.Parse(c.Subject); err != nil {
		return fmt.Errorf("subject: %w", err)
	}
	return nil
}

// JWTManager signs and verifies HS256 access tokens.
type JWTManager struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{key: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// IssueAccess signs an access token for u and returns it with its expiry.
func (m *JWTManager) IssueAccess(u *domain.User) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role:   u.Role,
		Series: u.Series,
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign access token: %w", err)
	}
	return signed, exp, nil
}

// ParseAccess verifies signature, issuer and expiry of token. Every failure
// wraps domain.ErrUnauthorized.
func (m *JWTManager) ParseAccess(token string) (Claims, error) {
	var c accessClaims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("auth: %v: %w", err, domain.ErrUnauthorized)
	}
	return Claims{UserID: uuid.MustParse(c.Subject), Role: c.Role, Series: c.Series}, nil
}

// NewRefreshToken returns a random opaque token and the hash that is stored
// in its place.
func NewRefreshToken() (raw, hash string) {
	raw = rand.Text()
	return raw, HashToken(raw)
}

// HashToken is the hex SHA-256 of a refresh token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
