package utils

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the iss claim of every token this service signs
const Issuer = "investify-receiving"

// TokenKind separates access tokens from refresh tokens. A token of one kind
// is never accepted as the other.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

var (
	// ErrTokenKind is returned when a token of the wrong kind is presented
	ErrTokenKind = errors.New("token kind mismatch")
	// ErrTokenSubject is returned when the subject is not a user id
	ErrTokenSubject = errors.New("token subject is not a user id")
)

// OperatorClaims identify the operator at the receiving desk. Roles and
// permissions are copied from the user at login and checked per route.
type OperatorClaims struct {
	Kind        TokenKind `json:"kind"`
	UserID      uuid.UUID `json:"user_id,omitempty"`
	Email       string    `json:"email,omitempty"`
	Roles       []string  `json:"roles,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 operator tokens
type JWTManager struct {
	secretKey     []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewJWTManager(secret string, accessExpiry, refreshExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

// WithClock replaces the time source used for issuing and verifying
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

// GenerateAccessToken signs a short-lived token carrying the operator's roles
// and permissions
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, email string, roles, permissions []string) (string, error) {
	return m.sign(&OperatorClaims{
		Kind:             TokenKindAccess,
		UserID:           userID,
		Email:            email,
		Roles:            roles,
		Permissions:      permissions,
		RegisteredClaims: m.registered(userID, m.accessExpiry),
	})
}

// GenerateRefreshToken signs a token that only identifies the user. Roles are
// reloaded when it is exchanged.
func (m *JWTManager) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return m.sign(&OperatorClaims{
		Kind:             TokenKindRefresh,
		RegisteredClaims: m.registered(userID, m.refreshExpiry),
	})
}

// ValidateAccessToken verifies an access token and returns its claims
func (m *JWTManager) ValidateAccessToken(tokenString string) (*OperatorClaims, error) {
	claims, err := m.parse(tokenString, TokenKindAccess)
	if err != nil {
		return nil, err
	}
	if claims.UserID == uuid.Nil {
		claims.UserID, err = subject(claims)
		if err != nil {
			return nil, err
		}
	}
	return claims, nil
}

// ValidateRefreshToken verifies a refresh token and returns the user id
func (m *JWTManager) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := m.parse(tokenString, TokenKindRefresh)
	if err != nil {
		return uuid.Nil, err
	}
	return subject(claims)
}

func (m *JWTManager) registered(userID uuid.UUID, ttl time.Duration) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    Issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (m *JWTManager) sign(claims *OperatorClaims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", errors.Wrapf(err, "sign %s token", claims.Kind)
	}
	return signed, nil
}

func (m *JWTManager) parse(tokenString string, kind TokenKind) (*OperatorClaims, error) {
	claims := &OperatorClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s token", kind)
	}
	if claims.Kind != kind {
		return nil, errors.Wrapf(ErrTokenKind, "want %s, got %q", kind, claims.Kind)
	}
	return claims, nil
}

func subject(claims *OperatorClaims) (uuid.UUID, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrTokenSubject
	}
	return id, nil
}
