package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when the token fails signature, issuer or
	// audience checks, or is otherwise malformed.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
	// ErrMissingEmailClaim is returned when a valid token carries no email.
	ErrMissingEmailClaim = errors.New("token does not contain an email claim")
)

// JWTConfig holds the signing secret and the issuer/audience pair every
// token must carry. It is loaded once at startup, validated, and passed by
// reference to the verifier.
type JWTConfig struct {
	SecretKey     string
	Issuer        string
	Audience      string
	TokenDuration time.Duration
}

// DefaultJWTConfig returns a default JWT configuration.
// In production, the secret key should be loaded from environment variables.
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:     "your-secret-key-change-in-production",
		Issuer:        "task-manager-api",
		Audience:      "task-manager-clients",
		TokenDuration: 2 * time.Hour,
	}
}

// Validate checks that all required configuration fields are set.
func (c JWTConfig) Validate() error {
	if c.SecretKey == "" {
		return errors.New("jwt config: secret key is required")
	}
	if c.Issuer == "" {
		return errors.New("jwt config: issuer is required")
	}
	if c.Audience == "" {
		return errors.New("jwt config: audience is required")
	}
	if c.TokenDuration <= 0 {
		return errors.New("jwt config: token duration must be positive")
	}
	return nil
}

// TokenClaims represents the custom claims carried by issued tokens.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 tokens. It holds no mutable state
// and is safe for concurrent use.
type JWTManager struct {
	config JWTConfig
}

// NewJWTManager creates a new JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{
		config: config,
	}
}

// IssueToken generates a signed token for the given user. Claims: subject
// (user id), email, jti, issuer, audience, issued-at and expiry.
func (m *JWTManager) IssueToken(userID, email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			Issuer:    m.config.Issuer,
			Audience:  jwt.ClaimStrings{m.config.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// VerifyToken verifies signature, issuer, audience and expiry, then checks
// for the email claim. leeway is the clock-skew tolerance applied to the
// time-based claims; callers on read paths pass zero.
func (m *JWTManager) VerifyToken(tokenString string, leeway time.Duration) (*TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithExpirationRequired(),
	}
	if leeway > 0 {
		opts = append(opts, jwt.WithLeeway(leeway))
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(m.config.SecretKey), nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Email == "" {
		return nil, ErrMissingEmailClaim
	}

	return claims, nil
}

// TokenDuration returns the token lifetime in seconds.
func (m *JWTManager) TokenDuration() int64 {
	return int64(m.config.TokenDuration.Seconds())
}
