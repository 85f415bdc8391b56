package auth

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/boticaplus/backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Actor is the authenticated identity attached to a request.
type Actor struct {
	UserID   string
	Username string
	Role     domain.UserRole
}

type customClaims struct {
	jwtlib.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Manager signs and verifies HS256 access tokens.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewManager(secret string, tokenTTL time.Duration) *Manager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &Manager{secret: []byte(secret), tokenTTL: tokenTTL}
}

// GenerateToken issues an access token for the user.
func (m *Manager) GenerateToken(user domain.User) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(m.tokenTTL)
	claims := customClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
		Username: user.Username,
		Role:     string(user.Role),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates a token and returns the actor it identifies.
func (m *Manager) ParseToken(tokenStr string) (Actor, error) {
	claims := &customClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Actor{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Actor{}, ErrInvalidToken
	}

	return Actor{
		UserID:   sub,
		Username: claims.Username,
		Role:     domain.UserRole(claims.Role),
	}, nil
}
