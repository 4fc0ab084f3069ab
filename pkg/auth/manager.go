package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrTokenExpired = jwt.ErrTokenExpired

// Claims carried by every internal token. Subject is the principal id: the
// external identity subject for users, the username for admins.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager mints and parses signed, time-limited tokens for one key
// space. Separate instances are used for user and admin tokens so that
// tokens from one space never verify in the other.
type TokenManager interface {
	NewToken(subject, email, name string) (string, time.Duration, error)
	Parse(accessToken string) (*Claims, error)
	Role() string
}

type Manager struct {
	signingKey string
	tokenTTL   time.Duration
	role       string
}

func NewManager(signingKey string, tokenTTL time.Duration, role string) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}

	if tokenTTL == 0 {
		return nil, errors.New("empty token ttl")
	}

	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("unknown principal role %q", role)
	}

	return &Manager{
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
		role:       role,
	}, nil
}

func (m *Manager) Role() string {
	return m.role
}

func (m *Manager) NewToken(subject, email, name string) (string, time.Duration, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:  m.role,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	})

	signed, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return "", 0, errors.New("sign jwt failed")
	}

	return signed, m.tokenTTL, nil
}

// Parse verifies signature and expiry and returns the claims. It fails
// closed: malformed, expired and wrong-key tokens all return an error.
func (m *Manager) Parse(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.signingKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("error get claims from token")
	}

	return claims, nil
}
