package jwt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minKeyLen is the smallest decoded secret accepted for HS512.
const minKeyLen = 32

var (
	ErrMissingSecret = errors.New("jwt secret is empty")
	ErrInvalidSecret = errors.New("jwt secret must be base64 encoded and at least 32 bytes long")

	ErrMalformed            = errors.New("malformed token")
	ErrExpired              = errors.New("token expired")
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	ErrBadSignature         = errors.New("invalid token signature")
	ErrEmptyClaims          = errors.New("token claims are empty")
)

var signingMethod = jwt.SigningMethodHS512

type (
	Service struct {
		key      []byte
		lifetime time.Duration
		now      func() time.Time
	}
	Claims struct {
		Roles string `json:"roles"`
		jwt.RegisteredClaims
	}
	// Identity is what a valid token asserts about its bearer.
	Identity struct {
		Username string
		Roles    []string
	}
)

// New decodes the signing key once. Callers treat an error as fatal at startup.
func New(secret string, lifetime time.Duration) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	if len(key) < minKeyLen {
		return nil, ErrInvalidSecret
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("jwt lifetime must be positive, got %s", lifetime)
	}

	return &Service{key: key, lifetime: lifetime, now: time.Now}, nil
}

func (s *Service) Generate(identity string, roles []string) (string, error) {
	now := s.now()
	claims := Claims{
		Roles: strings.Join(roles, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	token := jwt.NewWithClaims(signingMethod, claims)

	return token.SignedString(s.key)
}

func (s *Service) Validate(tokenStr string) (*Identity, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, ErrEmptyClaims
	}

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc,
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.Subject == "" {
		return nil, ErrEmptyClaims
	}

	return &Identity{
		Username: claims.Subject,
		Roles:    splitRoles(claims.Roles),
	}, nil
}

func (s *Service) keyFunc(token *jwt.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != signingMethod.Alg() {
		return nil, ErrUnsupportedAlgorithm
	}
	return s.key, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return ErrUnsupportedAlgorithm
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrEmptyClaims
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

func splitRoles(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}
