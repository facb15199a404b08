package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the admin session payload. The token is the only credential
// artifact; nothing is stored server-side and logout merely drops the
// client's cookie.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies admin session tokens signed with HS256.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service with the given shared secret and
// validity window.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a session token for an authenticated admin, valid for the
// configured window starting now.
func (s *TokenService) Issue(username, role string) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a session token. Any malformed, expired or
// badly signed input yields ok=false; callers treat that as anonymous.
func (s *TokenService) Verify(token string) (Claims, bool) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, false
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Username == "" {
		return Claims{}, false
	}
	return *claims, true
}

// ApprovePermissions reports whether the session may approve payments.
// Every valid admin token currently can; the hook exists so tiered admin
// roles can be enforced later without touching call sites.
func ApprovePermissions(claims Claims) bool {
	return claims.Username != ""
}
