package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stitch-n-style/stitch-n-style-api/config"
)

// Principal kinds carried in the token's userType claim
const (
	PrincipalUser     = "user"
	PrincipalDesigner = "designer"
	PrincipalAdmin    = "admin"
)

// TokenClaims are the claims carried by marketplace-issued tokens
type TokenClaims struct {
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the HS256 tokens used by users, designers
// and the admin
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service from the application configuration
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    7 * 24 * time.Hour,
	}
}

// Issue creates a signed token for the given principal
func (s *TokenService) Issue(id uint, userType string) (string, error) {
	claims := TokenClaims{
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses a token, checks its signature and expiry, and returns the
// principal id and kind
func (s *TokenService) Verify(tokenString string) (uint, string, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid token subject: %w", err)
	}

	return uint(id), claims.UserType, nil
}
