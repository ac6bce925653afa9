package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

const RoleAdmin = "admin"

type AuthConfig struct {
	Password     string // plaintext from env, hashed once on start
	PasswordHash string // bcrypt; wins over Password
	APIToken     string
	JWTSecret    string // random per process when empty
	TokenTTL     time.Duration
}

// AuthService guards the admin dashboard: a password login that issues a
// JWT, plus a static bearer token for scripts.
type AuthService struct {
	hash      []byte
	apiToken  []byte
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(cfg AuthConfig, logger *zap.Logger) (*AuthService, error) {
	s := &AuthService{
		apiToken: []byte(cfg.APIToken),
		ttl:      cfg.TokenTTL,
		logger:   logger,
		now:      time.Now,
	}
	if s.ttl <= 0 {
		s.ttl = 12 * time.Hour
	}

	switch {
	case cfg.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		s.hash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		s.hash = hash
	default:
		logger.Warn("No admin password configured, dashboard login is disabled")
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		logger.Warn("JWT_SECRET not set, using a random secret; sessions end on restart",
			zap.String("fingerprint", hex.EncodeToString(secret[:4])))
	}
	s.tokenAuth = jwtauth.New("HS256", secret, nil)

	return s, nil
}

// TokenAuth is used by the HTTP verifier middleware.
func (s *AuthService) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// Login checks the admin password and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, password string) (string, time.Time, error) {
	if len(s.hash) == 0 || password == "" {
		return "", time.Time{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		s.logger.Warn("Admin login failed")
		return "", time.Time{}, ErrUnauthorized
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": RoleAdmin,
	}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, expiresAt)

	_, token, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("Admin logged in", zap.Time("expires_at", expiresAt))
	return token, expiresAt, nil
}

// RoleFromClaims reads the role claim set by Login.
func RoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

// CheckAPIToken compares in constant time; an unset token never matches.
func (s *AuthService) CheckAPIToken(token string) bool {
	if len(s.apiToken) == 0 || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare(s.apiToken, []byte(token)) == 1
}
