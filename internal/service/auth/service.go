package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"storefront-admin/internal/config"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

type Service interface {
	ValidateAccessToken(token string) (*Claims, error)
	IssueAccessToken(userID, email string, ttl time.Duration) (string, error)
	VerifyAPIKey(key string) error
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type service struct {
	cfg *config.Config
	now func() time.Time
}

func NewService(cfg *config.Config) Service {
	return &service{cfg: cfg, now: time.Now}
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) IssueAccessToken(userID, email string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyAPIKey checks key against the bcrypt hash configured for scheduled
// jobs. An unset hash disables key access entirely.
func (s *service) VerifyAPIKey(key string) error {
	if s.cfg.SweepAPIKeyHash == "" || key == "" {
		return ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.SweepAPIKeyHash), []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}
