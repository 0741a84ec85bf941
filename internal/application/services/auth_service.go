package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/config"
	"github.com/taskdeck/core/internal/infrastructure/logger"
	"github.com/taskdeck/core/internal/ports"
)

// ErrInvalidCredentials is returned for unknown emails and wrong
// passwords alike; the two cases are indistinguishable to the caller.
var ErrInvalidCredentials = &ClientError{
	HTTPStatus: http.StatusUnauthorized,
	Code:       "InvalidCredentials",
	Message:    "invalid email or password",
}

// Claims carries the authenticated (account, user) pair in the token.
type Claims struct {
	AccountID int64 `json:"account_id"`
	UserID    int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService resolves the caller's (account, user) scope from
// credentials. The resolved principal is passed explicitly into the
// task service; nothing is hardcoded or read from ambient state.
type AuthService struct {
	dir    ports.DirectoryRepository
	cfg    config.JWTConfig
	logger *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(dir ports.DirectoryRepository, cfg config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		dir:    dir,
		cfg:    cfg,
		logger: logger,
	}
}

// Login verifies the email/password pair and issues an access token
// whose claims carry the caller's scope.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	user, err := s.dir.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Errorw("login lookup failed", "error", err)
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warnw("failed login attempt", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.cfg.ExpiresIn)
	claims := Claims{
		AccountID: user.AccountID,
		UserID:    user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Errorw("token signing failed", "error", err)
		return nil, ErrInternal
	}

	s.logger.Infow("user logged in", "account_id", user.AccountID, "user_id", user.ID)

	return &ports.AuthResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		AccountID:   user.AccountID,
		UserID:      user.ID,
	}, nil
}

// ValidateToken parses and verifies a token and returns the principal
// it carries.
func (s *AuthService) ValidateToken(tokenString string) (*entities.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &entities.Principal{
		AccountID: claims.AccountID,
		UserID:    claims.UserID,
	}, nil
}
