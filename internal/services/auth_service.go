package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"live-market/config"
	"live-market/internal/domain/user"
	"live-market/internal/repository"
	market_errors "live-market/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	ttl := time.Duration(cfg.JWTExpiryMin) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: ttl,
		now:       time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	AccessToken string
	ExpiresIn   int64
	SessionID   uuid.UUID
	User        user.Profile
}

type AccessClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// UserID decodes the numeric subject claim.
func (c AccessClaims) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, market_errors.ErrUnauthorized
	}
	return id, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	email := in.Email
	newUser := &user.User{
		Name:         in.Name,
		Email:        &email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResponse{}, err
	}

	return s.openSession(ctx, *newUser)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthResponse{}, market_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, market_errors.ErrNotFound) {
			return AuthResponse{}, market_errors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResponse{}, market_errors.ErrUnauthorized
	}

	return s.openSession(ctx, u)
}

func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.userRepo.RevokeSession(ctx, sessionID)
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (user.Profile, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}
	return u.Profile(), nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, market_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, market_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return AccessClaims{}, market_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, market_errors.ErrUnauthorized
	}
	return *claims, nil
}

// ValidateSession rejects sessions that are unknown, owned by someone else, revoked or expired.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID uuid.UUID, userID uint64) (user.UserSession, error) {
	session, err := s.userRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, market_errors.ErrNotFound) {
			return user.UserSession{}, market_errors.ErrUnauthorized
		}
		return user.UserSession{}, err
	}
	if session.UserID != userID || !session.Active(s.now()) {
		return user.UserSession{}, market_errors.ErrUnauthorized
	}
	return session, nil
}

func (s *AuthService) openSession(ctx context.Context, u user.User) (AuthResponse, error) {
	now := s.now()
	session := &user.UserSession{
		ID:        uuid.New(),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.accessTTL),
		CreatedAt: now,
	}
	if err := s.userRepo.CreateSession(ctx, session); err != nil {
		return AuthResponse{}, fmt.Errorf("create session: %w", err)
	}

	claims := AccessClaims{
		SessionID: session.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		SessionID:   session.ID,
		User:        u.Profile(),
	}, nil
}

var validate = validator.New()

func validateRegister(in RegisterInput) error {
	if in.Name == "" || len(in.Name) > 64 {
		return fmt.Errorf("name must be 1-64 characters: %w", market_errors.ErrInvalidInput)
	}
	if err := validate.Var(in.Email, "required,email"); err != nil {
		return fmt.Errorf("invalid email: %w", market_errors.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, market_errors.ErrInvalidInput)
	}
	return nil
}
