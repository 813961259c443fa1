package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
	"github.com/nutriflow/backend/internal/types"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAuthCode    = errors.New("invalid or expired auth code")
)

const (
	authCodePrefix = "auth:code:"
	authCodeTTL    = 15 * time.Minute
	sessionTTL     = 24 * time.Hour
)

// AuthService owns registration, login and the one-time-code exchange
// used by the auth callback.
type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret string
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: jwtSecret,
	}
}

// Register creates the user and issues a one-time confirmation code for
// the callback route. The session only starts once the code is exchanged.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", err
	}

	code := uuid.NewString()
	key := authCodePrefix + code
	if err := s.redis.Set(ctx, key, user.ID.String(), authCodeTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store auth code: %w", err)
	}

	return code, nil
}

// Login verifies the credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user.ID)
}

// ExchangeCode redeems a one-time confirmation code for a session token.
// The code is deleted atomically so it cannot be replayed.
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	key := authCodePrefix + code
	userIDStr, err := s.redis.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrInvalidAuthCode
	}
	if err != nil {
		return "", fmt.Errorf("failed to read auth code: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", ErrInvalidAuthCode
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("email_confirmed", true).Error; err != nil {
		return "", err
	}

	return s.generateToken(userID)
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
