package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/config"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Sentinel causes carried inside the apperr kinds, for callers that need to
// distinguish auth failures beyond the kind.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is deactivated")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	const op = "auth.Register"

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.E(apperr.InvalidArgument, op, "Name is required")
	}
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, apperr.E(apperr.InvalidArgument, op, "Email is required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperr.E(apperr.Conflict, op, "Email already registered", ErrEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to hash password", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: string(hash),
		Role:     roles.User,
		IsActive: true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to create account", err)
	}

	return s.generateTokenPair(op, &user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	const op = "auth.Login"

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, apperr.E(apperr.Unauthenticated, op, "Invalid email or password", ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.E(apperr.Unauthenticated, op, "Invalid email or password", ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, apperr.E(apperr.Unauthorized, op, "Account is deactivated", ErrAccountDisabled)
	}

	return s.generateTokenPair(op, &user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	const op = "auth.Refresh"

	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, apperr.E(apperr.Unauthenticated, op, "Invalid or expired refresh token", ErrInvalidToken)
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, apperr.E(apperr.Unauthenticated, op, "Invalid or expired refresh token", ErrInvalidToken)
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, apperr.E(apperr.Unauthenticated, op, "Invalid or expired refresh token", ErrInvalidToken)
	}
	if !user.IsActive {
		return nil, apperr.E(apperr.Unauthorized, op, "Account is deactivated", ErrAccountDisabled)
	}

	return s.generateTokenPair(op, &user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	const op = "auth.Logout"

	tokenHash := hashToken(req.RefreshToken)
	err := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
	if err != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to log out", err)
	}
	return nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperr.E(apperr.NotFound, "auth.GetProfile", "User not found", ErrUserNotFound)
	}
	resp := userResponse(&user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	const op = "auth.UpdateProfile"

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperr.E(apperr.NotFound, op, "User not found", ErrUserNotFound)
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(req.Name) != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.NativeLanguage != "" {
		updates["native_language"] = req.NativeLanguage
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperr.E(apperr.Unavailable, op, "Failed to update profile", err)
		}
	}

	resp := userResponse(&user)
	return &resp, nil
}

func (s *AuthService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	const op = "auth.ChangePassword"

	if len(req.NewPassword) < 8 {
		return apperr.E(apperr.InvalidArgument, op, "New password must be at least 8 characters")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return apperr.E(apperr.NotFound, op, "User not found", ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apperr.E(apperr.Unauthenticated, op, "Current password is incorrect", ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to hash password", err)
	}

	if err := s.db.Model(&user).Update("password", string(hash)).Error; err != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to change password", err)
	}
	return nil
}

func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	const op = "auth.DeleteAccount"

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return apperr.E(apperr.NotFound, op, "User not found", ErrUserNotFound)
	}

	if password == "" {
		return apperr.E(apperr.InvalidArgument, op, "Password is required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return apperr.E(apperr.Unauthenticated, op, "Password is incorrect", ErrInvalidCredentials)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		tx.Where("user_id = ?", userID).Delete(&models.ContentLike{})
		tx.Where("user_id = ?", userID).Delete(&models.Notification{})
		tx.Where("reporter_id = ?", userID).Delete(&models.Report{})
		return tx.Delete(&user).Error
	})
	if err != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to delete account", err)
	}
	return nil
}

func (s *AuthService) generateTokenPair(op string, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to issue tokens", err)
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to issue tokens", err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		IsActive:       user.IsActive,
		NativeLanguage: user.NativeLanguage,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
