package services

import (
	"testing"
	"time"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/config"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&dto.RegisterRequest{
		Name:     "Mehedi",
		Email:    "mehedi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, roles.User, resp.User.Role, "new accounts start at the lowest tier")

	_, err = svc.Register(&dto.RegisterRequest{
		Name:     "Imposter",
		Email:    "mehedi@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	login, err := svc.Login(&dto.LoginRequest{Email: "mehedi@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "mehedi@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{
		Name:     "Mehedi",
		Email:    "mehedi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "mehedi@example.com").
		Update("is_active", false).Error)

	_, err = svc.Login(&dto.LoginRequest{Email: "mehedi@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name:     "Mehedi",
		Email:    "mehedi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The spent token is revoked.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name:     "Mehedi",
		Email:    "mehedi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name:     "Mehedi",
		Email:    "mehedi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(reg.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "evenmoresecret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(reg.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "supersecret",
		NewPassword:     "evenmoresecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "mehedi@example.com", Password: "evenmoresecret"})
	assert.NoError(t, err)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name:     "Mehedi",
		Email:    "mehedi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(reg.User.ID, "supersecret"))

	var tokens int64
	db.Model(&models.RefreshToken{}).Where("user_id = ?", reg.User.ID).Count(&tokens)
	assert.Zero(t, tokens)

	_, err = svc.GetProfile(reg.User.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
