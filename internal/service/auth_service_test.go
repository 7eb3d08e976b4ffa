package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"recibo/internal/config"
	"recibo/internal/domain"
	"recibo/internal/service"
	"recibo/mocks"
)

func setupAuth() (*mocks.MockAdminRepo, service.AuthService) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, config.JWTConfig{
		Secret:      "test-secret-test-secret-test-1234",
		TokenExpiry: time.Hour,
		Issuer:      "recibo",
	})
	return adminRepo, svc
}

func activeAdmin(t *testing.T, password string) *domain.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.Admin{
		ID:           uuid.New(),
		Email:        "admin@recibo.test",
		PasswordHash: string(hash),
		Name:         "Admin",
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	adminRepo, svc := setupAuth()

	admin := activeAdmin(t, "correct horse")
	adminRepo.On("GetByEmail", mock.Anything, "admin@recibo.test").Return(admin, nil)

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@recibo.test",
		Password: "correct horse",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, "admin@recibo.test", claims.Email)
	assert.Equal(t, "recibo", claims.Issuer)
	adminRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	adminRepo, svc := setupAuth()

	adminRepo.On("GetByEmail", mock.Anything, "admin@recibo.test").Return(activeAdmin(t, "correct horse"), nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@recibo.test",
		Password: "wrong horse",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	adminRepo, svc := setupAuth()

	adminRepo.On("GetByEmail", mock.Anything, "nobody@recibo.test").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@recibo.test",
		Password: "irrelevant",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveAdmin(t *testing.T) {
	adminRepo, svc := setupAuth()

	admin := activeAdmin(t, "correct horse")
	admin.IsActive = false
	adminRepo.On("GetByEmail", mock.Anything, "admin@recibo.test").Return(admin, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@recibo.test",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, domain.ErrAdminInactive)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, svc := setupAuth()

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	adminRepo, svc := setupAuth()

	admin := activeAdmin(t, "correct horse")
	adminRepo.On("GetByEmail", mock.Anything, "admin@recibo.test").Return(admin, nil)

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@recibo.test",
		Password: "correct horse",
	})
	assert.NoError(t, err)

	other := service.NewAuthService(adminRepo, config.JWTConfig{
		Secret:      "a completely different secret key",
		TokenExpiry: time.Hour,
		Issuer:      "recibo",
	})
	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
