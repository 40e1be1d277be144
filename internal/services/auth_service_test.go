package services_test

import (
	"log"
	"os"
	"testing"

	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func adminHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	authService := services.NewAuthService("admin", adminHash(t, "password123"), "test_jwt_secret")

	// Successful login
	token, err := authService.Login("admin", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Wrong password
	token, err = authService.Login("admin", "wrongpassword")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Wrong username
	token, err = authService.Login("intruder", "password123")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService("admin", adminHash(t, "password123"), "test_jwt_secret")

	token, err := authService.Login("admin", "password123")
	assert.NoError(t, err)

	// Valid token round-trips with the expected claims
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, "admin", claims["role"])

	// Tampered token is rejected
	claims, err = authService.ValidateToken(token + "x")
	assert.Error(t, err)
	assert.Nil(t, claims)

	// Token signed with a different secret is rejected
	otherService := services.NewAuthService("admin", adminHash(t, "password123"), "other_secret")
	otherToken, err := otherService.Login("admin", "password123")
	assert.NoError(t, err)
	claims, err = authService.ValidateToken(otherToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
