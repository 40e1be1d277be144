package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the configured admin identity and issues
// the JWT guarding the administrative read paths. The storefront has no
// user accounts; credentials come from configuration, with the password
// stored as a bcrypt hash.
type AuthService struct {
	adminUsername string
	adminPassHash string
	jwtSecret     []byte
	tokenDurat    time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(adminUsername, adminPassHash, jwtSecret string) *AuthService {
	return &AuthService{
		adminUsername: adminUsername,
		adminPassHash: adminPassHash,
		jwtSecret:     []byte(jwtSecret),
		tokenDurat:    24 * time.Hour, // Token valid for 24 hours
	}
}

// Login authenticates the admin and returns a JWT token if successful.
func (s *AuthService) Login(username, password string) (string, error) {
	// Do not reveal which of the two checks failed
	if username != s.adminUsername {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPassHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"role":     "admin",
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
