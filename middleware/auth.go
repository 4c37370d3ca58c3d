package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"absensi_qr/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin      = "admin"
	accessTokenTTL = 24 * time.Hour
)

// AuthMiddleware creates a gin middleware for JWT authentication
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be in the format: Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1], jwtSecret)
		if err != nil {
			log.Printf("[%s] Token validation error: %v", GetRequestID(c), err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims.Role != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can view attendance reports"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// ParseToken validates an HS256 token and returns its claims.
func ParseToken(tokenString string, jwtSecret []byte) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// TokenService handles admin credential checks and token generation
type TokenService struct {
	JWTSecret         []byte
	AdminUsername     string
	AdminPasswordHash string
	now               func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(jwtSecret []byte, adminUsername, adminPasswordHash string) *TokenService {
	return &TokenService{
		JWTSecret:         jwtSecret,
		AdminUsername:     adminUsername,
		AdminPasswordHash: adminPasswordHash,
		now:               time.Now,
	}
}

// Authenticate reports whether the credentials match the configured admin.
// An empty hash disables admin login.
func (s *TokenService) Authenticate(username, password string) bool {
	if s.AdminPasswordHash == "" || username != s.AdminUsername {
		return false
	}
	return VerifyPassword(s.AdminPasswordHash, password)
}

// GenerateToken creates a signed access token for the admin
func (s *TokenService) GenerateToken(username string) (models.LoginResponse, error) {
	now := s.now()
	expiresAt := now.Add(accessTokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return models.LoginResponse{}, err
	}

	return models.LoginResponse{AccessToken: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// VerifyPassword checks if a password matches the hashed version
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
