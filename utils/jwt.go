package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"freelancehub/config"
	"freelancehub/models"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const devSecret = "freelancehub-dev-secret"

func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	return []byte(devSecret)
}

// GenerateToken signs a token carrying the identity as sub/role/name claims.
// The jti claim keeps tokens issued within the same second distinct.
func GenerateToken(id models.Identity, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  id.ID,
		"role": string(id.Role),
		"name": id.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
		"jti":  uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// IdentityFromToken validates the token and returns the identity it carries.
func IdentityFromToken(tokenString string) (models.Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Identity{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Identity{}, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.Identity{}, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	if !models.Role(role).Valid() {
		return models.Identity{}, errors.New("token does not contain a valid 'role' claim")
	}
	name, _ := claims["name"].(string)
	return models.Identity{ID: sub, Role: models.Role(role), Name: name}, nil
}
