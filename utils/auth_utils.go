package utils

import (
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/newsroom/api-go/workflow"
)

// TokenTTL is the fixed lifetime of an issued bearer token.
const TokenTTL = 24 * time.Hour

// UserClaims is the request-scoped identity injected by the auth
// middleware. Handlers read it through GetUser instead of any shared state.
type UserClaims struct {
	UserID uint          `json:"id"`
	Role   workflow.Role `json:"role"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

// GenerateToken signs a 24h HS256 bearer token carrying the identity
// fields the dashboards need.
func GenerateToken(claims *UserClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    claims.UserID,
		"role":  string(claims.Role),
		"email": claims.Email,
		"name":  claims.Name,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseToken validates a signed token and rebuilds the claims.
func ParseToken(tokenString string) (*UserClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	role, ok := claims["role"].(string)
	if !ok || !workflow.Role(role).Valid() {
		return nil, errors.New("invalid token claims")
	}

	user := &UserClaims{
		UserID: uint(id),
		Role:   workflow.Role(role),
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	return user, nil
}
