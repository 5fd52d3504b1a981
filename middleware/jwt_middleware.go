// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	accessTokenTTL  = 1 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// JwtCustomClaims binds a token to a customer identity.
type JwtCustomClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Refresh bool   `json:"refresh,omitempty"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware.
func (c JwtCustomClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// GenerateTokenPair issues an access/refresh token pair for a customer.
// The refresh token is marked so it cannot be used as an access token.
func GenerateTokenPair(secret, userID, email string) (string, string, error) {
	if secret == "" {
		return "", "", errors.New("JWT secret is required")
	}

	now := time.Now()
	accessClaims := &JwtCustomClaims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := &JwtCustomClaims{
		UserID:  userID,
		Email:   email,
		Refresh: true,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseRefreshToken validates a refresh token and returns its claims.
func ParseRefreshToken(secret, tokenString string) (*JwtCustomClaims, error) {
	claims, err := parseToken(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.Refresh {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}

func parseToken(secret, tokenString string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// JWTMiddleware protects routes that require a signed-in customer.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	if secret == "" {
		log.Printf("Warning: JWT secret is not set")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return echo.NewHTTPError(echo.ErrUnauthorized.Code, "JWT configuration error")
			}
		}
	}

	return echoMiddleware.JWTWithConfig(echoMiddleware.JWTConfig{
		SigningKey: []byte(secret),
		Claims:     &JwtCustomClaims{},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*JwtCustomClaims)

			// Refresh tokens only work at the refresh endpoint.
			if claims.Refresh {
				c.Error(echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid or expired token"))
				return
			}

			c.Set("userId", claims.UserID)
			c.Set("email", claims.Email)
		},
		ErrorHandler: func(err error) error {
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid or expired token")
		},
	})
}

// OptionalJWT attaches the customer identity when a valid bearer token is
// present but lets anonymous requests through. Public booking uses it to
// link appointments to signed-in customers.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if len(auth) > 7 && auth[:7] == "Bearer " {
				if claims, err := parseToken(secret, auth[7:]); err == nil && !claims.Refresh {
					c.Set("userId", claims.UserID)
					c.Set("email", claims.Email)
				}
			}
			return next(c)
		}
	}
}

// GetUserIDFromContext returns the authenticated customer id, or "" for
// anonymous requests.
func GetUserIDFromContext(c echo.Context) string {
	if userID, ok := c.Get("userId").(string); ok {
		return userID
	}
	return ""
}
