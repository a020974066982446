package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const ContextUserIDKey = "userID"

// jwtClaims mirrors the payload written by the auth service.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userIDFromRequest(c, jwtSecret)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a valid token
// is present but lets anonymous requests through. Used on read endpoints
// that personalize their response for signed-in viewers.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if userID, err := userIDFromRequest(c, jwtSecret); err == nil {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}

// userIDFromRequest extracts and validates the bearer token, returning the
// authenticated user's id.
func userIDFromRequest(c *gin.Context, jwtSecret string) (primitive.ObjectID, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return primitive.NilObjectID, errors.New("authorization header is missing")
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return primitive.NilObjectID, errors.New("authorization header format must be Bearer {token}")
	}

	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return primitive.NilObjectID, errors.New("token has expired")
		}
		return primitive.NilObjectID, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.UserID == "" {
		return primitive.NilObjectID, errors.New("invalid token or missing claims")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid user ID in token")
	}
	return userID, nil
}

// currentUserID returns the authenticated user's id set by AuthMiddleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	id, ok := raw.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	return id, nil
}

// optionalUserID returns the viewer's id when OptionalAuthMiddleware
// resolved one, nil otherwise.
func optionalUserID(c *gin.Context) *primitive.ObjectID {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return nil
	}
	id, ok := raw.(primitive.ObjectID)
	if !ok {
		return nil
	}
	return &id
}

// pathObjectID parses a hex object id path parameter. A malformed id is a
// client error, reported before any lookup happens.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return primitive.NilObjectID, false
	}
	return id, true
}
