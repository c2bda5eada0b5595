package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devly/devly/internal/dto"
	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// PrincipalKey is the gin context key holding the authenticated user's ID.
const PrincipalKey = "principalID"

// Claims is the bearer-token payload: the principal's ID (as subject) and
// role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the given user and role.
func SignToken(secret string, userID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireRole gates a route group on a valid bearer token carrying the
// given role. On success the principal's ID is stored in the context.
func RequireRole(secret, role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, no token"})
			return
		}

		claims, err := parseToken(secret, strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token"})
			return
		}
		if claims.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Forbidden"})
			return
		}

		id, err := strconv.ParseUint(claims.Subject, 10, 32)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token"})
			return
		}

		ctx.Set(PrincipalKey, uint(id))
		ctx.Next()
	}
}

// PrincipalID returns the authenticated user's ID set by RequireRole.
func PrincipalID(ctx *gin.Context) uint {
	id, _ := ctx.Get(PrincipalKey)
	uid, _ := id.(uint)
	return uid
}
