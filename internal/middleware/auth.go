package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AllCompanies in the companies claim grants access to every tenant.
const AllCompanies = "*"

// Claims is the JWT body the posting API accepts. Subject is the user id and
// Companies lists the tenants the caller may post to.
type Claims struct {
	Companies []string `json:"companies,omitempty"`
	jwt.RegisteredClaims
}

// CanAccess reports whether the claims grant access to companyID.
func (c *Claims) CanAccess(companyID string) bool {
	return slices.Contains(c.Companies, AllCompanies) || slices.Contains(c.Companies, companyID)
}

// AuthMiddleware validates the bearer JWT and stores the caller in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		scheme, tokenString, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &Claims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, keyFunc); err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "Token has expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.Subject)
		ctx = context.WithValue(ctx, claimsKey, claims)
		c.Request = c.Request.WithContext(WithLogger(ctx, logger.With(slog.String("user_id", claims.Subject))))
		c.Next()
	}
}

// RequireCompanyAccess rejects requests whose token does not list the
// :companyID path parameter. It must run after AuthMiddleware.
func RequireCompanyAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		companyID := c.Param("companyID")

		claims, ok := c.Request.Context().Value(claimsKey).(*Claims)
		if !ok {
			logger.Error("Claims not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !claims.CanAccess(companyID) {
			logger.Warn("Company access denied", slog.String("company_id", companyID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to company denied"})
			return
		}

		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger.With(slog.String("company_id", companyID))))
		c.Next()
	}
}
