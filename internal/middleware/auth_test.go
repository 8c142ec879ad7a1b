package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(subject string, companies ...string) Claims {
	return Claims{
		Companies: companies,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/companies/:companyID/ping", AuthMiddleware(testSecret), RequireCompanyAccess(), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	expired := validClaims("user-1", "c1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := []struct {
		name   string
		header string
		want   int
		body   string
	}{
		{name: "valid token", header: "Bearer " + signToken(t, testSecret, validClaims("user-1", "c1")), want: http.StatusOK, body: "user-1"},
		{name: "lowercase scheme", header: "bearer " + signToken(t, testSecret, validClaims("user-1", "c1")), want: http.StatusOK, body: "user-1"},
		{name: "wildcard company", header: "Bearer " + signToken(t, testSecret, validClaims("svc", AllCompanies)), want: http.StatusOK, body: "svc"},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, "another-secret", validClaims("user-1", "c1")), want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, expired), want: http.StatusUnauthorized},
		{name: "no subject", header: "Bearer " + signToken(t, testSecret, validClaims("", "c1")), want: http.StatusUnauthorized},
		{name: "other company", header: "Bearer " + signToken(t, testSecret, validClaims("user-1", "c2")), want: http.StatusForbidden},
	}

	r := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/companies/c1/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestClaimsCanAccess(t *testing.T) {
	assert.True(t, (&Claims{Companies: []string{"c1", "c2"}}).CanAccess("c2"))
	assert.True(t, (&Claims{Companies: []string{AllCompanies}}).CanAccess("anything"))
	assert.False(t, (&Claims{}).CanAccess("c1"))
}
