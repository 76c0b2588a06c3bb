package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("adminEmail")})
	})
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAdminAcceptsValidToken(t *testing.T) {
	router := guardedRouter()

	token, err := IssueToken(jwt.MapClaims{
		"email": "admin@nec.edu",
		"role":  "admin",
	})
	require.NoError(t, err)

	w := request(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@nec.edu")
}

func TestRequireAdminRejectsMissingHeader(t *testing.T) {
	router := guardedRouter()

	w := request(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsMalformedToken(t *testing.T) {
	router := guardedRouter()

	w := request(router, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsStudentToken(t *testing.T) {
	router := guardedRouter()

	token, err := IssueToken(jwt.MapClaims{
		"email": "ravi.kumar@nec.edu",
		"role":  "student",
	})
	require.NoError(t, err)

	w := request(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsWrongSignature(t *testing.T) {
	router := guardedRouter()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "admin@nec.edu",
		"role":  "admin",
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	w := request(router, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
