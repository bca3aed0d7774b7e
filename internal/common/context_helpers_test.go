// File: internal/common/context_helpers_test.go
package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testContextWithHeader(authHeader string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set(AuthorizationHeader, authHeader)
	}
	return c
}

func TestGetTokenFromContext(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc123", "abc123"},
		{"case-insensitive scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"no token part", "Bearer", ""},
		{"too many parts", "Bearer abc 123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContextWithHeader(tt.header)
			assert.Equal(t, tt.want, GetTokenFromContext(c))
		})
	}
}

func TestGetUserIDFromContext_MissingReturnsNil(t *testing.T) {
	c := testContextWithHeader("")

	assert.Equal(t, uuid.Nil, GetUserIDFromContext(c))

	id := uuid.New()
	c.Set(UserIDKey, id)
	assert.Equal(t, id, GetUserIDFromContext(c))
}
