package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(captured *string) *gin.Engine {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/ping", func(c *gin.Context) {
			*captured = GetRequestID(c)
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("assigns a fresh id when none is sent", func(t *testing.T) {
		var seen string
		router := newRouter(&seen)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		echoed := rr.Header().Get("X-Request-Id")
		require.NotEmpty(t, echoed)
		assert.Equal(t, echoed, seen)

		_, err := uuid.Parse(echoed)
		assert.NoError(t, err)
	})

	t.Run("honors an incoming X-Request-Id", func(t *testing.T) {
		var seen string
		router := newRouter(&seen)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "client-supplied-id")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, "client-supplied-id", rr.Header().Get("X-Request-Id"))
		assert.Equal(t, "client-supplied-id", seen)
	})

	t.Run("blank incoming header is replaced", func(t *testing.T) {
		var seen string
		router := newRouter(&seen)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "   ")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.NotEmpty(t, seen)
		assert.NotEqual(t, "   ", rr.Header().Get("X-Request-Id"))
	})
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}
