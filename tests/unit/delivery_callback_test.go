package unit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prelimpro/prelimpro-backend/internal/notices"
)

func callbackRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := notices.NewHandler(nil, secret)
	handler.RegisterCallback(router)
	return router
}

func TestDeliveryCallback_RejectsMissingSecret(t *testing.T) {
	router := callbackRouter("vendor-secret")

	body, _ := json.Marshal(gin.H{"delivered_at_unix": 1767225600})
	req := httptest.NewRequest(http.MethodPost, "/callbacks/delivery/notice-12345-6789", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "invalid callback secret")
}

func TestDeliveryCallback_RejectsWrongSecret(t *testing.T) {
	router := callbackRouter("vendor-secret")

	req := httptest.NewRequest(http.MethodPost, "/callbacks/delivery/notice-12345-6789", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("X-Delivery-Callback-Secret", "guess")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeliveryCallback_RejectsMalformedBody(t *testing.T) {
	router := callbackRouter("vendor-secret")

	req := httptest.NewRequest(http.MethodPost, "/callbacks/delivery/notice-12345-6789", bytes.NewReader([]byte(`{"delivered_at_unix": "not a number"}`)))
	req.Header.Set("X-Delivery-Callback-Secret", "vendor-secret")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
