package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/workbridge-dev/workbridge/internal/services"
)

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestRespondServiceErrorMapsCodeAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	respondServiceError(ctx, &services.Error{
		Code:    services.CodeForbidden,
		Status:  http.StatusForbidden,
		Message: "Only the project owner can accept a proposal",
	})

	require.Equal(t, http.StatusForbidden, w.Code)

	body := decodeErrorBody(t, w)
	require.Equal(t, services.CodeForbidden, body["code"])
	require.Equal(t, "Only the project owner can accept a proposal", body["error"])
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	respondServiceError(ctx, &services.Error{
		Code:    services.CodeInternalError,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     errors.New("pq: connection refused"),
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeErrorBody(t, w)
	require.Equal(t, services.CodeInternalError, body["code"])
	require.NotContains(t, body["error"], "connection refused")
}

func TestRespondServiceErrorUnknownErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	respondServiceError(ctx, errors.New("something unexpected"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeErrorBody(t, w)
	require.Equal(t, services.CodeInternalError, body["code"])
}
