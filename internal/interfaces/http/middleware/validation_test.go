package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/orderhub/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleValidationError(t *testing.T) {
	type body struct {
		Email  string `json:"email" binding:"required,email"`
		Status string `json:"status" binding:"omitempty,oneof=pending shipped"`
	}
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/", func(c *gin.Context) {
		var req body
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","status":"lost"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-7", resp.Error.RequestID)
	assert.ElementsMatch(t, []string{
		"email: Invalid email format",
		"status: Must be one of: pending shipped",
	}, resp.Error.Details)
}

func TestFormatValidationErrors_PlainError(t *testing.T) {
	resp := FormatValidationErrors(errors.New("unexpected EOF"), "")
	require.NotNil(t, resp.Error)
	assert.Equal(t, []string{"unexpected EOF"}, resp.Error.Details)
}
