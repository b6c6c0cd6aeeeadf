package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/orderhub/internal/domain/activity"
	"github.com/erp/orderhub/internal/infrastructure/auth"
	"github.com/erp/orderhub/internal/infrastructure/config"
	"github.com/erp/orderhub/internal/infrastructure/logger"
	"github.com/erp/orderhub/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "orderhub-test",
	})
}

func newJWTRouter(cfg JWTMiddlewareConfig, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/api/v1/orders", handler)
	router.GET("/health", handler)
	return router
}

func TestJWTAuthMiddleware_ValidTokenSetsActor(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	token, err := svc.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   userID,
		UserName: "Alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	var actor activity.Actor
	var actorFound bool
	var ctxUserID string
	router := newJWTRouter(DefaultJWTConfig(svc), func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, userID.String(), GetJWTUserID(c))
		actor, actorFound = activity.ActorFromContext(c.Request.Context())
		ctxUserID = logger.GetUserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, actorFound)
	assert.Equal(t, activity.Actor{UserID: userID.String(), UserName: "Alice", Email: "alice@example.com"}, actor)
	assert.Equal(t, userID.String(), ctxUserID)
}

func TestJWTAuthMiddleware_AnonymousPassesWhenOptional(t *testing.T) {
	router := newJWTRouter(DefaultJWTConfig(newTestJWTService()), func(c *gin.Context) {
		_, ok := activity.ActorFromContext(c.Request.Context())
		assert.False(t, ok)
		assert.Nil(t, GetJWTClaims(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService())
	required := cfg
	required.Required = true

	tests := []struct {
		name   string
		cfg    JWTMiddlewareConfig
		header string
	}{
		{"garbage token", cfg, BearerPrefix + "not-a-jwt"},
		{"wrong scheme", cfg, "Basic dXNlcjpwYXNz"},
		{"empty bearer", cfg, BearerPrefix},
		{"missing header when required", required, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newJWTRouter(tt.cfg, func(c *gin.Context) {
				t.Fatal("handler must not run")
			})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
		})
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	short := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "orderhub-test",
	})
	token, err := short.GenerateAccessToken(auth.GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	router := newJWTRouter(DefaultJWTConfig(newTestJWTService()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestJWTAuthMiddleware_SkipPathIgnoresHeader(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService())
	cfg.Required = true
	router := newJWTRouter(cfg, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
