package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup_VersionedAndRoot(t *testing.T) {
	engine := gin.New()
	apiHits := 0
	r := NewRouter(engine, WithAPIMiddleware(func(c *gin.Context) {
		apiHits++
		c.Next()
	}))

	orders := NewDomainGroup("orders", "/orders")
	orders.GET("", ok("list")).GET("/:id", ok("one"))
	webhooks := NewDomainGroup("webhooks", "/shopify/orders")
	webhooks.POST("/create", ok("receipt"))

	r.Register(orders).RegisterRoot(webhooks)
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/orders")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list", w.Body.String())
	assert.Equal(t, "one", serve(engine, http.MethodGet, "/api/v1/orders/42").Body.String())

	w = serve(engine, http.MethodPost, "/shopify/orders/create")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "receipt", w.Body.String())

	assert.Equal(t, 2, apiHits, "api middleware must not run for root routes")
}

func TestDomainGroup_MethodsAndMiddleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("customers", "/customers")
	g.Use(func(c *gin.Context) {
		c.Header("X-Group", "customers")
		c.Next()
	})
	g.GET("", ok("get")).
		POST("", ok("post")).
		PUT("/:id", ok("put")).
		PATCH("/:id", ok("patch")).
		DELETE("/:id", ok("delete"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/customers", "get"},
		{http.MethodPost, "/api/v1/customers", "post"},
		{http.MethodPut, "/api/v1/customers/1", "put"},
		{http.MethodPatch, "/api/v1/customers/1", "patch"},
		{http.MethodDelete, "/api/v1/customers/1", "delete"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.body, w.Body.String())
		assert.Equal(t, "customers", w.Header().Get("X-Group"))
	}
	assert.Equal(t, "customers", g.Name())
	assert.Equal(t, "/customers", g.Prefix())
}

func TestDomainGroup_Subgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("orders", "/orders")
	g.Group("production", "/production").GET("/items-required", ok("items"))
	g.Group("analytics", "/analytics").GET("/summary", ok("summary"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	assert.Equal(t, "items", serve(engine, http.MethodGet, "/api/v1/orders/production/items-required").Body.String())
	assert.Equal(t, "summary", serve(engine, http.MethodGet, "/api/v1/orders/analytics/summary").Body.String())
}

func TestRouter_Endpoints(t *testing.T) {
	r := NewRouter(gin.New())

	orders := NewDomainGroup("orders", "/orders")
	orders.GET("", ok("")).PUT("/:id/status", ok(""))
	orders.Group("analytics", "/analytics").GET("/summary", ok(""))
	health := NewDomainGroup("webhooks", "/webhooks")
	health.GET("/health", ok(""))

	r.Register(orders).RegisterRoot(health)

	endpoints := r.Endpoints()
	assert.Equal(t, []string{
		"GET /api/v1/orders",
		"GET /api/v1/orders/analytics/summary",
		"PUT /api/v1/orders/:id/status",
	}, endpoints["orders"])
	assert.Equal(t, []string{"GET /webhooks/health"}, endpoints["webhooks"])
}
