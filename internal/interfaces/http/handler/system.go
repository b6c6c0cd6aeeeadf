package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/erp/orderhub/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database answers
type Pinger interface {
	Ping() error
}

// SystemHandler serves the liveness probe and the API index
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	db        Pinger
	endpoints map[string][]string
	now       func() time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, db Pinger) *SystemHandler {
	return &SystemHandler{name: name, version: version, db: db, now: time.Now}
}

// SetEndpoints publishes the route table shown by Index
func (h *SystemHandler) SetEndpoints(endpoints map[string][]string) {
	h.endpoints = endpoints
}

// HealthResponse is the liveness probe body
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string `json:"version" example:"1.0.0"`
	Database  string `json:"database,omitempty" example:"connection refused"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Answers 503 when the database does not respond
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Version:   h.version,
	}
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "unhealthy"
			resp.Database = err.Error()
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// APIInfoResponse describes the API
type APIInfoResponse struct {
	Name      string              `json:"name" example:"orderhub"`
	Version   string              `json:"version" example:"1.0.0"`
	Modules   []string            `json:"modules"`
	Endpoints map[string][]string `json:"endpoints"`
}

// Index godoc
// @ID           apiIndex
// @Summary      API index
// @Description  Name, version and the registered endpoints grouped by module
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[APIInfoResponse]
// @Router       /api [get]
func (h *SystemHandler) Index(c *gin.Context) {
	modules := make([]string, 0, len(h.endpoints))
	for name := range h.endpoints {
		modules = append(modules, name)
	}
	slices.Sort(modules)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(APIInfoResponse{
		Name:      h.name,
		Version:   h.version,
		Modules:   modules,
		Endpoints: h.endpoints,
	}))
}
