package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/erp/orderhub/internal/application/ingestion"
	"github.com/erp/orderhub/internal/infrastructure/logger"
	"github.com/erp/orderhub/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Shopify delivery headers
const (
	HeaderShopifyHmac      = "X-Shopify-Hmac-Sha256"
	HeaderShopifyTopic     = "X-Shopify-Topic"
	HeaderShopifyWebhookID = "X-Shopify-Webhook-Id"
)

// WebhookConfig configures the webhook receiver
type WebhookConfig struct {
	// Secret enables HMAC verification when non-empty
	Secret       string
	MaxBodyBytes int64
}

// WebhookHandler receives Shopify order webhooks. Every delivery is
// answered with 200 and a receipt, whatever the outcome.
type WebhookHandler struct {
	gateway *ingestion.Gateway
	config  WebhookConfig
	now     func() time.Time
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(gateway *ingestion.Gateway, config WebhookConfig) *WebhookHandler {
	return &WebhookHandler{gateway: gateway, config: config, now: time.Now}
}

// Routes returns the webhook groups, mounted at the engine root
func (h *WebhookHandler) Routes() []*router.DomainGroup {
	shopify := router.NewDomainGroup("webhooks", "/shopify/orders").
		POST("/create", h.OrderCreate).
		POST("/updated", h.OrderUpdated).
		POST("/cancelled", h.OrderCancelled)
	aliases := router.NewDomainGroup("webhooks", "/orders").
		POST("/create", h.OrderCreate).
		POST("/updated", h.OrderUpdated).
		POST("/cancelled", h.OrderCancelled)
	health := router.NewDomainGroup("webhooks", "/webhooks").
		GET("/health", h.Health)
	return []*router.DomainGroup{shopify, aliases, health}
}

// WebhookHealthResponse is the webhook liveness body
type WebhookHealthResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"Webhook endpoint is healthy"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
}

// OrderCreate godoc
// @ID           shopifyOrderCreate
// @Summary      Shopify orders/create webhook
// @Description  Ingests a new order. Always answers 200; success is reported in the receipt.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Shopify-Hmac-Sha256 header string false "Base64 HMAC-SHA256 of the body"
// @Param        X-Shopify-Webhook-Id header string false "Delivery ID used for dedupe"
// @Param        request body ingestion.ShopifyOrder true "Shopify order"
// @Success      200 {object} ingestion.Receipt
// @Router       /shopify/orders/create [post]
func (h *WebhookHandler) OrderCreate(c *gin.Context) {
	h.receive(c, ingestion.TopicOrderCreate, h.gateway.HandleCreate)
}

// OrderUpdated godoc
// @ID           shopifyOrderUpdated
// @Summary      Shopify orders/updated webhook
// @Description  Updates status and total of a known order. Always answers 200.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Shopify-Hmac-Sha256 header string false "Base64 HMAC-SHA256 of the body"
// @Param        request body ingestion.ShopifyOrder true "Shopify order"
// @Success      200 {object} ingestion.Receipt
// @Router       /shopify/orders/updated [post]
func (h *WebhookHandler) OrderUpdated(c *gin.Context) {
	h.receive(c, ingestion.TopicOrderUpdated, h.gateway.HandleUpdate)
}

// OrderCancelled godoc
// @ID           shopifyOrderCancelled
// @Summary      Shopify orders/cancelled webhook
// @Description  Marks a known order cancelled. Always answers 200.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Shopify-Hmac-Sha256 header string false "Base64 HMAC-SHA256 of the body"
// @Param        request body ingestion.ShopifyOrder true "Shopify order"
// @Success      200 {object} ingestion.Receipt
// @Router       /shopify/orders/cancelled [post]
func (h *WebhookHandler) OrderCancelled(c *gin.Context) {
	h.receive(c, ingestion.TopicOrderCancelled, h.gateway.HandleCancel)
}

// Health godoc
// @ID           webhookHealth
// @Summary      Webhook receiver health
// @Tags         webhooks
// @Produce      json
// @Success      200 {object} WebhookHealthResponse
// @Router       /webhooks/health [get]
func (h *WebhookHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, WebhookHealthResponse{
		Success:   true,
		Message:   "Webhook endpoint is healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

func (h *WebhookHandler) receive(c *gin.Context, topic string, handle func(context.Context, ingestion.Event) ingestion.Receipt) {
	ctx := c.Request.Context()

	body, err := h.readBody(c)
	if err != nil {
		c.JSON(http.StatusOK, h.gateway.Reject(ctx, topic, err.Error()))
		return
	}
	if !h.verify(c.GetHeader(HeaderShopifyHmac), body) {
		logger.L(ctx).Warn("Webhook signature rejected",
			zap.String("topic", topic),
			zap.String("shop", c.GetHeader("X-Shopify-Shop-Domain")))
		c.JSON(http.StatusOK, h.gateway.Reject(ctx, topic, "invalid webhook signature"))
		return
	}

	receipt := handle(ctx, ingestion.Event{
		Topic:      topic,
		DeliveryID: c.GetHeader(HeaderShopifyWebhookID),
		Body:       body,
	})
	c.JSON(http.StatusOK, receipt)
}

func (h *WebhookHandler) readBody(c *gin.Context) ([]byte, error) {
	reader := io.Reader(c.Request.Body)
	if h.config.MaxBodyBytes > 0 {
		reader = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.MaxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.New("request body too large")
		}
		return nil, errors.New("failed to read request body")
	}
	return body, nil
}

// verify checks the base64 HMAC-SHA256 signature. Without a secret every
// delivery is accepted.
func (h *WebhookHandler) verify(signature string, body []byte) bool {
	if h.config.Secret == "" {
		return true
	}
	if signature == "" {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(want, sum(h.config.Secret, body))
}

// SignShopifyBody returns the signature Shopify would send for body
func SignShopifyBody(secret string, body []byte) string {
	return base64.StdEncoding.EncodeToString(sum(secret, body))
}

func sum(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}
