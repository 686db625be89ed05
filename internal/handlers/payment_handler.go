package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meridianpay/fx-payment-service/internal/fxclient"
	"github.com/meridianpay/fx-payment-service/internal/models"
	"github.com/meridianpay/fx-payment-service/internal/service"
	"github.com/meridianpay/fx-payment-service/internal/store"
	"github.com/meridianpay/fx-payment-service/internal/telemetry"
)

type PaymentHandler struct {
	orchestrator *service.Orchestrator
}

func NewPaymentHandler(orchestrator *service.Orchestrator) *PaymentHandler {
	return &PaymentHandler{orchestrator: orchestrator}
}

// CreatePayment handles POST /payments. Malformed requests never reach
// the orchestrator; upstream quote failures map to 502 while the FAILED
// record stays retrievable via GET.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.orchestrator.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, fxclient.ErrQuoteUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to obtain FX rate"})
			return
		}
		telemetry.Logger.Error("Error processing payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment handles GET /payments/:id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.orchestrator.GetPayment(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment"})
		return
	}

	c.JSON(http.StatusOK, payment)
}
