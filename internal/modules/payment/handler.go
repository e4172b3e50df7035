package payment

import (
	"errors"
	"net/http"

	"dressup/internal/middleware"
	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentRequest struct {
	SubscriptionID int64 `json:"subscription_id" binding:"required"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	payments := protected.Group("/payments")
	{
		payments.POST("/request", h.Request)
		payments.GET("/me", h.ListMine)
	}
}

func (h *Handler) Request(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	history, err := h.service.Request(c.Request.Context(), userID, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			response.Error(c, http.StatusBadRequest, "SUBSCRIPTION_NOT_FOUND", "Subscription does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PAYMENT_REQUEST_FAILED", "Failed to record payment request")
		return
	}

	response.Success(c, http.StatusCreated, history)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	histories, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PAYMENT_LIST_FAILED", "Failed to list payments")
		return
	}

	response.Success(c, http.StatusOK, histories)
}
