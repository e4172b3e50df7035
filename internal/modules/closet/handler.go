package closet

import (
	"errors"
	"net/http"

	"dressup/internal/middleware"
	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	closets := protected.Group("/closets")
	{
		closets.GET("/me", h.GetMe)
		closets.PUT("/me", h.Update)
		closets.DELETE("/me", h.Delete)
	}
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	result, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CLOSET_FAILED", "Failed to load closet")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	var req UpdateClosetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "CLOSET_DELETE_FAILED", "Failed to delete closet")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductBothAddedAndRemoved):
		response.Error(c, http.StatusBadRequest, "PRODUCT_ADDED_AND_REMOVED", "A product cannot be added and removed in the same request")
	case errors.Is(err, ErrProductAlreadyInCloset):
		response.Error(c, http.StatusBadRequest, "PRODUCT_ALREADY_IN_CLOSET", "Product is already in the closet")
	case errors.Is(err, ErrProductNotInCloset):
		response.Error(c, http.StatusBadRequest, "PRODUCT_NOT_IN_CLOSET", "Product is not in the closet")
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusBadRequest, "PRODUCT_NOT_FOUND", "Product does not exist")
	default:
		response.Error(c, http.StatusInternalServerError, "CLOSET_UPDATE_FAILED", "Failed to update closet")
	}
}
