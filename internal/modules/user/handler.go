package user

import (
	"errors"
	"net/http"

	"dressup/internal/middleware"
	"dressup/internal/modules/auth"
	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)
		users.POST("/me/contact", h.CreateContact)
	}
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	u, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, NewProfileResponse(u))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.Password != nil && !auth.ValidStrongPassword(*req.Password) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be 6-128 characters with at least one digit and one special character")
		return
	}

	u, err := h.service.UpdateMe(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROFILE_UPDATE_FAILED", "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, NewProfileResponse(u))
}

func (h *Handler) CreateContact(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	contact, err := h.service.CreateContact(c.Request.Context(), userID, req.Message)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CONTACT_FAILED", "Failed to store contact message")
		return
	}

	response.Success(c, http.StatusCreated, contact)
}
