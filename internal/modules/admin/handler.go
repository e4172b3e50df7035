package admin

import (
	"errors"
	"net/http"

	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already behind the admin-only middleware.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	users := adminGroup.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.PATCH("/:id/suspend", h.Suspend)
		users.PATCH("/:id/restore", h.Restore)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	var q ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "ADMIN_LIST_FAILED", "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, users)
}

func (h *Handler) Suspend(c *gin.Context) {
	h.setActive(c, func(id uuid.UUID) (any, error) {
		return h.service.Suspend(c.Request.Context(), id)
	})
}

func (h *Handler) Restore(c *gin.Context) {
	h.setActive(c, func(id uuid.UUID) (any, error) {
		return h.service.Restore(c.Request.Context(), id)
	})
}

func (h *Handler) setActive(c *gin.Context, op func(uuid.UUID) (any, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	user, err := op(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ADMIN_UPDATE_FAILED", "Failed to update user")
		return
	}

	response.Success(c, http.StatusOK, user)
}
