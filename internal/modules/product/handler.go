package product

import (
	"errors"
	"net/http"
	"strconv"

	"dressup/internal/middleware"
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

// RegisterPublicRoutes wires the catalog reads. They work without a
// token; a signed-in viewer additionally sees their own drafts and
// scores, so these sit behind the optional-auth middleware.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/products", h.ListPublic)
	v1.GET("/products/:id", h.Get)
	v1.GET("/products/:id/reviews", h.ListReviews)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	products := protected.Group("/products")
	{
		products.GET("/me", h.ListMine)
		products.POST("", h.Create)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/rating", h.Rate)
		products.POST("/:id/review", h.CreateReview)
		products.PUT("/:id/review", h.UpdateReview)
	}
}

func (h *Handler) ListPublic(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	// the public list works without a token; a signed-in viewer gets
	// their own scores attached
	var viewerID *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		viewerID = &id
	}

	result, err := h.service.ListPublic(c.Request.Context(), q, viewerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PRODUCT_LIST_FAILED", "Failed to list products")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	result, err := h.service.ListMine(c.Request.Context(), q, userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PRODUCT_LIST_FAILED", "Failed to list products")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PRODUCT_CREATE_FAILED", "Failed to create product")
		return
	}

	response.Success(c, http.StatusCreated, NewProductResponse(p, nil, nil))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var viewerID *uuid.UUID
	if uid, ok := middleware.UserID(c); ok {
		viewerID = &uid
	}

	result, err := h.service.Get(c.Request.Context(), id, viewerID)
	if err != nil {
		h.respondError(c, err, "PRODUCT_GET_FAILED", "Failed to load product")
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

	id, err := parseProductID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		h.respondError(c, err, "PRODUCT_UPDATE_FAILED", "Failed to update product")
		return
	}

	response.Success(c, http.StatusOK, NewProductResponse(p, nil, nil))
}

func (h *Handler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	id, err := parseProductID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err, "PRODUCT_DELETE_FAILED", "Failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Rate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	id, err := parseProductID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Rate(c.Request.Context(), id, userID, req.Score); err != nil {
		h.respondError(c, err, "PRODUCT_RATE_FAILED", "Failed to rate product")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Rating saved"})
}

func (h *Handler) CreateReview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	id, err := parseProductID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), id, userID, req.Content)
	if err != nil {
		h.respondError(c, err, "REVIEW_CREATE_FAILED", "Failed to create review")
		return
	}

	response.Success(c, http.StatusCreated, review)
}

func (h *Handler) UpdateReview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	id, err := parseProductID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), id, userID, req.Content)
	if err != nil {
		h.respondError(c, err, "REVIEW_UPDATE_FAILED", "Failed to update review")
		return
	}

	response.Success(c, http.StatusOK, review)
}

func (h *Handler) ListReviews(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "REVIEW_LIST_FAILED", "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

func parseProductID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *Handler) respondError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, ErrNotProductOwner):
		response.Error(c, http.StatusForbidden, "AUTHORIZATION_FAILED", "You do not have access to this product")
	case errors.Is(err, ErrInvalidScore):
		response.Error(c, http.StatusBadRequest, "INVALID_SCORE", "Score must be between 1 and 5")
	case errors.Is(err, ErrReviewAlreadyExists):
		response.Error(c, http.StatusBadRequest, "REVIEW_EXISTS", "You already reviewed this product")
	case errors.Is(err, ErrReviewNotFound):
		response.Error(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "Review not found")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
