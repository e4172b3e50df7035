package upload

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"dressup/internal/middleware"
	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Handler stores uploaded images on local disk and returns /static URLs.
type Handler struct {
	uploadDir string
}

func NewHandler(uploadDir string) *Handler {
	return &Handler{uploadDir: uploadDir}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/uploads/images", h.UploadImages)
}

func (h *Handler) UploadImages(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Failed to parse multipart form")
		return
	}

	files := c.Request.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "NO_FILES", "No images uploaded")
		return
	}

	dir := filepath.Join(h.uploadDir, userID.String())
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to create upload directory")
		return
	}

	var urls []string
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			response.Error(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", fmt.Sprintf("Unsupported file type: %s", ext))
			return
		}

		filename := uuid.NewString() + ext
		savePath := filepath.Join(dir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			response.Error(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save image")
			return
		}

		urls = append(urls, fmt.Sprintf("/static/%s/%s", userID, filename))
	}

	response.Success(c, http.StatusCreated, gin.H{"urls": urls})
}
