package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Reblayzer/BachelorCode-sub000/internal/middleware"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// FileHandler serves file listings from linked providers.
type FileHandler struct {
	files  *services.FileService
	logger *slog.Logger
}

func NewFileHandler(files *services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{files: files, logger: logger}
}

// pageSize parses the optional pageSize query; 0 lets the provider pick its default.
func pageSize(c *gin.Context) (int, error) {
	raw := c.Query("pageSize")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidPageSize
	}
	return n, nil
}

// ListAll merges the root listings of every linked provider.
// GET /api/files?pageSize=
func (h *FileHandler) ListAll(c *gin.Context) {
	size, err := pageSize(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items, err := h.files.GetFilesFromAllProviders(c.Request.Context(), middleware.UserID(c), size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListProvider returns one page of a folder at a single provider.
// GET /api/files/:provider?folderId&pageSize&pageToken
func (h *FileHandler) ListProvider(c *gin.Context) {
	provider, err := models.ParseProvider(c.Param("provider"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	size, err := pageSize(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	page, err := h.files.GetFilesByProvider(
		c.Request.Context(),
		middleware.UserID(c),
		provider,
		c.Query("folderId"),
		size,
		c.Query("pageToken"),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Metadata returns details of one file.
// GET /api/files/:provider/:fileId
func (h *FileHandler) Metadata(c *gin.Context) {
	provider, err := models.ParseProvider(c.Param("provider"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	meta, err := h.files.GetFileMetadata(
		c.Request.Context(),
		middleware.UserID(c),
		provider,
		c.Param("fileId"),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// View redirects to the provider's web view of a file.
// GET /api/files/:provider/:fileId/view
func (h *FileHandler) View(c *gin.Context) {
	provider, err := models.ParseProvider(c.Param("provider"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	viewURL, err := h.files.GetFileViewURL(
		c.Request.Context(),
		middleware.UserID(c),
		provider,
		c.Param("fileId"),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, viewURL)
}
