package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/service"
	"github.com/dnk-music/intake/common/logger"
)

// FileHandler handles media staging endpoints
type FileHandler struct {
	files *service.FileService
	log   *logger.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *service.FileService, log *logger.Logger) *FileHandler {
	return &FileHandler{files: files, log: log}
}

// Upload stages a multipart upload and returns its file id
// POST /api/v1/files
func (h *FileHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing multipart file field")
	}

	src, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable multipart file")
	}
	defer src.Close()

	meta, err := h.files.Upload(c.Request().Context(), header.Filename, src)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusCreated, meta)
}

// Download streams a staged upload back
// GET /api/v1/files/:id
func (h *FileHandler) Download(c echo.Context) error {
	meta, file, err := h.files.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	defer file.Close()

	return c.Attachment(file.Name(), meta.Name)
}

// Delete removes a staged upload
// DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c echo.Context) error {
	if err := h.files.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
