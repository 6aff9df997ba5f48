package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/thereayou/everchat/internal/media"
	"mime"
	"net/http"
	"path/filepath"
)

type MediaHandler struct {
	media *media.Ingestor
}

func NewMediaHandler(ingestor *media.Ingestor) *MediaHandler {
	return &MediaHandler{media: ingestor}
}

// Serve отдаёт загруженный файл как есть
func (h *MediaHandler) Serve(c *gin.Context) {
	name := c.Param("filename")

	rc, size, err := h.media.Open(c.Request.Context(), name)
	switch {
	case errors.Is(err, media.ErrInvalidName), errors.Is(err, media.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, contentType, rc, nil)
}
