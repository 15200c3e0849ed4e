package handler

import (
	"net/http"
	"strings"

	"pinboard/internal/storage"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves stored pin images.
type MediaHandler struct {
	images storage.ImageStore
}

func NewMediaHandler(images storage.ImageStore) *MediaHandler {
	return &MediaHandler{images: images}
}

// Serve godoc
// @Summary      Pin image
// @Tags         Media
// @Produce      octet-stream
// @Param        path  path  string  true  "Stored image path"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /media/{path} [get]
func (h *MediaHandler) Serve(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("path"), "/")
	if name == "" || strings.Contains(name, "..") {
		notFound(c)
		return
	}

	obj, err := h.images.Open(c.Request.Context(), name)
	if err != nil {
		notFound(c)
		return
	}
	defer obj.Body.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}
