package handler

import (
	"net/http"

	"live-market/internal/services"
	"live-market/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// PresignImage returns a URL the browser can PUT the image to directly.
func (h *UploadHandler) PresignImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req httpdto.PresignImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.service.PresignImageUpload(c.Request.Context(), userID, services.PresignImageInput{
		Kind:        req.Kind,
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.PresignImageResponse{OK: true, Upload: newPresignedUpload(res)})
}
