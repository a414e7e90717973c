package handlers

import (
	"errors"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/gostays-api/internal/middleware"
	"github.com/dimitrije/gostays-api/internal/storage"
	"github.com/dimitrije/gostays-api/pkg/dto"
)

type UploadHandler struct {
	images ImageStoreInterface
}

func NewUploadHandler(images ImageStoreInterface) *UploadHandler {
	return &UploadHandler{images: images}
}

func (h *UploadHandler) UploadImage(c *drift.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := c.Request.ParseMultipartForm(storage.MaxImageSize); err != nil {
		c.BadRequest("invalid multipart form")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.BadRequest("image file is required")
		return
	}
	defer file.Close()

	if header.Size > storage.MaxImageSize {
		c.BadRequest("image exceeds the 8 MiB limit")
		return
	}

	url, err := h.images.UploadImage(c.Request.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			c.BadRequest("unsupported image type")
			return
		}
		c.InternalServerError("failed to upload image")
		return
	}

	_ = c.JSON(201, dto.UploadResponse{URL: url})
}
