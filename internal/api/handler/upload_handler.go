package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/core/ports"
)

// 5 MiB decoded; matches the store-side object limit.
const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler accepts data-URL image payloads and stores them.
type UploadHandler struct {
	images ports.ImageStore
}

func NewUploadHandler(images ports.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

type uploadImageRequest struct {
	// Image is a data URL: data:image/png;base64,....
	Image  string `json:"image" validate:"required"`
	Folder string `json:"folder" validate:"omitempty,oneof=questions answers avatars"`
}

// Image decodes a base64 data URL and uploads it to the media store.
//
// @Summary      Upload an image
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        body  body      uploadImageRequest  true  "Base64 data URL"
// @Success      201   {object}  ports.StoredImage
// @Failure      400   {object}  errorResponse
// @Router       /upload/image [post]
func (h *UploadHandler) Image(c echo.Context) error {
	if _, err := actor(c); err != nil {
		return err
	}

	var req uploadImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	contentType, data, err := decodeDataURL(req.Image)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !allowedImageTypes[contentType] {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported image type "+contentType)
	}
	if len(data) > maxImageBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image exceeds the 5MB limit")
	}

	folder := req.Folder
	if folder == "" {
		folder = "questions"
	}

	stored, err := h.images.Upload(c.Request().Context(), data, contentType, folder)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stored)
}

// decodeDataURL splits a data:<mime>;base64,<payload> string into its media
// type and decoded bytes.
func decodeDataURL(raw string) (string, []byte, error) {
	const prefix = "data:"
	if !strings.HasPrefix(raw, prefix) {
		return "", nil, errors.New("image must be a data URL")
	}
	meta, payload, ok := strings.Cut(raw[len(prefix):], ",")
	if !ok {
		return "", nil, errors.New("malformed data URL")
	}
	contentType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", nil, errors.New("data URL must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.New("invalid base64 payload")
	}
	return contentType, data, nil
}
