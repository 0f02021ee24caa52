package handlers

import (
	"time"

	"vidhub/internal/usecases"
	"vidhub/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	uploads usecases.UploadService
	obs     *Observer
}

func NewUploadHandler(uploads usecases.UploadService, obs *Observer) *UploadHandler {
	return &UploadHandler{uploads: uploads, obs: obs}
}

// CreateDirectUpload
//
// @Summary      Create direct upload
// @Description  Asks the provider for a one-shot upload URL. The returned uploadId is the handle passed to video registration.
// @Tags         Upload
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DirectUpload
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /uploads [post]
func (h *UploadHandler) CreateDirectUpload(c *fiber.Ctx) error {
	start := time.Now()
	up, err := h.uploads.CreateDirectUpload(c.UserContext())
	if err := h.obs.observe("direct_upload", start, err); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	return c.JSON(up)
}
