package handlers

import (
	"time"

	"vidhub/internal/delivery/http/middleware"
	"vidhub/internal/domain/dto"
	"vidhub/internal/usecases"
	"vidhub/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VideoHandler struct {
	registration usecases.RegistrationService
	views        usecases.ViewCounter
	likes        usecases.LikeToggler
	query        usecases.VideoQuery
	uploads      usecases.UploadService
	obs          *Observer
}

func NewVideoHandler(
	registration usecases.RegistrationService,
	views usecases.ViewCounter,
	likes usecases.LikeToggler,
	query usecases.VideoQuery,
	uploads usecases.UploadService,
	obs *Observer,
) *VideoHandler {
	return &VideoHandler{
		registration: registration,
		views:        views,
		likes:        likes,
		query:        query,
		uploads:      uploads,
		obs:          obs,
	}
}

// Register
//
// @Summary      Register uploaded video
// @Description  Records a video for a provider upload handle; it stays processing until the provider reports the asset ready
// @Tags         Video
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.RegisterVideoRequestDTO true "Video"
// @Success      201   {object}  dto.RegisterVideoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /videos [post]
func (h *VideoHandler) Register(c *fiber.Ctx) error {
	start := time.Now()
	var req dto.RegisterVideoRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleError(c, h.obs.log, errors.ErrBadRequest(err))
	}

	user := middleware.CurrentUser(c)
	video, err := h.registration.Register(c.UserContext(), user.ID, req.UploadHandle, req.Title, req.Description)
	if err := h.obs.observe("register", start, err, zap.String("uploadHandle", req.UploadHandle)); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterVideoResponse{
		VideoID:         video.ID.String(),
		ProcessingState: video.ProcessingState,
	})
}

// RecordView
//
// @Summary      Record a view
// @Description  Counts a view once per viewer per dedup window and returns the current count
// @Tags         Engagement
// @Produce      json
// @Param        id               path      string true  "Video ID"
// @Param        X-Forwarded-For  header    string false "Client address"
// @Success      200              {object}  dto.ViewCountResponse
// @Failure      400              {object}  dto.ErrorResponse "Viewer identity unknown"
// @Failure      404              {object}  dto.ErrorResponse
// @Router       /videos/{id}/views [post]
func (h *VideoHandler) RecordView(c *fiber.Ctx) error {
	start := time.Now()
	res, err := h.views.RecordView(c.UserContext(), c.Params("id"), middleware.ViewerIdentity(c))
	if err := h.obs.observe("view", start, err, zap.String("videoId", c.Params("id"))); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}

	switch {
	case res.CacheErr != nil:
		h.obs.log.Warn("view dedup cache unavailable, counting without dedup", zap.Error(res.CacheErr))
		h.obs.view("degraded")
	case res.Counted:
		h.obs.view("counted")
	default:
		h.obs.view("deduplicated")
	}

	return c.JSON(dto.ViewCountResponse{VideoID: res.VideoID, ViewCount: res.ViewCount})
}

// ToggleLike
//
// @Summary      Toggle like
// @Tags         Engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string true "Video ID"
// @Success      200  {object}  dto.LikeToggleResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /videos/{id}/like [post]
func (h *VideoHandler) ToggleLike(c *fiber.Ctx) error {
	start := time.Now()
	user := middleware.CurrentUser(c)
	res, err := h.likes.Toggle(c.UserContext(), c.Params("id"), user.ID)
	if err := h.obs.observe("like", start, err, zap.String("videoId", c.Params("id"))); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	h.obs.like(res.Liked)
	return c.JSON(res)
}

// List
//
// @Summary      List videos
// @Description  Cursor-paginated feed; lastCursor is the createdAt of the previous page's last item
// @Tags         Video
// @Produce      json
// @Param        take        query     int    false "Page size"
// @Param        skip        query     int    false "Offset (popular order only)"
// @Param        lastCursor  query     string false "RFC3339 timestamp"
// @Param        order       query     string false "latest or popular"
// @Success      200         {object}  dto.VideoFeedResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /videos [get]
func (h *VideoHandler) List(c *fiber.Ctx) error {
	start := time.Now()
	req, err := listRequest(c)
	if err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	res, err := h.query.Feed(c.UserContext(), req)
	if err := h.obs.observe("feed", start, err); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	return c.JSON(res)
}

// Mine
//
// @Summary      List my videos
// @Tags         Video
// @Produce      json
// @Security     BearerAuth
// @Param        take   query     int    false "Page size"
// @Param        skip   query     int    false "Offset"
// @Param        order  query     string false "latest or popular"
// @Success      200    {object}  dto.MyVideosResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Router       /videos/mine [get]
func (h *VideoHandler) Mine(c *fiber.Ctx) error {
	start := time.Now()
	req, err := listRequest(c)
	if err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	res, err := h.query.Mine(c.UserContext(), middleware.CurrentUser(c).ID, req)
	if err := h.obs.observe("mine", start, err); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	return c.JSON(res)
}

// Detail
//
// @Summary      Get video
// @Description  Returns the video with its processing state; playbackUrl is set once ready
// @Tags         Video
// @Produce      json
// @Param        id   path      string true "Video ID"
// @Success      200  {object}  dto.VideoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /videos/{id} [get]
func (h *VideoHandler) Detail(c *fiber.Ctx) error {
	start := time.Now()
	res, err := h.query.Detail(c.UserContext(), c.Params("id"))
	if err := h.obs.observe("detail", start, err); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	return c.JSON(res)
}

// Delete
//
// @Summary      Delete video
// @Description  Revokes the provider asset and deletes the video. Owner only.
// @Tags         Video
// @Security     BearerAuth
// @Param        id   path  string true "Video ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /videos/{id} [delete]
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	start := time.Now()
	err := h.uploads.DeleteVideo(c.UserContext(), c.Params("id"), middleware.CurrentUser(c).ID)
	if err := h.obs.observe("delete", start, err, zap.String("videoId", c.Params("id"))); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func listRequest(c *fiber.Ctx) (dto.VideoListRequestDTO, error) {
	req := dto.VideoListRequestDTO{
		Take:  c.QueryInt("take"),
		Skip:  c.QueryInt("skip"),
		Order: c.Query("order"),
	}
	if raw := c.Query("lastCursor"); raw != "" {
		cursor, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return req, errors.ErrBadRequest(err)
		}
		req.LastCursor = &cursor
	}
	return req, nil
}
