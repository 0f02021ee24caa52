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

type CommentHandler struct {
	comments usecases.CommentService
	obs      *Observer
}

func NewCommentHandler(comments usecases.CommentService, obs *Observer) *CommentHandler {
	return &CommentHandler{comments: comments, obs: obs}
}

// List
//
// @Summary      List comments
// @Description  Newest first. take is clamped to 1-100.
// @Tags         Comment
// @Produce      json
// @Param        id    path      string true  "Video ID"
// @Param        page  query     int    false "Page number, from 1"
// @Param        take  query     int    false "Page size"
// @Success      200   {object}  dto.CommentPageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /videos/{id}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	start := time.Now()
	res, err := h.comments.List(c.UserContext(), c.Params("id"), c.QueryInt("page", 1), c.QueryInt("take"))
	if err := h.obs.observe("comments", start, err, zap.String("videoId", c.Params("id"))); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	return c.JSON(res)
}

// Create
//
// @Summary      Write comment
// @Tags         Comment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true "Video ID"
// @Param        body  body      dto.CreateCommentRequestDTO true "Comment"
// @Success      201   {object}  dto.CommentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /videos/{id}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	start := time.Now()
	var req dto.CreateCommentRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleError(c, h.obs.log, errors.ErrBadRequest(err))
	}

	res, err := h.comments.Create(c.UserContext(), c.Params("id"), middleware.CurrentUser(c), req.Content)
	if err := h.obs.observe("comment", start, err, zap.String("videoId", c.Params("id"))); err != nil {
		return errors.HandleError(c, h.obs.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
