package handlers

import (
	"time"

	"vidhub/internal/domain/dto"
	"vidhub/internal/usecases"
	consts "vidhub/pkg/constants"
	"vidhub/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const SignatureHeader = "Mux-Signature"

type WebhookHandler struct {
	ingestor usecases.WebhookIngestor
	obs      *Observer
}

func NewWebhookHandler(ingestor usecases.WebhookIngestor, obs *Observer) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor, obs: obs}
}

// Receive
//
// @Summary      Receive provider webhook
// @Description  Verifies the signed provider callback and applies asset-ready transitions
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        Mux-Signature  header    string true "t=<unix>,v1=<hex digest>"
// @Success      200            {object}  dto.WebhookAckResponse
// @Failure      403            {object}  dto.ErrorResponse "Invalid signature"
// @Failure      500            {object}  dto.ErrorResponse "Secret missing or persistence failure"
// @Router       /webhooks/mux [post]
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	start := time.Now()
	// fiber reuses the body buffer after the handler returns.
	body := append([]byte(nil), c.Body()...)

	res, err := h.ingestor.Ingest(c.UserContext(), body, c.Get(SignatureHeader))
	if err != nil {
		h.obs.webhook(errors.CodeOf(err))
		return errors.HandleError(c, h.obs.log, h.obs.observe("webhook", start, err))
	}

	fields := []zap.Field{zap.String("event", res.EventType), zap.String("outcome", string(res.Outcome))}
	if res.DecodeErr != nil {
		h.obs.log.Warn("verified webhook body could not be decoded, acknowledged", zap.Error(res.DecodeErr))
	}
	if res.ArchiveErr != nil {
		h.obs.log.Warn("webhook archive failed", zap.Error(res.ArchiveErr))
	}
	if res.Outcome == usecases.OutcomeParked {
		h.obs.log.Warn("asset ready for unknown upload handle, parked for reconciliation", fields...)
	}
	h.obs.webhook(string(res.Outcome))
	_ = h.obs.observe("webhook", start, nil, fields...)

	return c.JSON(dto.WebhookAckResponse{Status: consts.StatusOK, Outcome: string(res.Outcome)})
}
