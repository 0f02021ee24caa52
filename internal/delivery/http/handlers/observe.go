package handlers

import (
	"strconv"
	"time"

	"vidhub/internal/infrastructure/observability"
	"vidhub/pkg/errors"

	"go.uber.org/zap"
)

// Observer is the single place coordinator calls are logged and measured.
type Observer struct {
	log     *zap.Logger
	metrics *observability.Metrics
}

func NewObserver(log *zap.Logger, metrics *observability.Metrics) *Observer {
	return &Observer{log: log, metrics: metrics}
}

// observe records the duration and result of op and returns err unchanged.
func (o *Observer) observe(op string, start time.Time, err error, fields ...zap.Field) error {
	status := "ok"
	if err != nil {
		status = errors.CodeOf(err)
	}
	if o.metrics != nil {
		o.metrics.RequestDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	}
	if err == nil {
		o.log.Debug(op, fields...)
	} else if errors.StatusFor(status) >= 500 {
		o.log.Error(op+" failed", append(fields, zap.String("code", status), zap.Error(err))...)
	} else {
		o.log.Info(op+" rejected", append(fields, zap.String("code", status))...)
	}
	return err
}

func (o *Observer) webhook(outcome string) {
	if o.metrics != nil {
		o.metrics.WebhookEvents.WithLabelValues(outcome).Inc()
	}
}

func (o *Observer) view(result string) {
	if o.metrics != nil {
		o.metrics.ViewsRecorded.WithLabelValues(result).Inc()
	}
}

func (o *Observer) like(liked bool) {
	if o.metrics != nil {
		o.metrics.LikeToggles.WithLabelValues(strconv.FormatBool(liked)).Inc()
	}
}
