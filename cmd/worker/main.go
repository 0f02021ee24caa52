package main

import (
	"context"
	"time"

	"vidhub/internal/bootstrap"
	"vidhub/internal/domain/repositories"
	"vidhub/internal/infrastructure/observability"
	"vidhub/internal/pkg/config"
	"vidhub/internal/usecases"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultSchedule = "@every 30s"

func main() {
	fx.New(
		bootstrap.Core,
		fx.Provide(func(cfg *config.Config, ing usecases.WebhookIngestor, pending repositories.PendingStore) usecases.Reconciler {
			return usecases.NewReconciler(ing, pending, cfg.Reconcile.MaxAge, cfg.Reconcile.Concurrency)
		}),
		fx.Invoke(schedule),
	).Run()
}

func schedule(lc fx.Lifecycle, cfg *config.Config, r usecases.Reconciler, metrics *observability.Metrics, log *zap.Logger) error {
	expr := cfg.Reconcile.Schedule
	if expr == "" {
		expr = defaultSchedule
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(expr, func() { sweep(r, metrics, log) }); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("reconciler scheduled", zap.String("schedule", expr))
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}

func sweep(r usecases.Reconciler, metrics *observability.Metrics, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report, err := r.Sweep(ctx)
	if err != nil {
		log.Error("reconcile sweep failed", zap.Error(err))
	}
	if report == nil {
		return
	}
	metrics.ParkedEvents.Set(float64(report.Scanned))
	for result, n := range map[string]int{
		"applied":  report.Applied,
		"replayed": report.Replayed,
		"expired":  report.Expired,
		"waiting":  report.Waiting,
		"failed":   report.Failed,
	} {
		metrics.ReconcileSweeps.WithLabelValues(result).Add(float64(n))
	}
	if report.Scanned > 0 {
		log.Info("reconcile sweep",
			zap.Int("scanned", report.Scanned),
			zap.Int("applied", report.Applied),
			zap.Int("expired", report.Expired),
			zap.Int("waiting", report.Waiting),
			zap.Int("failed", report.Failed),
		)
	}
}
