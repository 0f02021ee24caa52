package usecases

import (
	"context"
	"sync"
	"time"

	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultReconcileMaxAge      = time.Hour
	DefaultReconcileConcurrency = 4
)

// SweepReport summarises one reconciliation pass.
type SweepReport struct {
	Scanned  int
	Applied  int
	Replayed int
	Expired  int
	Waiting  int
	Failed   int
}

type Reconciler interface {
	Sweep(ctx context.Context) (*SweepReport, error)
}

type reconciler struct {
	ingestor    WebhookIngestor
	pending     repositories.PendingStore
	maxAge      time.Duration
	concurrency int
	now         func() time.Time
}

func NewReconciler(ingestor WebhookIngestor, pending repositories.PendingStore, maxAge time.Duration, concurrency int) Reconciler {
	if maxAge <= 0 {
		maxAge = DefaultReconcileMaxAge
	}
	if concurrency <= 0 {
		concurrency = DefaultReconcileConcurrency
	}
	return &reconciler{
		ingestor:    ingestor,
		pending:     pending,
		maxAge:      maxAge,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Sweep re-applies every parked asset-ready event. Events that still match no
// video are kept until they exceed the max age, then dropped.
func (r *reconciler) Sweep(ctx context.Context) (*SweepReport, error) {
	events, err := r.pending.List(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	var (
		mu     sync.Mutex
		report = &SweepReport{Scanned: len(events)}
	)
	count := func(field *int) {
		mu.Lock()
		*field++
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, ev := range events {
		g.Go(func() error {
			outcome, err := r.ingestor.ApplyReady(gctx, ev.Data)
			if err != nil {
				count(&report.Failed)
				return nil
			}
			switch outcome {
			case OutcomeApplied:
				count(&report.Applied)
			case OutcomeReplay:
				count(&report.Replayed)
			default:
				if r.now().Sub(ev.ParkedAt) <= r.maxAge {
					count(&report.Waiting)
					return nil
				}
				count(&report.Expired)
			}
			if err := r.pending.Remove(gctx, ev.UploadHandle); err != nil {
				return errors.ErrInternal(err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}
