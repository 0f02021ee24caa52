package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"
	"vidhub/pkg/helper"

	"github.com/google/uuid"
)

const DefaultDedupTTL = 24 * time.Hour

type ViewResult struct {
	VideoID   string
	ViewCount int64
	// Counted reports whether this call incremented the counter.
	Counted bool
	// CacheErr is set when deduplication was skipped because the cache failed.
	CacheErr error
}

type ViewCounter interface {
	RecordView(ctx context.Context, videoID, identity string) (*ViewResult, error)
}

type viewCounter struct {
	videos repositories.VideoRepository
	cache  repositories.DedupCache
	ttl    time.Duration
}

func NewViewCounter(videos repositories.VideoRepository, cache repositories.DedupCache, ttl time.Duration) ViewCounter {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &viewCounter{videos: videos, cache: cache, ttl: ttl}
}

func (s *viewCounter) RecordView(ctx context.Context, videoID, identity string) (*ViewResult, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || identity == helper.GuestIdentity("") {
		return nil, errors.ErrBadRequest(fmt.Errorf("viewer identity could not be determined"))
	}
	id, err := uuid.Parse(videoID)
	if err != nil {
		return nil, errors.ErrNotFound(err)
	}
	if _, err := s.videos.GetByID(ctx, id); err != nil {
		return nil, notFoundOrInternal(err)
	}

	res := &ViewResult{VideoID: id.String()}
	key := helper.MakeViewKey(identity, res.VideoID)

	seen, err := s.cache.Seen(ctx, key)
	if err != nil {
		res.CacheErr = err
		seen = false
	}
	if !seen {
		// Mark before incrementing so a concurrent first view is likely to see the key.
		if res.CacheErr == nil {
			if err := s.cache.Mark(ctx, key, s.ttl); err != nil {
				res.CacheErr = err
			}
		}
		if err := s.videos.IncrementViewCount(ctx, id); err != nil {
			return nil, notFoundOrInternal(err)
		}
		res.Counted = true
	}

	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	res.ViewCount = video.ViewCount
	return res, nil
}

func notFoundOrInternal(err error) error {
	if stderrors.Is(err, repositories.ErrVideoNotFound) {
		return errors.ErrNotFound(err)
	}
	return errors.ErrInternal(err)
}
