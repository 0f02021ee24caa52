package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	"vidhub/pkg/constants"

	"github.com/google/uuid"
)

// InMemoryStore backs all four repositories for local runs and tests. The
// mutex stands in for the row-level serialization a database provides.
type InMemoryStore struct {
	mu       sync.RWMutex
	videos   map[uuid.UUID]*entities.Video
	likes    map[likeKey]*entities.Like
	users    map[string]*entities.User
	comments map[uuid.UUID]*entities.Comment
}

type likeKey struct {
	user, video uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		videos:   make(map[uuid.UUID]*entities.Video),
		likes:    make(map[likeKey]*entities.Like),
		users:    make(map[string]*entities.User),
		comments: make(map[uuid.UUID]*entities.Comment),
	}
}

func (s *InMemoryStore) Videos() repositories.VideoRepository     { return (*memVideos)(s) }
func (s *InMemoryStore) Likes() repositories.LikeRepository       { return (*memLikes)(s) }
func (s *InMemoryStore) Users() repositories.UserRepository       { return (*memUsers)(s) }
func (s *InMemoryStore) Comments() repositories.CommentRepository { return (*memComments)(s) }

type memVideos InMemoryStore

func (r *memVideos) Create(_ context.Context, video *entities.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	now := time.Now().UTC()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *memVideos) GetByID(_ context.Context, id uuid.UUID) (*entities.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVideos) GetByUploadHandle(_ context.Context, handle string) (*entities.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *entities.Video
	for _, v := range r.videos {
		if v.UploadHandle != handle {
			continue
		}
		if found == nil || v.CreatedAt.Before(found.CreatedAt) {
			found = v
		}
	}
	if found == nil {
		return nil, repositories.ErrVideoNotFound
	}
	cp := *found
	return &cp, nil
}

func (r *memVideos) MarkReady(_ context.Context, handle string, t entities.ReadyTransition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := false
	for _, v := range r.videos {
		if v.UploadHandle != handle || v.ProcessingState != constants.VideoStateProcessing {
			continue
		}
		v.ProcessingState = constants.VideoStateReady
		v.AssetID = t.AssetID
		v.PlaybackReference = t.PlaybackReference
		v.ThumbnailReference = t.ThumbnailReference
		v.Duration = t.Duration
		v.UpdatedAt = time.Now().UTC()
		changed = true
	}
	return changed, nil
}

func (r *memVideos) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return repositories.ErrVideoNotFound
	}
	v.ViewCount++
	return nil
}

func (r *memVideos) List(_ context.Context, opts repositories.ListOptions) ([]*entities.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Video, 0, len(r.videos))
	for _, v := range r.videos {
		if opts.Before != nil && !opts.Popular && !v.CreatedAt.Before(*opts.Before) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sortVideos(out, opts.Popular)
	return page(out, opts.Skip, opts.Take), nil
}

func (r *memVideos) ListByOwner(_ context.Context, ownerID uuid.UUID, opts repositories.ListOptions) ([]*entities.Video, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Video, 0)
	for _, v := range r.videos {
		if v.OwnerID != ownerID {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sortVideos(out, opts.Popular)
	return page(out, opts.Skip, opts.Take), int64(len(out)), nil
}

func (r *memVideos) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[id]; !ok {
		return repositories.ErrVideoNotFound
	}
	delete(r.videos, id)
	for k := range r.likes {
		if k.video == id {
			delete(r.likes, k)
		}
	}
	for cid, c := range r.comments {
		if c.VideoID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

type memLikes InMemoryStore

func (r *memLikes) Exists(_ context.Context, userID, videoID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.likes[likeKey{userID, videoID}]
	return ok, nil
}

func (r *memLikes) Insert(_ context.Context, like *entities.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{like.UserID, like.VideoID}
	if _, ok := r.likes[k]; ok {
		return repositories.ErrDuplicateLike
	}
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}
	cp := *like
	r.likes[k] = &cp
	return nil
}

func (r *memLikes) Delete(_ context.Context, userID, videoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{userID, videoID}
	if _, ok := r.likes[k]; !ok {
		return false, nil
	}
	delete(r.likes, k)
	return true, nil
}

func (r *memLikes) CountByVideo(_ context.Context, videoID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for k := range r.likes {
		if k.video == videoID {
			n++
		}
	}
	return n, nil
}

type memUsers InMemoryStore

func (r *memUsers) FindOrCreateByEmail(_ context.Context, email string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	now := time.Now().UTC()
	u := &entities.User{ID: uuid.New(), Email: email, CreatedAt: now, UpdatedAt: now}
	r.users[email] = u
	cp := *u
	return &cp, nil
}

type memComments InMemoryStore

func (r *memComments) Create(_ context.Context, comment *entities.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[comment.VideoID]; !ok {
		return repositories.ErrVideoNotFound
	}
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := time.Now().UTC()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now
	cp := *comment
	cp.User = nil
	r.comments[comment.ID] = &cp
	return nil
}

func (r *memComments) ListByVideo(_ context.Context, videoID uuid.UUID, skip, take int) ([]*entities.Comment, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	authors := make(map[uuid.UUID]*entities.User, len(r.users))
	for _, u := range r.users {
		authors[u.ID] = u
	}

	out := make([]*entities.Comment, 0)
	for _, c := range r.comments {
		if c.VideoID != videoID {
			continue
		}
		cp := *c
		if u, ok := authors[c.UserID]; ok {
			author := *u
			cp.User = &author
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := int64(len(out))
	if skip >= len(out) {
		return []*entities.Comment{}, total, nil
	}
	out = out[skip:]
	if take > 0 && take < len(out) {
		out = out[:take]
	}
	return out, total, nil
}

func sortVideos(v []*entities.Video, popular bool) {
	sort.SliceStable(v, func(i, j int) bool {
		if popular && v[i].ViewCount != v[j].ViewCount {
			return v[i].ViewCount > v[j].ViewCount
		}
		return v[i].CreatedAt.After(v[j].CreatedAt)
	})
}

func page(v []*entities.Video, skip, take int) []*entities.Video {
	if skip >= len(v) {
		return []*entities.Video{}
	}
	v = v[skip:]
	if take > 0 && take < len(v) {
		v = v[:take]
	}
	return v
}
