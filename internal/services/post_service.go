package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devlink/backend/internal/models"
	"github.com/devlink/backend/internal/storage"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post has not yet been liked")
)

// MemoryPostService keeps posts with their embedded like-sets in memory,
// optionally snapshotted to a JSON file. The mutex makes the check-then-write
// of a like transition atomic; returned posts are detached copies, so a later
// in-place update cannot rewrite a value a caller already holds.
type MemoryPostService struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
	store *storage.JSONStore
}

func NewMemoryPostService(store *storage.JSONStore) *MemoryPostService {
	s := &MemoryPostService{
		posts: make(map[string]*models.Post),
		store: store,
	}

	if store != nil {
		var snapshot []*models.Post
		if err := store.Load(&snapshot); err == nil {
			for _, p := range snapshot {
				s.posts[p.ID] = p
			}
		}
	}

	return s
}

func (s *MemoryPostService) Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		ID:     uuid.New().String(),
		UserID: author.ID,
		Text:   req.Text,
		// Author snapshot; not re-synced if the account changes later.
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []models.Like{},
		CreatedAt: time.Now(),
	}

	s.posts[post.ID] = post
	s.persist()

	return clonePost(post), nil
}

func (s *MemoryPostService) List(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		results = append(results, clonePost(post))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	return results, nil
}

func (s *MemoryPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, ErrPostNotFound
	}

	return clonePost(post), nil
}

func (s *MemoryPostService) Delete(ctx context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return ErrPostNotFound
	}

	if err := requireOwner(post.UserID, userID); err != nil {
		return err
	}

	delete(s.posts, postID)
	s.persist()

	return nil
}

func (s *MemoryPostService) Like(ctx context.Context, userID, postID string) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	for _, like := range post.Likes {
		if like.User == userID {
			return nil, ErrAlreadyLiked
		}
	}

	// Most recent like first.
	post.Likes = append([]models.Like{{User: userID}}, post.Likes...)
	s.persist()

	return append([]models.Like(nil), post.Likes...), nil
}

func (s *MemoryPostService) Unlike(ctx context.Context, userID, postID string) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	removed := false
	for i, like := range post.Likes {
		if like.User == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return nil, ErrNotLiked
	}
	s.persist()

	return append([]models.Like(nil), post.Likes...), nil
}

// clonePost copies the post along with its like slice. Unlike compacts the
// stored slice in place, so a shared backing array would let it rewrite a
// copy handed out earlier.
func clonePost(post *models.Post) *models.Post {
	postCopy := *post
	postCopy.Likes = append([]models.Like(nil), post.Likes...)
	return &postCopy
}

func (s *MemoryPostService) persist() {
	if s.store == nil {
		return
	}
	snapshot := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		snapshot = append(snapshot, p)
	}
	_ = s.store.Save(snapshot)
}
