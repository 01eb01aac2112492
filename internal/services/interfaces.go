package services

import (
	"context"

	"github.com/devlink/backend/internal/models"
)

// UserService stores account credentials and identities.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Login verifies the email/password pair. A missing account and a wrong
	// password both return ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	DeleteByID(ctx context.Context, id string) error
}

// ProfileService stores one profile per user, including the ordered
// experience and education sub-collections.
type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	// Upsert creates the profile on first write and merges non-nil fields on
	// subsequent writes.
	Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	AddExperience(ctx context.Context, userID string, req *models.AddExperienceRequest) (*models.Profile, error)
	// RemoveExperience is a silent no-op when expID is not present; it returns
	// the profile either way.
	RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, req *models.AddEducationRequest) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// PostService stores posts with their embedded like-sets.
type PostService interface {
	Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error)
	// List returns all posts, newest first.
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// Delete removes the post when userID owns it.
	Delete(ctx context.Context, userID, postID string) error
	// Like prepends userID to the post's like-set. ErrAlreadyLiked when the
	// user is already in the set; ErrPostNotFound when the post is missing.
	Like(ctx context.Context, userID, postID string) ([]models.Like, error)
	// Unlike removes userID from the like-set. ErrNotLiked when absent.
	Unlike(ctx context.Context, userID, postID string) ([]models.Like, error)
}

// AccountService deletes an account and its profile. Posts are intentionally
// left in place; they keep the denormalized author snapshot.
type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) error
}

// requireOwner gates every mutation of an owned resource: it must run after
// authentication and before any write.
func requireOwner(ownerID, actorID string) error {
	if ownerID != actorID {
		return ErrNotOwner
	}
	return nil
}
