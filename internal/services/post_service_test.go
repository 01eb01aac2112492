package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink/backend/internal/models"
)

func newTestAuthor(id, name string) *models.User {
	return &models.User{
		ID:     id,
		Name:   name,
		Email:  name + "@x.com",
		Avatar: "https://example.com/" + id + ".png",
	}
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	svc := NewMemoryPostService(nil)

	alice := newTestAuthor("alice-id", "Alice")
	post, err := svc.Create(context.Background(), alice, &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "alice-id", post.UserID)
	assert.Equal(t, "Alice", post.Name)
	assert.Equal(t, alice.Avatar, post.Avatar)
	assert.Empty(t, post.Likes)
}

func TestListPostsNewestFirst(t *testing.T) {
	svc := NewMemoryPostService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, newTestAuthor("alice-id", "Alice"), &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.Create(ctx, newTestAuthor("bob-id", "Bob"), &models.CreatePostRequest{Text: "world"})
	require.NoError(t, err)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "world", posts[0].Text)
	assert.Equal(t, "hello", posts[1].Text)
}

func TestDeletePostOwnership(t *testing.T) {
	svc := NewMemoryPostService(nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, newTestAuthor("alice-id", "Alice"), &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	// Non-owner cannot delete; the post stays persisted.
	err = svc.Delete(ctx, "bob-id", post.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = svc.GetByID(ctx, post.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice-id", post.ID))
	_, err = svc.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "alice-id", post.ID), ErrPostNotFound)
}

func TestLikeTwiceConflicts(t *testing.T) {
	svc := NewMemoryPostService(nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, newTestAuthor("alice-id", "Alice"), &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	likes, err := svc.Like(ctx, "bob-id", post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "bob-id", likes[0].User)

	_, err = svc.Like(ctx, "bob-id", post.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 1)
}

func TestLikeOrderMostRecentFirst(t *testing.T) {
	svc := NewMemoryPostService(nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, newTestAuthor("alice-id", "Alice"), &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	_, err = svc.Like(ctx, "bob-id", post.ID)
	require.NoError(t, err)
	likes, err := svc.Like(ctx, "carol-id", post.ID)
	require.NoError(t, err)

	require.Len(t, likes, 2)
	assert.Equal(t, "carol-id", likes[0].User)
	assert.Equal(t, "bob-id", likes[1].User)
}

func TestUnlikeWithoutLikeConflicts(t *testing.T) {
	svc := NewMemoryPostService(nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, newTestAuthor("alice-id", "Alice"), &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	_, err = svc.Unlike(ctx, "bob-id", post.ID)
	assert.ErrorIs(t, err, ErrNotLiked)

	_, err = svc.Like(ctx, "bob-id", post.ID)
	require.NoError(t, err)

	likes, err := svc.Unlike(ctx, "bob-id", post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	// The state machine is back at NotLiked; a second unlike conflicts again.
	_, err = svc.Unlike(ctx, "bob-id", post.ID)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestPostReadsDetachedFromLaterUnlike(t *testing.T) {
	svc := NewMemoryPostService(nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, newTestAuthor("alice-id", "Alice"), &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)
	_, err = svc.Like(ctx, "bob-id", post.ID)
	require.NoError(t, err)
	_, err = svc.Like(ctx, "carol-id", post.ID)
	require.NoError(t, err)

	before, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "carol-id", before.Likes[0].User)

	_, err = svc.Unlike(ctx, "carol-id", post.ID)
	require.NoError(t, err)

	// The unlike compacts the stored like slice in place; the earlier read
	// must not share its backing array.
	require.Len(t, before.Likes, 2)
	assert.Equal(t, "carol-id", before.Likes[0].User)
	assert.Equal(t, "bob-id", before.Likes[1].User)

	after, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, after.Likes, 1)
	assert.Equal(t, "bob-id", after.Likes[0].User)
}

func TestLikeMissingPost(t *testing.T) {
	svc := NewMemoryPostService(nil)
	ctx := context.Background()

	_, err := svc.Like(ctx, "bob-id", "no-such-post")
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.Unlike(ctx, "bob-id", "no-such-post")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
