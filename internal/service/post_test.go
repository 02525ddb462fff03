package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/db"
)

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("caller becomes the owner", func(t *testing.T) {
		s := newTestService(t)
		user := createTestUser(t, s, "author")

		post, err := s.CreatePost(ctx, user, CreatePostInput{
			Title:    "help wanted",
			Content:  "please",
			Category: db.PostCategoryGiveMe,
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, post.CreatedUserID)
		assert.NotEmpty(t, post.ID)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		s := newTestService(t)

		_, err := s.CreatePost(ctx, nil, CreatePostInput{
			Title:    "x",
			Content:  "y",
			Category: db.PostCategoryGiveYou,
		})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		s := newTestService(t)
		user := createTestUser(t, s, "author")

		_, err := s.CreatePost(ctx, user, CreatePostInput{
			Title:    "x",
			Content:  "y",
			Category: "Barter",
		})
		assert.Error(t, err)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates supplied fields only", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "before")

		title := "after"
		updated, err := s.UpdatePost(ctx, owner, post.ID, UpdatePostInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, post.Content, updated.Content)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		intruder := createTestUser(t, s, "intruder")
		post := createTestPost(t, s, owner, "before")

		title := "after"
		_, err := s.UpdatePost(ctx, intruder, post.ID, UpdatePostInput{Title: &title})
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		unchanged, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "before", unchanged.Title)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes and receives the prior state", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "doomed")

		deleted, err := s.DeletePost(ctx, owner, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "doomed", deleted.Title)
		assert.Equal(t, int64(0), countRows(t, s, &db.Post{}))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		intruder := createTestUser(t, s, "intruder")
		post := createTestPost(t, s, owner, "safe")

		_, err := s.DeletePost(ctx, intruder, post.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Equal(t, int64(1), countRows(t, s, &db.Post{}))
	})
}

func TestGetPosts(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	postA := createTestPost(t, s, alice, "alice post")
	createTestPost(t, s, bob, "bob post")
	tag := createTestTag(t, s, "go")
	_, err := s.CreateTagPostRelation(ctx, alice, tag.ID, postA.ID)
	require.NoError(t, err)

	t.Run("empty filter returns everything", func(t *testing.T) {
		posts, err := s.GetPosts(ctx, PostFilter{})
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("creator filter", func(t *testing.T) {
		posts, err := s.GetPosts(ctx, PostFilter{CreatedUserID: &alice.ID})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "alice post", posts[0].Title)
	})

	t.Run("tag filter joins the relation table", func(t *testing.T) {
		posts, err := s.GetPosts(ctx, PostFilter{TagID: &tag.ID})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, postA.ID, posts[0].ID)
	})
}
