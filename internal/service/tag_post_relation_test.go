package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/db"
)

func TestCreateTagPostRelation(t *testing.T) {
	ctx := context.Background()

	t.Run("creator attaches a tag", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "post")
		tag := createTestTag(t, s, "tag")

		relation, err := s.CreateTagPostRelation(ctx, owner, tag.ID, post.ID)
		require.NoError(t, err)

		assert.Equal(t, tag.ID, relation.TagID)
		assert.Equal(t, post.ID, relation.PostID)
		assert.Equal(t, tag.Name, relation.Tag.Name)
		assert.Equal(t, post.Title, relation.Post.Title)
		assert.Equal(t, int64(1), countRows(t, s, &db.TagPostRelation{}))
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		intruder := createTestUser(t, s, "intruder")
		post := createTestPost(t, s, owner, "post")
		tag := createTestTag(t, s, "tag")

		_, err := s.CreateTagPostRelation(ctx, intruder, tag.ID, post.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Equal(t, int64(0), countRows(t, s, &db.TagPostRelation{}))
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "post")
		tag := createTestTag(t, s, "tag")

		_, err := s.CreateTagPostRelation(ctx, nil, tag.ID, post.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.Equal(t, int64(0), countRows(t, s, &db.TagPostRelation{}))
	})

	t.Run("missing post is not found", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		tag := createTestTag(t, s, "tag")

		_, err := s.CreateTagPostRelation(ctx, owner, tag.ID, "nope")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, int64(0), countRows(t, s, &db.TagPostRelation{}))
		assert.Equal(t, int64(1), countRows(t, s, &db.Tag{}))
	})

	t.Run("duplicate pair is a conflict", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "post")
		tag := createTestTag(t, s, "tag")

		_, err := s.CreateTagPostRelation(ctx, owner, tag.ID, post.ID)
		require.NoError(t, err)

		_, err = s.CreateTagPostRelation(ctx, owner, tag.ID, post.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, int64(1), countRows(t, s, &db.TagPostRelation{}))
	})
}

func TestCreateTagPostRelationsBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("all pairs created", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "post")
		tagA := createTestTag(t, s, "a")
		tagB := createTestTag(t, s, "b")

		relations, err := s.CreateTagPostRelations(ctx, owner, []TagPostPair{
			{TagID: tagA.ID, PostID: post.ID},
			{TagID: tagB.ID, PostID: post.ID},
		})
		require.NoError(t, err)
		assert.Len(t, relations, 2)
		assert.Equal(t, int64(2), countRows(t, s, &db.TagPostRelation{}))
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "post")
		tagA := createTestTag(t, s, "a")

		_, err := s.CreateTagPostRelations(ctx, owner, []TagPostPair{
			{TagID: tagA.ID, PostID: post.ID},
			{TagID: "missing", PostID: post.ID},
		})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, int64(0), countRows(t, s, &db.TagPostRelation{}))
	})
}

func TestDeleteTagPostRelation(t *testing.T) {
	ctx := context.Background()

	t.Run("creator detaches a tag", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		post := createTestPost(t, s, owner, "post")
		tag := createTestTag(t, s, "tag")
		_, err := s.CreateTagPostRelation(ctx, owner, tag.ID, post.ID)
		require.NoError(t, err)

		deleted, err := s.DeleteTagPostRelation(ctx, owner, tag.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, tag.ID, deleted.TagID)
		assert.Equal(t, post.Title, deleted.Post.Title)
		assert.Equal(t, int64(0), countRows(t, s, &db.TagPostRelation{}))
	})

	t.Run("other user is forbidden and the row survives", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")
		intruder := createTestUser(t, s, "intruder")
		post := createTestPost(t, s, owner, "post")
		tag := createTestTag(t, s, "tag")
		_, err := s.CreateTagPostRelation(ctx, owner, tag.ID, post.ID)
		require.NoError(t, err)

		_, err = s.DeleteTagPostRelation(ctx, intruder, tag.ID, post.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Equal(t, int64(1), countRows(t, s, &db.TagPostRelation{}))
	})

	t.Run("missing relation is not found", func(t *testing.T) {
		s := newTestService(t)
		owner := createTestUser(t, s, "owner")

		_, err := s.DeleteTagPostRelation(ctx, owner, "t", "p")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestGetTagPostRelations(t *testing.T) {
	ctx := context.Background()

	s := newTestService(t)
	owner := createTestUser(t, s, "owner")
	postA := createTestPost(t, s, owner, "a")
	postB := createTestPost(t, s, owner, "b")
	tagX := createTestTag(t, s, "x")
	tagY := createTestTag(t, s, "y")

	for _, pair := range []TagPostPair{
		{TagID: tagX.ID, PostID: postA.ID},
		{TagID: tagX.ID, PostID: postB.ID},
		{TagID: tagY.ID, PostID: postA.ID},
	} {
		_, err := s.CreateTagPostRelation(ctx, owner, pair.TagID, pair.PostID)
		require.NoError(t, err)
	}

	t.Run("no filter returns all rows", func(t *testing.T) {
		relations, err := s.GetTagPostRelations(ctx, nil, nil)
		require.NoError(t, err)
		assert.Len(t, relations, 3)
	})

	t.Run("tag filter", func(t *testing.T) {
		relations, err := s.GetTagPostRelations(ctx, &tagX.ID, nil)
		require.NoError(t, err)
		assert.Len(t, relations, 2)
		for i := range relations {
			assert.Equal(t, tagX.ID, relations[i].TagID)
		}
	})

	t.Run("both filters are conjunctive", func(t *testing.T) {
		relations, err := s.GetTagPostRelations(ctx, &tagX.ID, &postA.ID)
		require.NoError(t, err)
		require.Len(t, relations, 1)
		assert.Equal(t, tagX.ID, relations[0].TagID)
		assert.Equal(t, postA.ID, relations[0].PostID)
		assert.Equal(t, "x", relations[0].Tag.Name)
		assert.Equal(t, "a", relations[0].Post.Title)
	})
}
