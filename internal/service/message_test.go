package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/db"
)

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a DM room with both members", func(t *testing.T) {
		s := newTestService(t)
		alice := createTestUser(t, s, "alice")
		bob := createTestUser(t, s, "bob")

		room, err := s.CreateRoom(ctx, alice, bob.ID)
		require.NoError(t, err)
		assert.Nil(t, room.GroupID)
		assert.Len(t, room.Members, 2)
	})

	t.Run("second DM room for the pair is a conflict", func(t *testing.T) {
		s := newTestService(t)
		alice := createTestUser(t, s, "alice")
		bob := createTestUser(t, s, "bob")

		_, err := s.CreateRoom(ctx, alice, bob.ID)
		require.NoError(t, err)

		_, err = s.CreateRoom(ctx, bob, alice.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, int64(1), countRows(t, s, &db.Room{}))
	})

	t.Run("missing partner is not found", func(t *testing.T) {
		s := newTestService(t)
		alice := createTestUser(t, s, "alice")

		_, err := s.CreateRoom(ctx, alice, "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestGetTargetRoomMember(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	eve := createTestUser(t, s, "eve")
	room, err := s.CreateRoom(ctx, alice, bob.ID)
	require.NoError(t, err)

	t.Run("returns the other member", func(t *testing.T) {
		member, err := s.GetTargetRoomMember(ctx, alice, room.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, member.UserID)
		assert.Equal(t, "bob", member.User.Name)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := s.GetTargetRoomMember(ctx, eve, room.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("missing room is not found", func(t *testing.T) {
		_, err := s.GetTargetRoomMember(ctx, alice, "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out read state and notifications", func(t *testing.T) {
		s := newTestService(t)
		alice := createTestUser(t, s, "alice")
		bob := createTestUser(t, s, "bob")
		room, err := s.CreateRoom(ctx, alice, bob.ID)
		require.NoError(t, err)

		message, err := s.CreateMessage(ctx, alice, room.ID, "hello")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, message.UserID)
		assert.Equal(t, "alice", message.User.Name)

		// exactly one unread row and one notification, both for bob
		reads := make([]db.ReadManagement, 0)
		require.NoError(t, s.db.Find(&reads).Error)
		require.Len(t, reads, 1)
		assert.Equal(t, bob.ID, reads[0].TargetUserID)
		assert.Equal(t, message.ID, reads[0].MessageID)
		assert.False(t, reads[0].IsRead)

		notifications := make([]db.Notification, 0)
		require.NoError(t, s.db.Find(&notifications).Error)
		require.Len(t, notifications, 1)
		assert.Equal(t, bob.ID, notifications[0].TargetUserID)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		s := newTestService(t)
		alice := createTestUser(t, s, "alice")
		bob := createTestUser(t, s, "bob")
		eve := createTestUser(t, s, "eve")
		room, err := s.CreateRoom(ctx, alice, bob.ID)
		require.NoError(t, err)

		_, err = s.CreateMessage(ctx, eve, room.ID, "let me in")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Equal(t, int64(0), countRows(t, s, &db.Message{}))
	})

	t.Run("missing room is not found", func(t *testing.T) {
		s := newTestService(t)
		alice := createTestUser(t, s, "alice")

		_, err := s.CreateMessage(ctx, alice, "missing", "hello?")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestGetMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	eve := createTestUser(t, s, "eve")
	room, err := s.CreateRoom(ctx, alice, bob.ID)
	require.NoError(t, err)
	_, err = s.CreateMessage(ctx, alice, room.ID, "first")
	require.NoError(t, err)
	_, err = s.CreateMessage(ctx, bob, room.ID, "second")
	require.NoError(t, err)

	t.Run("members read in insertion order", func(t *testing.T) {
		messages, err := s.GetMessages(ctx, bob, room.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Body)
		assert.Equal(t, "second", messages[1].Body)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := s.GetMessages(ctx, eve, room.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}
