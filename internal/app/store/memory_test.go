package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Memory, username string) *User {
	t.Helper()
	u, err := s.Create(context.Background(), NewUserParams{
		Username:     username,
		PasswordHash: "x",
		DisplayName:  username,
	})
	require.NoError(t, err)
	return u
}

func TestCreate_DuplicateUsername(t *testing.T) {
	req := require.New(t)
	s := NewMemory()

	seedUser(t, s, "alice")

	_, err := s.Create(context.Background(), NewUserParams{Username: "alice", PasswordHash: "y"})
	req.ErrorIs(err, ErrUserExists)
}

func TestPost_AddressingModes(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	roomMsg, err := s.Post(ctx, alice.ID, PostMessageParams{Content: "hi", Room: DefaultRoom})
	req.NoError(err)
	req.False(roomMsg.IsPrivate)
	req.Empty(roomMsg.ReceiverID)
	req.Equal(DefaultRoom, roomMsg.Room)

	privateMsg, err := s.Post(ctx, alice.ID, PostMessageParams{Content: "psst", ReceiverID: bob.ID})
	req.NoError(err)
	req.True(privateMsg.IsPrivate)
	req.Empty(privateMsg.Room)
	req.Equal(bob.ID, privateMsg.ReceiverID)
	req.False(privateMsg.Read)

	_, err = s.Post(ctx, alice.ID, PostMessageParams{Content: "hi", Room: DefaultRoom, ReceiverID: bob.ID})
	req.ErrorIs(err, ErrAmbiguousTarget)

	_, err = s.Post(ctx, alice.ID, PostMessageParams{Content: "hi"})
	req.ErrorIs(err, ErrMissingTarget)
}

func TestPost_ContentOrImageRequired(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	_, err := s.Post(ctx, alice.ID, PostMessageParams{Room: DefaultRoom})
	req.ErrorIs(err, ErrEmptyMessage)

	msg, err := s.Post(ctx, alice.ID, PostMessageParams{ImageURL: "x", ReceiverID: bob.ID})
	req.NoError(err)
	req.Empty(msg.Content)
	req.Equal("x", msg.ImageURL)
}

func TestPost_EnrichesSenderAtReadTime(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	msg, err := s.Post(ctx, alice.ID, PostMessageParams{Content: "hi", Room: DefaultRoom})
	req.NoError(err)
	req.NotNil(msg.Sender)
	req.Equal("alice", msg.Sender.Username)
}

func TestListRoom_ChronologicalWindow(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	for _, content := range []string{"m1", "m2", "m3"} {
		_, err := s.Post(ctx, alice.ID, PostMessageParams{Content: content, Room: DefaultRoom})
		req.NoError(err)
	}

	// Oldest first within the window, whatever the window size.
	for _, limit := range []int{3, 10, 200} {
		messages, err := s.ListRoom(ctx, DefaultRoom, limit, 0)
		req.NoError(err)
		req.Len(messages, 3)
		req.Equal("m1", messages[0].Content)
		req.Equal("m2", messages[1].Content)
		req.Equal("m3", messages[2].Content)
	}
}

func TestListRoom_WindowingAndOffset(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	for _, content := range []string{"m1", "m2", "m3", "m4", "m5"} {
		_, err := s.Post(ctx, alice.ID, PostMessageParams{Content: content, Room: DefaultRoom})
		req.NoError(err)
	}

	// limit=2, offset=0: the two most recent, chronological.
	window, err := s.ListRoom(ctx, DefaultRoom, 2, 0)
	req.NoError(err)
	req.Len(window, 2)
	req.Equal("m4", window[0].Content)
	req.Equal("m5", window[1].Content)

	// limit=2, offset=2: the next page back.
	window, err = s.ListRoom(ctx, DefaultRoom, 2, 2)
	req.NoError(err)
	req.Len(window, 2)
	req.Equal("m2", window[0].Content)
	req.Equal("m3", window[1].Content)
}

func TestListRoom_Idempotent(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	for _, content := range []string{"m1", "m2", "m3"} {
		_, err := s.Post(ctx, alice.ID, PostMessageParams{Content: content, Room: DefaultRoom})
		req.NoError(err)
	}

	first, err := s.ListRoom(ctx, DefaultRoom, 50, 0)
	req.NoError(err)
	second, err := s.ListRoom(ctx, DefaultRoom, 50, 0)
	req.NoError(err)

	req.Equal(first, second)
}

func TestListRoom_ExcludesPrivateAndOtherRooms(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	_, err := s.Post(ctx, alice.ID, PostMessageParams{Content: "general", Room: DefaultRoom})
	req.NoError(err)
	_, err = s.Post(ctx, alice.ID, PostMessageParams{Content: "other", Room: "random"})
	req.NoError(err)
	_, err = s.Post(ctx, alice.ID, PostMessageParams{Content: "private", ReceiverID: bob.ID})
	req.NoError(err)

	messages, err := s.ListRoom(ctx, DefaultRoom, 50, 0)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("general", messages[0].Content)
}

func TestListPrivate_BothDirections(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	carol := seedUser(t, s, "carol")

	_, err := s.Post(ctx, alice.ID, PostMessageParams{Content: "a->b", ReceiverID: bob.ID})
	req.NoError(err)
	_, err = s.Post(ctx, bob.ID, PostMessageParams{Content: "b->a", ReceiverID: alice.ID})
	req.NoError(err)
	_, err = s.Post(ctx, carol.ID, PostMessageParams{Content: "c->a", ReceiverID: alice.ID})
	req.NoError(err)

	messages, err := s.ListPrivate(ctx, alice.ID, bob.ID, 50, 0)
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("a->b", messages[0].Content)
	req.Equal("b->a", messages[1].Content)
}

func TestListPrivate_ReadFlip(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	_, err := s.Post(ctx, bob.ID, PostMessageParams{Content: "unread", ReceiverID: alice.ID})
	req.NoError(err)

	// The first fetch by the recipient returns the pre-flip flag.
	window, err := s.ListPrivate(ctx, alice.ID, bob.ID, 50, 0)
	req.NoError(err)
	req.Len(window, 1)
	req.False(window[0].Read)

	// The flip is visible to any subsequent fetch, including the sender's.
	window, err = s.ListPrivate(ctx, bob.ID, alice.ID, 50, 0)
	req.NoError(err)
	req.Len(window, 1)
	req.True(window[0].Read)
}

func TestListPrivate_ReadFlipOnlyTargetsViewerInbox(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	_, err := s.Post(ctx, alice.ID, PostMessageParams{Content: "a->b", ReceiverID: bob.ID})
	req.NoError(err)

	// Alice viewing the conversation must not mark her own outgoing
	// message as read; only Bob's fetch does that.
	_, err = s.ListPrivate(ctx, alice.ID, bob.ID, 50, 0)
	req.NoError(err)

	window, err := s.ListPrivate(ctx, alice.ID, bob.ID, 50, 0)
	req.NoError(err)
	req.False(window[0].Read)

	_, err = s.ListPrivate(ctx, bob.ID, alice.ID, 50, 0)
	req.NoError(err)

	window, err = s.ListPrivate(ctx, alice.ID, bob.ID, 50, 0)
	req.NoError(err)
	req.True(window[0].Read)
}

func TestListUsers_PresenceOrdering(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	carol := seedUser(t, s, "carol")
	dave := seedUser(t, s, "dave")

	req.NoError(s.SetPresence(ctx, carol.ID, true))
	req.NoError(s.SetPresence(ctx, bob.ID, true))

	users, err := s.ListUsers(ctx, dave.ID)
	req.NoError(err)
	req.Len(users, 3)

	// Online first, then username ascending.
	req.Equal("bob", users[0].Username)
	req.Equal("carol", users[1].Username)
	req.Equal("alice", users[2].Username)
	req.True(users[0].Online)
	req.True(users[1].Online)
	req.False(users[2].Online)

	_ = alice
}

func TestSetPresence_UnknownUser(t *testing.T) {
	req := require.New(t)
	s := NewMemory()

	err := s.SetPresence(context.Background(), "missing", true)
	req.ErrorIs(err, ErrNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	req := require.New(t)
	s := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	displayName := "Alice A."
	updated, err := s.UpdateProfile(ctx, alice.ID, ProfileUpdate{DisplayName: &displayName})
	req.NoError(err)
	req.Equal("Alice A.", updated.DisplayName)
	req.Empty(updated.ProfileImage)

	image := "https://blobs.example/uploads/a.png"
	updated, err = s.UpdateProfile(ctx, alice.ID, ProfileUpdate{ProfileImage: &image})
	req.NoError(err)
	req.Equal("Alice A.", updated.DisplayName)
	req.Equal(image, updated.ProfileImage)
}
