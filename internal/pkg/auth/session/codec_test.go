package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCodec_IssueVerifyRoundTrip(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Issue("user-1", "alice")
	req.NoError(err)
	req.NotEmpty(token)

	identity, err := codec.Verify(token)
	req.NoError(err)
	req.Equal("user-1", identity.UserID)
	req.Equal("alice", identity.Username)
}

func TestCodec_VerifyMalformedToken(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := codec.Verify(token)
		req.ErrorIs(err, ErrInvalidToken)
	}
}

func TestCodec_VerifyWrongKey(t *testing.T) {
	req := require.New(t)
	issuer := NewCodec("key-one", time.Hour)
	verifier := NewCodec("key-two", time.Hour)

	token, err := issuer.Issue("user-1", "alice")
	req.NoError(err)

	_, err = verifier.Verify(token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestCodec_VerifyTamperedToken(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Issue("user-1", "alice")
	req.NoError(err)

	tampered := token[:len(token)-2] + "xx"
	_, err = codec.Verify(tampered)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestCodec_VerifyExpiredToken(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Second)

	token, err := codec.Issue("user-1", "alice")
	req.NoError(err)

	// Claims carry unix-second precision, so wait past the whole window.
	time.Sleep(2100 * time.Millisecond)

	_, err = codec.Verify(token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestCodec_DefaultTTL(t *testing.T) {
	req := require.New(t)

	codec := NewCodec("test-secret", 0)
	req.Equal(DefaultTTL, codec.TTL())
}
