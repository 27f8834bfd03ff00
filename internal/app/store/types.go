package store

import "time"

// DefaultRoom is the room a message falls into when the client names none.
const DefaultRoom = "general"

// User is a chat participant. PasswordHash never leaves the server.
//
// Online and LastSeen only change on explicit login and logout; there is no
// heartbeat, so a client that vanishes without logging out stays online until
// it comes back and logs out.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	ProfileImage string    `json:"profileImage"`
	Online       bool      `json:"online"`
	LastSeen     time.Time `json:"lastSeen"`
	PasswordHash string    `json:"-"`
}

// Tombstone is the stand-in summary for a sender or receiver whose user
// record no longer exists. Messages never cascade-delete with their author.
func Tombstone(id string) *User {
	return &User{
		ID:          id,
		Username:    "deleted",
		DisplayName: "Deleted User",
	}
}

// Message is one entry in the message log. Exactly one addressing mode is
// set: Room for room messages, ReceiverID for private ones. Read is only
// meaningful for private messages and only ever moves false to true.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId,omitempty"`
	Room       string    `json:"room,omitempty"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	IsPrivate  bool      `json:"isPrivate"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`

	// Sender and Receiver are display attributes joined in at read time,
	// never stored with the message.
	Sender   *User `json:"sender,omitempty"`
	Receiver *User `json:"receiver,omitempty"`
}

// NewUserParams is the input to UserDirectory.Create.
type NewUserParams struct {
	Username     string
	PasswordHash string
	DisplayName  string
}

// ProfileUpdate carries the optional profile fields of a PUT /api/users call.
// A nil field is left untouched.
type ProfileUpdate struct {
	DisplayName  *string
	ProfileImage *string
}

// PostMessageParams is the input to MessageStore.Post. Room and ReceiverID
// are mutually exclusive; at least one of Content and ImageURL must be set.
type PostMessageParams struct {
	Content    string
	ImageURL   string
	Room       string
	ReceiverID string
}
