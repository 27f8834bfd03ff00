/*
Package sync defines the polling contract between server and clients.

There is no push channel. Clients re-issue the same windowed queries on a
fixed interval and replace their whole view with the result, which is safe
because a repeated window query with no new data returns an identical
sequence. Read receipts ride the same mechanism: the recipient's fetch flips
the flags, and the sender observes them on its next poll. Presence is only as
fresh as the last explicit login or logout plus the observer's interval.
*/
package sync

import "time"

const (
	// RoomInterval is the suggested refetch interval for an open room.
	RoomInterval = 3 * time.Second

	// PrivateInterval is the suggested refetch interval for an open
	// private conversation, kept tighter so read receipts surface quickly.
	PrivateInterval = 2 * time.Second

	// UsersInterval is the suggested refetch interval for the presence list.
	UsersInterval = 10 * time.Second
)

// Intervals is the wire form of the polling contract, in milliseconds.
type Intervals struct {
	RoomMillis    int64 `json:"roomMillis"`
	PrivateMillis int64 `json:"privateMillis"`
	UsersMillis   int64 `json:"usersMillis"`
}

// Contract returns the intervals clients should poll at.
func Contract() Intervals {
	return Intervals{
		RoomMillis:    RoomInterval.Milliseconds(),
		PrivateMillis: PrivateInterval.Milliseconds(),
		UsersMillis:   UsersInterval.Milliseconds(),
	}
}
