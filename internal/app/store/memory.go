package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process store with the same contract as PG. It backs
// development runs without a DATABASE_URL and the handler test suite.
// A single mutex stands in for the database's per-statement atomicity.
type Memory struct {
	mu       sync.Mutex
	users    map[string]*User
	byName   map[string]string
	messages []Message
	nextID   int64
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:  make(map[string]*User),
		byName: make(map[string]string),
		nextID: 1,
	}
}

func (s *Memory) Create(_ context.Context, params NewUserParams) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[params.Username]; taken {
		return nil, ErrUserExists
	}

	u := &User{
		ID:           uuid.New().String(),
		Username:     params.Username,
		DisplayName:  params.DisplayName,
		PasswordHash: params.PasswordHash,
		LastSeen:     time.Now(),
	}
	s.users[u.ID] = u
	s.byName[u.Username] = u.ID

	copied := *u
	return &copied, nil
}

func (s *Memory) GetByUsername(_ context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *Memory) GetByID(_ context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Memory) SetPresence(_ context.Context, id string, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Online = online
	u.LastSeen = time.Now()
	return nil
}

func (s *Memory) UpdateProfile(_ context.Context, id string, update ProfileUpdate) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.DisplayName != nil {
		u.DisplayName = *update.DisplayName
	}
	if update.ProfileImage != nil {
		u.ProfileImage = *update.ProfileImage
	}

	copied := *u
	return &copied, nil
}

func (s *Memory) ListUsers(_ context.Context, excludeID string) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []User{}
	for _, u := range s.users {
		if u.ID == excludeID {
			continue
		}
		users = append(users, *u)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Online != users[j].Online {
			return users[i].Online
		}
		return users[i].Username < users[j].Username
	})

	return users, nil
}

// summaryOf resolves a participant for read-time enrichment, degrading to a
// tombstone when the user record is gone. Callers hold the lock.
func (s *Memory) summaryOf(id string) *User {
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied
	}
	return Tombstone(id)
}

// enrich fills display attributes on a copied message. Callers hold the lock.
func (s *Memory) enrich(m Message) Message {
	m.Sender = s.summaryOf(m.SenderID)
	if m.ReceiverID != "" {
		m.Receiver = s.summaryOf(m.ReceiverID)
	}
	return m
}

// window walks the log newest-first, collecting messages that match, then
// reverses the slice so callers get chronological order.
func (s *Memory) window(match func(*Message) bool, limit, offset int) []Message {
	limit, offset = clampWindow(limit, offset)

	out := []Message{}
	skipped := 0
	for i := len(s.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if !match(&s.messages[i]) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, s.enrich(s.messages[i]))
	}

	reverse(out)
	return out
}

func (s *Memory) ListRoom(_ context.Context, room string, limit, offset int) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.window(func(m *Message) bool {
		return !m.IsPrivate && m.Room == room
	}, limit, offset), nil
}

func (s *Memory) ListPrivate(_ context.Context, viewerID, otherID string, limit, offset int) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := s.window(func(m *Message) bool {
		return m.IsPrivate &&
			((m.SenderID == viewerID && m.ReceiverID == otherID) ||
				(m.SenderID == otherID && m.ReceiverID == viewerID))
	}, limit, offset)

	// Bulk read flip after the fetch; the returned window keeps pre-flip flags.
	for i := range s.messages {
		m := &s.messages[i]
		if m.IsPrivate && m.SenderID == otherID && m.ReceiverID == viewerID && !m.Read {
			m.Read = true
		}
	}

	return messages, nil
}

func (s *Memory) Post(_ context.Context, senderID string, params PostMessageParams) (*Message, error) {
	if err := validatePost(params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := Message{
		ID:        s.nextID,
		SenderID:  senderID,
		Content:   params.Content,
		ImageURL:  params.ImageURL,
		IsPrivate: params.ReceiverID != "",
		CreatedAt: time.Now(),
	}
	s.nextID++

	if m.IsPrivate {
		m.ReceiverID = params.ReceiverID
	} else {
		m.Room = params.Room
	}

	s.messages = append(s.messages, m)

	enriched := s.enrich(m)
	return &enriched, nil
}
