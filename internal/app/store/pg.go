package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatrelay/internal/app/db"
)

// PG is the Postgres-backed store. All coordination (username uniqueness,
// the bulk read flip, insertion order) is delegated to single-statement
// atomic operations; no in-process locking.
type PG struct {
	pool *pgxpool.Pool
}

var _ Store = (*PG)(nil)

// NewPG wraps an initialized connection pool.
func NewPG(pool *pgxpool.Pool) *PG {
	return &PG{pool: pool}
}

const userColumns = `id, username, display_name, profile_image, online, last_seen, password_hash`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.ProfileImage, &u.Online, &u.LastSeen, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *PG) Create(ctx context.Context, params NewUserParams) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		uuid.New().String(), params.Username, params.PasswordHash, params.DisplayName,
	)

	user, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *PG) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *PG) GetByID(ctx context.Context, id string) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *PG) SetPresence(ctx context.Context, id string, online bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET online = $2, last_seen = now() WHERE id = $1`,
		id, online,
	)
	if err != nil {
		return fmt.Errorf("set presence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PG) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET display_name = COALESCE($2, display_name),
		    profile_image = COALESCE($3, profile_image)
		WHERE id = $1
		RETURNING `+userColumns,
		id, update.DisplayName, update.ProfileImage,
	)
	return scanUser(row)
}

func (s *PG) ListUsers(ctx context.Context, excludeID string) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id <> $1
		ORDER BY online DESC, username ASC`,
		excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.ProfileImage, &u.Online, &u.LastSeen, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// messageSelect joins sender and receiver display attributes at read time.
// LEFT JOINs so a deleted participant degrades to a tombstone, not an error.
const messageSelect = `
	SELECT m.id, m.sender_id, m.receiver_id, m.room, m.content, m.image_url,
	       m.is_private, m.read, m.created_at,
	       s.username, s.display_name, s.profile_image, s.online, s.last_seen,
	       r.username, r.display_name, r.profile_image, r.online, r.last_seen
	FROM messages m
	LEFT JOIN users s ON s.id = m.sender_id
	LEFT JOIN users r ON r.id = m.receiver_id`

func scanMessages(rows pgx.Rows) ([]Message, error) {
	messages := []Message{}

	for rows.Next() {
		var (
			m                Message
			receiverID, room *string
			sUsername, sName *string
			sImage           *string
			sOnline          *bool
			sLastSeen        *time.Time
			rUsername, rName *string
			rImage           *string
			rOnline          *bool
			rLastSeen        *time.Time
		)

		err := rows.Scan(
			&m.ID, &m.SenderID, &receiverID, &room, &m.Content, &m.ImageURL,
			&m.IsPrivate, &m.Read, &m.CreatedAt,
			&sUsername, &sName, &sImage, &sOnline, &sLastSeen,
			&rUsername, &rName, &rImage, &rOnline, &rLastSeen,
		)
		if err != nil {
			return nil, err
		}

		if receiverID != nil {
			m.ReceiverID = *receiverID
		}
		if room != nil {
			m.Room = *room
		}

		if sUsername != nil {
			m.Sender = &User{
				ID: m.SenderID, Username: *sUsername, DisplayName: *sName,
				ProfileImage: *sImage, Online: *sOnline, LastSeen: *sLastSeen,
			}
		} else {
			m.Sender = Tombstone(m.SenderID)
		}

		if m.ReceiverID != "" {
			if rUsername != nil {
				m.Receiver = &User{
					ID: m.ReceiverID, Username: *rUsername, DisplayName: *rName,
					ProfileImage: *rImage, Online: *rOnline, LastSeen: *rLastSeen,
				}
			} else {
				m.Receiver = Tombstone(m.ReceiverID)
			}
		}

		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (s *PG) ListRoom(ctx context.Context, room string, limit, offset int) ([]Message, error) {
	limit, offset = clampWindow(limit, offset)

	rows, err := s.pool.Query(ctx, messageSelect+`
		WHERE m.room = $1 AND m.is_private = FALSE
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2 OFFSET $3`,
		room, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list room messages: %w", err)
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, fmt.Errorf("list room messages: %w", err)
	}

	reverse(messages)
	return messages, nil
}

func (s *PG) ListPrivate(ctx context.Context, viewerID, otherID string, limit, offset int) ([]Message, error) {
	limit, offset = clampWindow(limit, offset)

	rows, err := s.pool.Query(ctx, messageSelect+`
		WHERE m.is_private = TRUE
		  AND ((m.sender_id = $1 AND m.receiver_id = $2)
		    OR (m.sender_id = $2 AND m.receiver_id = $1))
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $3 OFFSET $4`,
		viewerID, otherID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list private messages: %w", err)
	}
	messages, err := scanMessages(rows)
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("list private messages: %w", err)
	}

	// Read receipts come from the recipient's own fetch. One bulk statement,
	// so concurrent polling from both conversants cannot lose an update. The
	// window above keeps its pre-flip flags.
	_, err = s.pool.Exec(ctx, `
		UPDATE messages SET read = TRUE
		WHERE is_private = TRUE AND sender_id = $1 AND receiver_id = $2 AND read = FALSE`,
		otherID, viewerID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark conversation read: %w", err)
	}

	reverse(messages)
	return messages, nil
}

func (s *PG) Post(ctx context.Context, senderID string, params PostMessageParams) (*Message, error) {
	if err := validatePost(params); err != nil {
		return nil, err
	}

	var receiverID, room *string
	isPrivate := params.ReceiverID != ""
	if isPrivate {
		receiverID = &params.ReceiverID
	} else {
		room = &params.Room
	}

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, room, content, image_url, is_private)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		senderID, receiverID, room, params.Content, params.ImageURL, isPrivate,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	rows, err := s.pool.Query(ctx, messageSelect+` WHERE m.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("load posted message: %w", err)
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, fmt.Errorf("load posted message: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("posted message %d not found", id)
	}

	return &messages[0], nil
}
