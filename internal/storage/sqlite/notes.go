package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mehulj/noteshare/internal/models"
	"github.com/mehulj/noteshare/internal/storage"
)

const noteColumns = "id, owner_id, content, created_at, updated_at"

// CreateNote persists a new note, assigning its ID and timestamps.
func (s *SQLiteStore) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if note.CreatedAt == 0 {
		note.CreatedAt = now
	}
	if note.UpdatedAt == 0 {
		note.UpdatedAt = note.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (id, owner_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		note.ID, note.OwnerID, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNote retrieves a note by ID, including its shared set.
// Returns (nil, nil) if no such note exists.
func (s *SQLiteStore) GetNote(ctx context.Context, id string) (*models.Note, error) {
	note := &models.Note{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?",
		id,
	).Scan(&note.ID, &note.OwnerID, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if err := s.loadShares(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote replaces the note's content and update timestamp.
func (s *SQLiteStore) UpdateNote(ctx context.Context, note *models.Note) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE notes SET content = ?, updated_at = ? WHERE id = ?",
		note.Content, note.UpdatedAt, note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("note not found: %s", note.ID)
	}
	return nil
}

// DeleteNote removes the note permanently. Shares go with it via the
// foreign key cascade.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// ListNotesByOwner returns the notes owned by ownerID, newest first.
// Creation-time ties are broken by insertion order.
func (s *SQLiteStore) ListNotesByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	return s.listNotes(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC",
		ownerID,
	)
}

// ListNotesSharedWith returns the notes shared with userID, newest first.
func (s *SQLiteStore) ListNotesSharedWith(ctx context.Context, userID string) ([]*models.Note, error) {
	return s.listNotes(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE id IN (SELECT note_id FROM note_shares WHERE user_id = ?)
		 ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
}

// AddShare appends userID to the note's shared set. The composite primary
// key on note_shares makes the check-and-append atomic; a no-op insert
// means the user was already in the set.
func (s *SQLiteStore) AddShare(ctx context.Context, noteID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO note_shares (note_id, user_id) VALUES (?, ?)",
		noteID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add share: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add share: %w", err)
	}
	if n == 0 {
		return storage.ErrAlreadyShared
	}
	return nil
}

func (s *SQLiteStore) listNotes(ctx context.Context, query string, args ...interface{}) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	for _, note := range notes {
		if err := s.loadShares(ctx, note); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, note *models.Note) error {
	if note.Shared == nil {
		note.Shared = []string{}
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM note_shares WHERE note_id = ?",
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		note.Shared = append(note.Shared, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}
	return nil
}
