// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mehulj/noteshare/internal/models"
)

// ErrAlreadyShared is returned by AddShare when the target user is already
// in the note's shared set. The check-and-append is atomic in the store.
var ErrAlreadyShared = errors.New("note is already shared with this user")

// Store defines the persistence operations the services need. Lookup
// methods return (nil, nil) when the record does not exist so callers can
// distinguish absence from infrastructure failure.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Notes. CreateNote assigns the ID and timestamps.
	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, id string) (*models.Note, error)
	UpdateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, id string) error

	// ListNotesByOwner and ListNotesSharedWith return notes in
	// descending creation order, ties broken by insertion order.
	ListNotesByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)
	ListNotesSharedWith(ctx context.Context, userID string) ([]*models.Note, error)

	// AddShare appends userID to the note's shared set if absent,
	// returning ErrAlreadyShared otherwise.
	AddShare(ctx context.Context, noteID, userID string) error

	// SearchNotes runs a full-text query over the notes the user owns or
	// has shared access to, ordered by descending relevance score.
	SearchNotes(ctx context.Context, userID, query string) ([]models.NoteMatch, error)

	// Close releases any resources held by the store.
	Close() error
}
