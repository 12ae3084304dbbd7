// Package service orchestrates note and account operations against the
// store, enforcing validation, access control and the fixed precondition
// order of each operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mehulj/noteshare/internal/access"
	"github.com/mehulj/noteshare/internal/models"
	"github.com/mehulj/noteshare/internal/storage"
)

// NoteService implements note CRUD, sharing and search for an
// already-authenticated requester. Every method takes the resolved
// requester id explicitly; nothing here touches credentials.
type NoteService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewNoteService creates a NoteService on the given storage backend.
func NewNoteService(store storage.Store, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

// Create persists a new note owned by the requester. Content must be
// non-empty; nothing is written otherwise.
func (s *NoteService) Create(ctx context.Context, requesterID, content string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	note := &models.Note{
		OwnerID: requesterID,
		Content: content,
		Shared:  []string{},
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("note created", "note_id", note.ID, "user_id", requesterID)
	return note, nil
}

// List returns the requester's own notes and the notes shared with them,
// as two disjoint sequences, each newest first.
func (s *NoteService) List(ctx context.Context, requesterID string) (owned, shared []*models.Note, err error) {
	owned, err = s.store.ListNotesByOwner(ctx, requesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("list owned notes: %w", err)
	}
	shared, err = s.store.ListNotesSharedWith(ctx, requesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("list shared notes: %w", err)
	}

	if owned == nil {
		owned = []*models.Note{}
	}
	if shared == nil {
		shared = []*models.Note{}
	}
	return owned, shared, nil
}

// Get returns the note if the requester is its owner or in its shared
// set. Existence is checked before authorization.
func (s *NoteService) Get(ctx context.Context, requesterID, noteID string) (*models.Note, error) {
	note, err := s.fetch(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(access.Evaluate(note, requesterID)) {
		return nil, ErrForbidden
	}
	return note, nil
}

// Update replaces the note's content. Owner only; the shared set and
// owner are untouched.
func (s *NoteService) Update(ctx context.Context, requesterID, noteID, content string) (*models.Note, error) {
	note, err := s.fetch(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(access.Evaluate(note, requesterID)) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	note.Content = content
	note.UpdatedAt = time.Now().Unix()
	if err := s.store.UpdateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.logger.Info("note updated", "note_id", note.ID, "user_id", requesterID)
	return note, nil
}

// Delete removes the note permanently and returns its last state.
// Owner only; there is no soft delete.
func (s *NoteService) Delete(ctx context.Context, requesterID, noteID string) (*models.Note, error) {
	note, err := s.fetch(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(access.Evaluate(note, requesterID)) {
		return nil, ErrForbidden
	}

	if err := s.store.DeleteNote(ctx, noteID); err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info("note deleted", "note_id", note.ID, "user_id", requesterID)
	return note, nil
}

// Share grants the user behind email read access to the note. The checks
// run in a fixed order, each failing with its own error: note exists,
// requester owns it, email present, target exists, target not already
// shared. The final membership check rides on the store's atomic
// add-if-absent, so concurrent shares cannot produce duplicates.
func (s *NoteService) Share(ctx context.Context, requesterID, noteID, email string) (*models.Note, error) {
	note, err := s.fetch(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(access.Evaluate(note, requesterID)) {
		return nil, ErrForbidden
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	target, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve share target: %w", err)
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if target.ID == note.OwnerID {
		return nil, ErrSelfShare
	}

	if err := s.store.AddShare(ctx, noteID, target.ID); err != nil {
		if errors.Is(err, storage.ErrAlreadyShared) {
			return nil, ErrAlreadyShared
		}
		return nil, fmt.Errorf("add share: %w", err)
	}

	note.Shared = append(note.Shared, target.ID)
	s.logger.Info("note shared", "note_id", note.ID, "user_id", requesterID, "target_id", target.ID)
	return note, nil
}

// Search runs a full-text query over the notes the requester owns or has
// shared access to. Results keep the text index's relevance order; an
// empty result is a valid success.
func (s *NoteService) Search(ctx context.Context, requesterID, query string) ([]models.NoteMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrQueryRequired
	}

	matches, err := s.store.SearchNotes(ctx, requesterID, query)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	if matches == nil {
		matches = []models.NoteMatch{}
	}

	s.logger.Info("search executed", "user_id", requesterID, "results", len(matches))
	return matches, nil
}

// fetch loads a note, translating absence into ErrNoteNotFound.
func (s *NoteService) fetch(ctx context.Context, noteID string) (*models.Note, error) {
	note, err := s.store.GetNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}
