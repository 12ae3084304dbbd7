// Package models defines the core domain models for noteshare.
//
// A Note has exactly one owner for its whole lifetime. The owner may grant
// read access to other users by adding their IDs to the Shared set; the set
// only ever grows (there is no unshare), never contains the owner, and
// grants read-only rights. Users are referenced by ID, never owned: deleting
// a user is not an operation this system has, so no cascades exist.
package models

// Note is a single text note.
type Note struct {
	// ID is the unique identifier for the note (UUID format),
	// assigned by the store.
	ID string `json:"id"`

	// OwnerID is the ID of the user who created the note.
	// Immutable after creation.
	OwnerID string `json:"owner"`

	// Content is the note text. Always non-empty for a persisted note.
	Content string `json:"content"`

	// Shared holds the IDs of users the note has been shared with.
	// Unordered, duplicate-free, and never includes OwnerID.
	Shared []string `json:"shared"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// NoteMatch is a search hit: a note plus the relevance score assigned by
// the full-text index. Higher scores are more relevant.
type NoteMatch struct {
	Note
	Score float64 `json:"score"`
}
