// Package access decides what a requester may do with a note.
//
// Evaluation is a pure function over a note and a user ID, so it can be
// exercised with in-memory values and no store.
package access

import "github.com/mehulj/noteshare/internal/models"

// Level is the class of access a requester has to a note.
type Level int

const (
	// None grants nothing.
	None Level = iota
	// Shared grants read access only.
	Shared
	// Owner grants read, update, delete and share.
	Owner
)

// Evaluate returns the requester's access level for the note.
// The owner is always Owner, even if their ID were to appear in the
// shared set.
func Evaluate(note *models.Note, requesterID string) Level {
	if note.OwnerID == requesterID {
		return Owner
	}
	for _, id := range note.Shared {
		if id == requesterID {
			return Shared
		}
	}
	return None
}

// CanRead reports whether the level permits reading the note.
func CanRead(l Level) bool {
	return l == Owner || l == Shared
}

// CanModify reports whether the level permits update, delete and share.
// Shared users never get write access.
func CanModify(l Level) bool {
	return l == Owner
}
