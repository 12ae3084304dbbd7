package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/mehulj/noteshare/internal/models"
)

// SearchNotes runs a full-text query over the notes userID owns or has
// shared access to. Results come back in the index's rank order (best
// match first); bm25 scores are negated so that higher means more
// relevant. An empty result is a valid outcome, not an error.
func (s *SQLiteStore) SearchNotes(ctx context.Context, userID, query string) ([]models.NoteMatch, error) {
	match := ftsQuery(query)
	if match == "" {
		// Nothing tokenizable to search for.
		return []models.NoteMatch{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT n.id, n.owner_id, n.content, n.created_at, n.updated_at, -bm25(notes_fts) AS score
		FROM notes_fts
		JOIN notes n ON n.rowid = notes_fts.rowid
		WHERE notes_fts MATCH ?
		  AND (n.owner_id = ?
		       OR EXISTS (SELECT 1 FROM note_shares ns WHERE ns.note_id = n.id AND ns.user_id = ?))
		ORDER BY bm25(notes_fts)`,
		match, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer rows.Close()

	matches := []models.NoteMatch{}
	for rows.Next() {
		var m models.NoteMatch
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Content, &m.CreatedAt, &m.UpdatedAt, &m.Score); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search results: %w", err)
	}

	for i := range matches {
		if err := s.loadShares(ctx, &matches[i].Note); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

// ftsQuery turns free text into an FTS5 MATCH expression. Each
// whitespace-separated term is quoted so user input can never be parsed
// as FTS5 query syntax; terms are implicitly ANDed.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, `""`)
		terms = append(terms, `"`+f+`"`)
	}
	return strings.Join(terms, " ")
}
