package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTextLen is the maximum entry text length, counted in runes.
const MaxTextLen = 500

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 10

// Entry is one immutable growth log record. Entries are created once and
// only ever read afterwards; there is no update or delete path.
type Entry struct {
	Seq       int64  // insertion order, tie-breaker for pagination
	ID        string // opaque public identifier
	Text      string
	Effort    int      // 1..5
	Tags      []string // ordered, possibly empty
	CreatedAt int64    // unix millis, full precision
}

// CreatedTime returns the creation timestamp as a time.Time.
func (e *Entry) CreatedTime() time.Time {
	return time.UnixMilli(e.CreatedAt)
}

// CreateEntry validates and persists a new entry with a server-assigned
// id and timestamp. Validation failures return a *ValidationError before
// anything is written.
func (db *DB) CreateEntry(text string, effort int, tags []string) (*Entry, error) {
	return db.createEntryAt(text, effort, tags, time.Now().UnixMilli())
}

func (db *DB) createEntryAt(text string, effort int, tags []string, createdAt int64) (*Entry, error) {
	if err := validateEntry(text, effort, tags); err != nil {
		return nil, err
	}

	encoded, err := encodeTags(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	id := uuid.NewString()
	result, err := db.Exec(`
		INSERT INTO entries (id, text, effort, tags, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, text, effort, encoded, createdAt)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	seq, _ := result.LastInsertId()
	decoded, err := decodeTags(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	return &Entry{
		Seq:       seq,
		ID:        id,
		Text:      text,
		Effort:    effort,
		Tags:      decoded,
		CreatedAt: createdAt,
	}, nil
}

func validateEntry(text string, effort int, tags []string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		return &ValidationError{Field: "text", Reason: fmt.Sprintf("must be at most %d characters", MaxTextLen)}
	}
	if effort < 1 || effort > 5 {
		return &ValidationError{Field: "effort", Reason: "must be between 1 and 5"}
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return &ValidationError{Field: "tags", Reason: "must not contain empty tags"}
		}
	}
	return nil
}

// GetEntry returns the entry with the given id, or nil if not found.
func (db *DB) GetEntry(id string) (*Entry, error) {
	var e Entry
	var encoded string
	err := db.QueryRow(`
		SELECT seq, id, text, effort, tags, created_at
		FROM entries WHERE id = ?
	`, id).Scan(&e.Seq, &e.ID, &e.Text, &e.Effort, &encoded, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	e.Tags, err = decodeTags(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &e, nil
}

// ListEntries returns up to limit entries in descending date order, ties
// broken by insertion order (newest-inserted first). The cursor is the id
// of the last entry of the previous page; results resume strictly after
// it. It fetches limit+1 rows to detect whether more results exist: when
// they do, nextCursor is the id of the last returned entry, otherwise
// nextCursor is empty. An unknown cursor fails with ErrCursorNotFound.
func (db *DB) ListEntries(cursor string, limit int) ([]Entry, string, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}

	var rows *sql.Rows
	var err error
	if cursor == "" {
		rows, err = db.Query(`
			SELECT seq, id, text, effort, tags, created_at
			FROM entries
			ORDER BY created_at DESC, seq DESC
			LIMIT ?
		`, limit+1)
	} else {
		var curCreated, curSeq int64
		err = db.QueryRow("SELECT created_at, seq FROM entries WHERE id = ?", cursor).Scan(&curCreated, &curSeq)
		if err == sql.ErrNoRows {
			return nil, "", ErrCursorNotFound
		}
		if err != nil {
			return nil, "", fmt.Errorf("resolve cursor: %w", err)
		}
		rows, err = db.Query(`
			SELECT seq, id, text, effort, tags, created_at
			FROM entries
			WHERE created_at < ? OR (created_at = ? AND seq < ?)
			ORDER BY created_at DESC, seq DESC
			LIMIT ?
		`, curCreated, curCreated, curSeq, limit+1)
	}
	if err != nil {
		return nil, "", fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(entries) > limit {
		entries = entries[:limit]
		nextCursor = entries[limit-1].ID
	}
	return entries, nextCursor, nil
}

// SearchEntries returns up to limit entries whose text contains the query,
// case-insensitively, newest first.
func (db *DB) SearchEntries(query string, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	rows, err := db.Query(`
		SELECT seq, id, text, effort, tags, created_at
		FROM entries
		WHERE instr(lower(text), lower(?)) > 0
		ORDER BY created_at DESC, seq DESC
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// CountEntries returns the total number of entries.
func (db *DB) CountEntries() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var encoded string
		if err := rows.Scan(&e.Seq, &e.ID, &e.Text, &e.Effort, &encoded, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		tags, err := decodeTags(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		e.Tags = tags
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// encodeTags serializes tags as a JSON array string for storage. A nil or
// empty list encodes to "[]", never to null.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(encoded string) ([]string, error) {
	if encoded == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
