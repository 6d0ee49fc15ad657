package timeline

import (
	"errors"
	"time"

	"github.com/kyohei682474/1day1growth/internal/store"
)

// Pager is the minimal paging contract the timeline consumes. *store.DB
// satisfies it directly; UI layers may satisfy it over HTTP instead.
type Pager interface {
	ListEntries(cursor string, limit int) ([]store.Entry, string, error)
}

// ErrFetchInFlight is returned by LoadMore while a previous fetch is
// still running, so rapid repeated "load more" triggers cannot issue
// overlapping page requests.
var ErrFetchInFlight = errors.New("page fetch already in flight")

// Session holds the state of one timeline view: the pages accumulated so
// far, the continuation cursor, and the in-flight guard. It is owned by a
// single consuming view and is not safe for concurrent use.
type Session struct {
	pager      Pager
	pageSize   int
	entries    []store.Entry
	nextCursor string
	exhausted  bool
	inFlight   bool
}

// NewSession creates a session that pages through p pageSize entries at
// a time.
func NewSession(p Pager, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = store.DefaultPageSize
	}
	return &Session{pager: p, pageSize: pageSize}
}

// LoadMore fetches the next page and appends it to the accumulated
// timeline. It returns the number of entries added. A failed fetch leaves
// the accumulated entries and cursor untouched; once the timeline is
// exhausted further calls are no-ops.
func (s *Session) LoadMore() (int, error) {
	if s.inFlight {
		return 0, ErrFetchInFlight
	}
	if s.exhausted {
		return 0, nil
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()

	entries, next, err := s.pager.ListEntries(s.nextCursor, s.pageSize)
	if err != nil {
		return 0, err
	}
	s.entries = append(s.entries, entries...)
	s.nextCursor = next
	if next == "" {
		s.exhausted = true
	}
	return len(entries), nil
}

// Record prepends a just-created entry to the accumulated timeline. The
// entry carries a server-assigned current timestamp, so it sorts ahead of
// everything already loaded.
func (s *Session) Record(e store.Entry) {
	s.entries = append([]store.Entry{e}, s.entries...)
}

// Entries returns the accumulated timeline, newest first.
func (s *Session) Entries() []store.Entry {
	return s.entries
}

// HasMore reports whether another page may exist.
func (s *Session) HasMore() bool {
	return !s.exhausted
}

// Streak recomputes the current streak over the entries loaded so far.
func (s *Session) Streak(now time.Time) int {
	return Streak(s.entries, now)
}
