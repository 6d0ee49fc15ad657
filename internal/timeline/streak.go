// Package timeline computes derived views over the entry log: the
// consecutive-day streak and the session-scoped page accumulation that
// feeds it.
package timeline

import (
	"time"

	"github.com/kyohei682474/1day1growth/internal/store"
)

// Streak returns the length of the consecutive-day streak ending today.
//
// entries must already be ordered by date descending, ties newest-inserted
// first — the store's contract. Streak does not re-sort. "Today" is
// derived from now, in now's location; entry i extends the streak only if
// its calendar day equals today minus i days. The first mismatch ends the
// walk, so a streak computed over a partially loaded timeline is capped at
// the number of entries loaded.
func Streak(entries []store.Entry, now time.Time) int {
	today := midnight(now)
	streak := 0
	for i := range entries {
		day := midnight(entries[i].CreatedTime().In(now.Location()))
		expected := today.AddDate(0, 0, -i)
		if !day.Equal(expected) {
			break
		}
		streak++
	}
	return streak
}

// CurrentStreak pages through the full timeline and returns the streak
// over all of history. It stops fetching as soon as the streak breaks, so
// at most streak/pageSize + 1 pages are loaded.
func CurrentStreak(p Pager, pageSize int, now time.Time) (int, error) {
	s := NewSession(p, pageSize)
	for {
		if _, err := s.LoadMore(); err != nil {
			return 0, err
		}
		streak := s.Streak(now)
		if !s.HasMore() || streak < len(s.Entries()) {
			return streak, nil
		}
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
