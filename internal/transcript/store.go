// Package transcript holds the committed transcript for a caption session.
package transcript

import (
	"strings"
	"sync"

	"live-caption/internal/textnorm"
)

// Store accumulates cleaned final segments. Segments are append-only: once
// committed they are never removed or rewritten. The store remembers the
// last committed segment so an identical retransmission from the backend is
// absorbed silently.
type Store struct {
	mu       sync.Mutex
	norm     textnorm.Normalizer
	segments []string
	last     string
}

// NewStore creates an empty Store using norm for segment cleaning.
func NewStore(norm textnorm.Normalizer) *Store {
	return &Store{norm: norm}
}

// CommitFinal cleans raw and appends it to the committed transcript.
// Empty input and an exact repeat of the immediately preceding final are
// no-ops. A final that extends the previous one word-for-word commits only
// the new words, so a backend restating committed text never duplicates it.
// Returns the cleaned text and whether a segment was appended.
func (s *Store) CommitFinal(raw string) (string, bool) {
	cleaned := s.norm.Clean(raw)
	if cleaned == "" {
		return cleaned, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	segment := cleaned
	if s.last != "" {
		if cleaned == s.last {
			return cleaned, false
		}
		// Extension check cuts at a word boundary: "testing ones" is not
		// an extension of "testing one".
		if rest, ok := strings.CutPrefix(cleaned, s.last+" "); ok {
			segment = s.norm.Clean(rest)
			if segment == "" {
				return cleaned, false
			}
		}
	}
	s.segments = append(s.segments, segment)
	s.last = cleaned
	return cleaned, true
}

// Snapshot returns the full committed transcript, segments joined by single
// spaces. The join is re-cleaned so inter-segment spacing stays normalized.
func (s *Store) Snapshot() string {
	s.mu.Lock()
	joined := strings.Join(s.segments, " ")
	s.mu.Unlock()

	return s.norm.Clean(joined)
}

// Len returns the number of committed segments.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.segments)
}
