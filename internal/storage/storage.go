package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ivlev/deck2video/internal/slide"
)

// ErrNoState is returned by Load when there is no usable saved position.
var ErrNoState = errors.New("no saved presentation state")

// State is the last settled position of a presentation.
type State struct {
	Title      string `json:"title"`
	SlideIndex int    `json:"slideIndex"`
	BuildIndex int    `json:"buildIndex"`
	Timestamp  int64  `json:"timestamp"` // unix ms
}

// record mirrors State with optional fields so that missing ones can be told
// apart from zero values.
type record struct {
	Title      *string `json:"title"`
	SlideIndex *int    `json:"slideIndex"`
	BuildIndex *int    `json:"buildIndex"`
	Timestamp  *int64  `json:"timestamp"`
}

// Backend holds a single saved record.
type Backend interface {
	// Read returns nil data when nothing is stored.
	Read() ([]byte, error)
	Write(data []byte) error
	Remove() error
}

// Store saves and restores the presenter position.
type Store struct {
	backend Backend
	now     func() time.Time
}

// New creates a store on top of backend.
func New(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// Save records a settled position.
func (s *Store) Save(title string, slideIndex, buildIndex int) error {
	data, err := json.Marshal(State{
		Title:      title,
		SlideIndex: slideIndex,
		BuildIndex: buildIndex,
		Timestamp:  s.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.backend.Write(data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Load returns the saved position for p if it is younger than ttl. A ttl of zero
// or less disables resuming. Out-of-range indices are clamped to p. Records that
// cannot be used are removed and reported as ErrNoState.
func (s *Store) Load(p *slide.Presentation, ttl time.Duration) (State, error) {
	data, err := s.backend.Read()
	if err != nil {
		return State{}, fmt.Errorf("failed to read state: %w", err)
	}
	if len(data) == 0 {
		return State{}, ErrNoState
	}

	if ttl <= 0 {
		return State{}, s.discard("resuming disabled")
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		log.Printf("[!] Saved state is not valid JSON: %v", err)
		return State{}, s.discard("invalid JSON")
	}
	if r.Title == nil || r.SlideIndex == nil || r.BuildIndex == nil || r.Timestamp == nil {
		return State{}, s.discard("missing fields")
	}

	st := State{
		Title:      *r.Title,
		SlideIndex: *r.SlideIndex,
		BuildIndex: *r.BuildIndex,
		Timestamp:  *r.Timestamp,
	}

	if st.Title != p.Title {
		return State{}, s.discard("title mismatch")
	}

	age := s.now().Sub(time.UnixMilli(st.Timestamp))
	if age > ttl {
		return State{}, s.discard("stale")
	}

	if st.SlideIndex > len(p.Slides)-1 {
		st.SlideIndex = len(p.Slides) - 1
		st.BuildIndex = 0
	}

	sl := p.Slide(st.SlideIndex)
	if sl == nil {
		return State{}, s.discard("slide out of range")
	}

	if st.BuildIndex > sl.BuildCount() {
		st.BuildIndex = sl.BuildCount()
	}
	if st.BuildIndex < 0 {
		st.BuildIndex = 0
	}

	return st, nil
}

func (s *Store) discard(reason string) error {
	if err := s.backend.Remove(); err != nil {
		return fmt.Errorf("failed to remove state (%s): %w", reason, err)
	}
	return ErrNoState
}
