// Package session tracks the state of one quiz run.
package session

import (
	"errors"
	"sync"

	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// State is the lifecycle stage of a session.
type State int

const (
	// StateEmpty means no words are loaded.
	StateEmpty State = iota
	// StateLoaded means words are loaded and nothing has been answered yet.
	StateLoaded
	// StateInProgress means at least one answer was recorded.
	StateInProgress
	// StateCompleted is entered when Advance is called on the last word.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ErrNotActive is returned by RecordAnswer when no word is awaiting an answer.
var ErrNotActive = errors.New("session is not active")

// Snapshot is a copy of the session state that callers may keep.
type Snapshot struct {
	Key      wordlist.Key
	Words    []wordlist.Entry
	Index    int
	Answered int
	Correct  int
	State    State
}

// Current returns the word at Index, or false for an empty snapshot.
func (s Snapshot) Current() (wordlist.Entry, bool) {
	if s.Index < 0 || s.Index >= len(s.Words) {
		return wordlist.Entry{}, false
	}
	return s.Words[s.Index], true
}

// Session holds the loaded words, the cursor and the score. It is safe for
// concurrent use.
type Session struct {
	mu       sync.RWMutex
	key      wordlist.Key
	words    []wordlist.Entry
	index    int
	answered int
	correct  int
	state    State
	practised []string
}

// New returns an empty session.
func New() *Session {
	return &Session{words: []wordlist.Entry{}}
}

// Load replaces the words and resets cursor and score in one step.
// An empty list leaves the session in StateEmpty.
func (s *Session) Load(key wordlist.Key, words []wordlist.Entry) {
	cp := make([]wordlist.Entry, len(words))
	for i, w := range words {
		cp[i] = w.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	s.words = cp
	s.index = 0
	s.answered = 0
	s.correct = 0
	s.practised = nil
	if len(cp) == 0 {
		s.state = StateEmpty
	} else {
		s.state = StateLoaded
	}
}

// RecordAnswer counts an answer for the current word.
func (s *Session) RecordAnswer(correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEmpty || s.state == StateCompleted {
		return ErrNotActive
	}
	s.answered++
	if correct {
		s.correct++
	}
	s.practised = append(s.practised, s.words[s.index].Word)
	s.state = StateInProgress
	return nil
}

// Advance moves to the next word. On the last word it marks the session
// completed and keeps the index; further calls do nothing.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.state == StateEmpty || s.state == StateCompleted:
	case s.index < len(s.words)-1:
		s.index++
	default:
		s.state = StateCompleted
	}
}

// Current returns the word under the cursor.
func (s *Session) Current() (wordlist.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.words) == 0 {
		return wordlist.Entry{}, false
	}
	return s.words[s.index].Clone(), true
}

// State returns the lifecycle stage.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a deep copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words := make([]wordlist.Entry, len(s.words))
	for i, w := range s.words {
		words[i] = w.Clone()
	}
	return Snapshot{
		Key:      s.key,
		Words:    words,
		Index:    s.index,
		Answered: s.answered,
		Correct:  s.correct,
		State:    s.state,
	}
}

// AnsweredWords returns every word that received an answer, right or wrong,
// in answer order.
func (s *Session) AnsweredWords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.practised))
	copy(out, s.practised)
	return out
}
