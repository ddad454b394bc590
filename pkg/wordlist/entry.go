package wordlist

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is a single vocabulary item of a wordlist.
type Entry struct {
	Word         string    `json:"word"`
	Translation  string    `json:"translation"`
	PartOfSpeech string    `json:"partOfSpeech"`
	Phonetic     string    `json:"phonetic,omitempty"`
	AudioURL     string    `json:"audio,omitempty"`
	Meanings     []Meaning `json:"meanings,omitempty"`
}

// Meaning is one dictionary sense attached to an entry during enrichment.
type Meaning struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
	Example      string `json:"example,omitempty"`
}

// UnmarshalJSON accepts both "partOfSpeech" and the older "type" key
// the wordlist server emits for the part of speech.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var raw struct {
		plain
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entry(raw.plain)
	if e.PartOfSpeech == "" {
		e.PartOfSpeech = raw.Type
	}
	return nil
}

// Enriched reports whether any dictionary data has been merged into the entry.
func (e Entry) Enriched() bool {
	return e.Phonetic != "" || e.AudioURL != "" || len(e.Meanings) > 0
}

// Clone returns a deep copy so callers can update fields without touching the original.
func (e Entry) Clone() Entry {
	out := e
	if e.Meanings != nil {
		out.Meanings = make([]Meaning, len(e.Meanings))
		copy(out.Meanings, e.Meanings)
	}
	return out
}

// Key identifies a wordlist by category and filename (without extension).
type Key struct {
	Category string
	Filename string
}

func (k Key) String() string { return k.Category + "/" + k.Filename }

// Validate rejects keys that are empty or could escape the wordlist directory.
func (k Key) Validate() error {
	for _, part := range []string{k.Category, k.Filename} {
		if strings.TrimSpace(part) == "" {
			return fmt.Errorf("wordlist key %q: empty segment", k.String())
		}
		if strings.ContainsAny(part, `/\`) || part == "." || part == ".." {
			return fmt.Errorf("wordlist key %q: illegal segment %q", k.String(), part)
		}
	}
	return nil
}
