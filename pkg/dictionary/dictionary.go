package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// Record is the dictionary data for one word: {word, phonetic, audio, meanings}.
type Record struct {
	Word     string             `json:"word"`
	Phonetic string             `json:"phonetic"`
	Audio    string             `json:"audio,omitempty"`
	Meanings []wordlist.Meaning `json:"meanings"`
}

// upstreamEntry matches one element of the array returned by public
// dictionaryapi.dev style services.
type upstreamEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Looker fetches the dictionary record of a single word.
type Looker interface {
	Lookup(ctx context.Context, word string) (Record, error)
}

// Client looks words up at GET {base}/{word}.
type Client struct {
	base       string
	httpClient *http.Client
	cache      sync.Map // word -> Record
}

// NewClient creates a Client. A nil httpClient gets a default one with a 5s timeout.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), httpClient: httpClient}
}

// Lookup returns the record for word. Successful lookups are cached for the
// life of the client; failures are not.
func (c *Client) Lookup(ctx context.Context, word string) (Record, error) {
	if cached, ok := c.cache.Load(word); ok {
		return cached.(Record), nil
	}

	u := c.base + "/" + url.PathEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Record{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("lookup %q: %w", word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Record{}, fmt.Errorf("lookup %q: unexpected status %d", word, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Record{}, fmt.Errorf("lookup %q: read body: %w", word, err)
	}

	rec, err := decodeRecord(body)
	if err != nil {
		return Record{}, fmt.Errorf("lookup %q: %w", word, err)
	}
	c.cache.Store(word, rec)
	return rec, nil
}

// decodeRecord accepts either a single filtered record object or the raw
// upstream array, which is reduced to the first entry.
func decodeRecord(body []byte) (Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []upstreamEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return Record{}, fmt.Errorf("parse dictionary array: %w", err)
		}
		if len(entries) == 0 {
			return Record{}, fmt.Errorf("empty dictionary result")
		}
		return filter(entries[0]), nil
	}

	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return Record{}, fmt.Errorf("parse dictionary record: %w", err)
	}
	return rec, nil
}

// filter keeps the first non-empty phonetic and audio and the first
// definition of every meaning.
func filter(e upstreamEntry) Record {
	rec := Record{Word: e.Word, Phonetic: e.Phonetic}
	for _, p := range e.Phonetics {
		if rec.Phonetic == "" && p.Text != "" {
			rec.Phonetic = p.Text
		}
		if rec.Audio == "" && p.Audio != "" {
			rec.Audio = p.Audio
		}
	}
	for _, m := range e.Meanings {
		if len(m.Definitions) == 0 {
			continue
		}
		d := m.Definitions[0]
		rec.Meanings = append(rec.Meanings, wordlist.Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definition:   d.Definition,
			Example:      d.Example,
		})
	}
	return rec
}
