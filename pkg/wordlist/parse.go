package wordlist

import (
	"bytes"
	"strings"
)

// MinFields is the number of comma separated fields a static line must carry:
// word, translation and part of speech.
const MinFields = 3

// Malformed describes a line that Parse dropped.
type Malformed struct {
	Line int // 1-based
	Text string
}

// ParseResult holds the entries parsed from a static wordlist and the lines that were skipped.
type ParseResult struct {
	Entries []Entry
	Dropped []Malformed
}

// Parse reads the line oriented static format: one "word,translation,partOfSpeech"
// triple per line. Blank lines and lines starting with '#' are ignored. Lines with
// fewer than three fields are recorded in Dropped instead of failing the parse.
// Entries keep the order of the input. Entries is never nil.
func Parse(text string) ParseResult {
	res := ParseResult{Entries: []Entry{}}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.Split(trimmed, ",")
		if len(parts) < MinFields {
			res.Dropped = append(res.Dropped, Malformed{Line: i + 1, Text: line})
			continue
		}

		res.Entries = append(res.Entries, Entry{
			Word:         strings.TrimSpace(parts[0]),
			Translation:  strings.TrimSpace(parts[1]),
			PartOfSpeech: strings.TrimSpace(parts[2]),
		})
	}

	return res
}

// Format writes entries in the static format accepted by Parse, with a trailing newline.
// Commas inside fields are replaced by spaces since the format has no quoting.
func Format(entries []Entry) []byte {
	var buf bytes.Buffer
	clean := strings.NewReplacer(",", " ", "\n", " ", "\r", " ")
	for _, e := range entries {
		buf.WriteString(strings.TrimSpace(clean.Replace(e.Word)))
		buf.WriteByte(',')
		buf.WriteString(strings.TrimSpace(clean.Replace(e.Translation)))
		buf.WriteByte(',')
		buf.WriteString(strings.TrimSpace(clean.Replace(e.PartOfSpeech)))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
