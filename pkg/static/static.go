// Package static serves wordlist text files when the API service is not in use.
// Files can come from the copy embedded in the binary, a local directory or a
// plain HTTP file server laid out as wordlists/{category}/{filename}.txt.
package static

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// BundledName selects the wordlists compiled into the binary.
const BundledName = "bundled"

// CatalogFile is the catalog path inside a static source.
const CatalogFile = "catalog.yaml"

const maxFileSize = 4 * 1024 * 1024

//go:embed bundled
var bundled embed.FS

// ErrInvalidEncoding is returned by DecodeText for bytes that are not UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8 text")

// ErrTooLarge is returned when a served file exceeds the size limit.
var ErrTooLarge = errors.New("static file too large")

// Source fetches a file by slash-separated path. Missing files return an
// error wrapping fs.ErrNotExist.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// New picks a source from base: "" or "bundled" for the embedded files,
// an http(s) URL for a remote file server, anything else as a local directory.
func New(base string, client *http.Client, logger *slog.Logger) (Source, error) {
	switch {
	case base == "" || base == BundledName:
		return Bundled(), nil
	case strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://"):
		return NewHTTP(base, client, logger), nil
	default:
		info, err := os.Stat(base)
		if err != nil {
			return nil, fmt.Errorf("static dir %s: %w", base, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir %s: not a directory", base)
		}
		return NewFS(os.DirFS(base), base), nil
	}
}

// Bundled returns the wordlists embedded in the binary.
func Bundled() *FS {
	sub, err := fs.Sub(bundled, "bundled")
	if err != nil {
		// The directory is part of the build; this cannot happen at runtime.
		panic(err)
	}
	return NewFS(sub, BundledName)
}

// WordlistPath returns the static path of a wordlist.
func WordlistPath(key wordlist.Key) string {
	return path.Join("wordlists", key.Category, key.Filename+".txt")
}

// FS reads files from an fs.FS.
type FS struct {
	fsys fs.FS
	name string
}

// NewFS wraps fsys; name is only used in error messages.
func NewFS(fsys fs.FS, name string) *FS {
	return &FS{fsys: fsys, name: name}
}

func (s *FS) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", s.name, name, err)
	}
	return data, nil
}

// HTTP reads files from a static file server.
type HTTP struct {
	base   string
	client *http.Client
	log    *slog.Logger
}

// NewHTTP creates an HTTP source rooted at base. A nil client gets a 5s timeout.
func NewHTTP(base string, client *http.Client, logger *slog.Logger) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTP{
		base:   strings.TrimRight(base, "/"),
		client: client,
		log:    logger.With("component", "static"),
	}
}

func (s *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := s.base + "/" + strings.TrimLeft(name, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.log.DebugContext(ctx, "fetching static file", slog.String("url", u))
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("fetch %s: %w", u, fs.ErrNotExist)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("read %s: %w (limit %d bytes)", u, ErrTooLarge, maxFileSize)
	}
	return data, nil
}

// DecodeText interprets raw as UTF-8, dropping a leading byte order mark.
// Files starting with a UTF-16 BOM are converted as well.
func DecodeText(raw []byte) (string, error) {
	if !hasUTF16BOM(raw) && !utf8.Valid(raw) {
		return "", ErrInvalidEncoding
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return string(out), nil
}

func hasUTF16BOM(b []byte) bool {
	return len(b) >= 2 && ((b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE))
}
