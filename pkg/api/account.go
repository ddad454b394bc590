package api

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/japaniel/lexiquest/pkg/wordlist"
)

const (
	// UnknownUsername is shown when the service has no name on record.
	UnknownUsername = "unknown user"
	// ErrorUsername marks the placeholder profile returned when the profile could not be read.
	ErrorUsername = "error"
)

// WordWeights maps a word to its review weight on the service; lower means better known.
type WordWeights map[string]float64

// ProgressTree is the service's nested progress layout: category -> filename -> word -> weight.
type ProgressTree map[string]map[string]WordWeights

// Profile is the user record kept by the service.
type Profile struct {
	Username string       `json:"username"`
	Progress ProgressTree `json:"progress"`
}

// ProgressSummary is one flattened row of the progress listing.
type ProgressSummary struct {
	Category string `json:"category"`
	Filename string `json:"filename"`
	Words    int    `json:"words"`
}

// SubmitAck is the service's reply to a quiz submission.
type SubmitAck struct {
	Message  string      `json:"message"`
	Progress WordWeights `json:"progress"`
}

type submitRequest struct {
	Category string   `json:"category"`
	Filename string   `json:"filename"`
	Results  []string `json:"results"`
}

// FetchProfile reads the profile. It never fails: when the service cannot be read
// the failure is logged and a placeholder profile is returned so a caller can keep rendering.
func (c *Client) FetchProfile(ctx context.Context) Profile {
	var p Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/user", nil, &p); err != nil {
		c.log.WarnContext(ctx, "fetch profile failed", slog.String("error", err.Error()))
		return Profile{Username: ErrorUsername, Progress: ProgressTree{}}
	}
	if p.Username == "" {
		p.Username = UnknownUsername
	}
	if p.Progress == nil {
		p.Progress = ProgressTree{}
	}
	return p
}

// UpdateProfile renames the user. Failures are returned to the caller.
func (c *Client) UpdateProfile(ctx context.Context, username string) (Profile, error) {
	var resp struct {
		Message string  `json:"message"`
		User    Profile `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/user", map[string]string{"username": username}, &resp); err != nil {
		c.log.ErrorContext(ctx, "update profile failed", slog.String("error", err.Error()))
		return Profile{}, err
	}
	c.log.InfoContext(ctx, "profile updated", slog.String("username", resp.User.Username))
	return resp.User, nil
}

// SubmitQuizResults posts the words practised in one quiz.
// Failures are returned; resubmitting is left to the user.
func (c *Client) SubmitQuizResults(ctx context.Context, key wordlist.Key, results []string) (SubmitAck, error) {
	if results == nil {
		results = []string{}
	}
	req := submitRequest{Category: key.Category, Filename: key.Filename, Results: results}

	c.log.DebugContext(ctx, "submitting quiz results",
		slog.String("wordlist", key.String()),
		slog.Int("results", len(results)),
	)

	var ack SubmitAck
	if err := c.doJSON(ctx, http.MethodPost, "/api/quiz/submit", req, &ack); err != nil {
		c.log.ErrorContext(ctx, "submit quiz results failed", slog.String("error", err.Error()))
		return SubmitAck{}, err
	}
	return ack, nil
}

// FetchProgressList returns per-wordlist progress sorted by category and filename.
// Like FetchProfile it degrades to an empty list instead of failing.
func (c *Client) FetchProgressList(ctx context.Context) []ProgressSummary {
	var tree ProgressTree
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/progress", nil, &tree); err != nil {
		c.log.WarnContext(ctx, "fetch progress failed", slog.String("error", err.Error()))
		return []ProgressSummary{}
	}
	return tree.Summaries()
}

// DeleteProgress removes the stored progress of one wordlist. Failures are returned.
func (c *Client) DeleteProgress(ctx context.Context, key wordlist.Key) error {
	path := joinPath("api", "quiz", "progress", key.Category, key.Filename)
	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		c.log.ErrorContext(ctx, "delete progress failed", slog.String("error", err.Error()))
		return err
	}
	c.log.InfoContext(ctx, "progress deleted", slog.String("wordlist", key.String()))
	return nil
}

// Summaries flattens the tree into one row per wordlist.
func (t ProgressTree) Summaries() []ProgressSummary {
	out := []ProgressSummary{}
	for category, files := range t {
		for filename, words := range files {
			out = append(out, ProgressSummary{Category: category, Filename: filename, Words: len(words)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Filename < out[j].Filename
	})
	return out
}
