package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/japaniel/lexiquest/pkg/api"
	"github.com/japaniel/lexiquest/pkg/static"
)

// Category is one group of wordlists with a display label.
type Category struct {
	Name  string   `yaml:"name" json:"category"`
	Label string   `yaml:"label" json:"label"`
	Books []string `yaml:"books" json:"books"`
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// ParseCatalog reads a YAML catalog.
func ParseCatalog(data []byte) ([]Category, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, c := range f.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("parse catalog: category %d has no name", i)
		}
	}
	return f.Categories, nil
}

// ListWordlists returns the available wordlists grouped by category, sorted by
// category name. In API mode the service listing is used and labelled from the
// static catalog; otherwise, or when the service fails, the static catalog is returned.
// A static catalog that cannot be read only fails the call when there is no
// service listing to fall back on.
func (r *Resolver) ListWordlists(ctx context.Context) ([]Category, error) {
	mode := r.prober.Check(ctx)
	if mode == api.ModeAPI && r.remote != nil {
		remote, err := r.remote.FetchCatalog(ctx)
		if err == nil {
			local, lerr := r.staticCatalog(ctx)
			if lerr != nil {
				r.log.WarnContext(ctx, "static catalog unavailable, labelling by name", slog.String("error", lerr.Error()))
			}
			return labelled(remote, local), nil
		}
		r.log.WarnContext(ctx, "api catalog failed, using static catalog", slog.String("error", err.Error()))
	}

	local, err := r.staticCatalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, len(local))
	for i, c := range local {
		if c.Label == "" {
			c.Label = c.Name
		}
		out[i] = c
	}
	sortCategories(out)
	return out, nil
}

// staticCatalog reads the configured catalog file, then the static source's
// catalog, then the bundled one.
func (r *Resolver) staticCatalog(ctx context.Context) ([]Category, error) {
	if r.catalogPath != "" {
		data, err := os.ReadFile(r.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return ParseCatalog(data)
	}

	data, err := r.static.Fetch(ctx, static.CatalogFile)
	if err != nil {
		r.log.DebugContext(ctx, "static source has no catalog, using bundled", slog.String("error", err.Error()))
		data, err = static.Bundled().Fetch(ctx, static.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("read bundled catalog: %w", err)
		}
	}
	return ParseCatalog(data)
}

func labelled(remote map[string][]string, local []Category) []Category {
	labels := make(map[string]string, len(local))
	for _, c := range local {
		labels[c.Name] = c.Label
	}
	out := make([]Category, 0, len(remote))
	for name, books := range remote {
		label := labels[name]
		if label == "" {
			label = name
		}
		if books == nil {
			books = []string{}
		}
		out = append(out, Category{Name: name, Label: label, Books: books})
	}
	sortCategories(out)
	return out
}

func sortCategories(cs []Category) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
}
