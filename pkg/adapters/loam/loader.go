// Package loam serves preset workspaces stored as markdown or JSON documents
// in a Loam vault.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/numeric"
)

// Loader adapts a Loam repository to ports.PresetLoader.
type Loader struct {
	Repo *loam.TypedRepository[PresetMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PresetMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only vault at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve preset path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset vault: %w", err)
	}
	return New(loam.NewTypedRepository[PresetMetadata](repo)), nil
}

// GetPreset loads a preset by its normalized id (file name without extension
// unless the frontmatter sets one).
func (l *Loader) GetPreset(ctx context.Context, id string) (domain.Preset, error) {
	ids, err := l.index(ctx)
	if err != nil {
		return domain.Preset{}, err
	}
	docID, ok := ids[id]
	if !ok {
		return domain.Preset{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, id)
	}

	doc, err := l.Repo.Get(ctx, trimExtension(docID))
	if err != nil {
		return domain.Preset{}, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return buildPreset(id, doc.Data, doc.Content), nil
}

// ListPresets returns all preset ids, sorted.
func (l *Loader) ListPresets(ctx context.Context) ([]string, error) {
	ids, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// index maps normalized preset ids to document ids.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
	}
	return seen, nil
}

func buildPreset(id string, meta PresetMetadata, content string) domain.Preset {
	p := domain.Preset{
		ID:          id,
		Title:       meta.Title,
		Description: strings.TrimSpace(content),
		Settings:    domain.Settings{Fluid: meta.Fluid, Units: meta.Units},
		View:        domain.DefaultViewConfig(),
	}
	if p.Title == "" {
		p.Title = id
	}
	if p.Settings.Units == "" {
		p.Settings.Units = domain.DefaultUnits
	}
	if mode := domain.ViewMode(meta.View); mode.Valid() {
		p.View.Mode = mode
	}
	if meta.Plot != "" {
		p.View.PlotID = meta.Plot
	}
	if meta.Isoline != 0 {
		p.View.IsolineParameter = meta.Isoline
	}

	p.States = make([]domain.StateDefinition, 0, len(meta.States))
	for i, s := range meta.States {
		def := domain.StateDefinition{
			ID:        s.ID,
			Label:     s.Label,
			Property1: s.Property1,
			Value1:    scalar(s.Value1),
			Property2: s.Property2,
			Value2:    scalar(s.Value2),
		}
		if def.ID == "" {
			def.ID = fmt.Sprintf("%s-%d", id, i+1)
		}
		if def.Label == "" {
			def.Label = domain.StateLabel(i + 1)
		}
		p.States = append(p.States, def)
	}
	return p
}

// scalar renders a frontmatter value as a canonical numeric string.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return numeric.Normalize(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return numeric.Normalize(fmt.Sprint(x))
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch emits the id of every preset document that changes.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
