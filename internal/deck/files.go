package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ivlev/deck2video/internal/slide"
	"gopkg.in/yaml.v3"
)

// DefaultDir is where FindLatest looks for decks.
var DefaultDir = filepath.Join("input", "decks")

// Write writes a deck to a YAML file. Colour and point props built in Go are
// written in their YAML forms.
func Write(d *Deck, path string) error {
	data, err := yaml.Marshal(d.encoded())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (d *Deck) encoded() *Deck {
	out := *d
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		s.Objects = encodeObjects(s.Objects)
		builds := make([][]Step, len(s.Builds))
		for b, steps := range s.Builds {
			builds[b] = make([]Step, len(steps))
			for j, step := range steps {
				step.Props = encodeProps(step.Props)
				builds[b][j] = step
			}
		}
		s.Builds = builds
		out.Slides[i] = s
	}
	return &out
}

func encodeObjects(objects []Object) []Object {
	if objects == nil {
		return nil
	}
	out := make([]Object, len(objects))
	for i, o := range objects {
		o.Props = encodeProps(o.Props)
		o.Objects = encodeObjects(o.Objects)
		out[i] = o
	}
	return out
}

func encodeProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = encodeValue(v)
	}
	return out
}

// encodeValue is the inverse of convertValue for the types it produces.
func encodeValue(v any) any {
	switch v := v.(type) {
	case slide.Color:
		return v.Hex()
	case slide.Point:
		return map[string]any{"x": v.X, "y": v.Y}
	case []slide.Point:
		points := make([]any, len(v))
		for i, pt := range v {
			points[i] = map[string]any{"x": pt.X, "y": pt.Y}
		}
		return points
	default:
		return v
	}
}

// Read reads a deck from a YAML file.
func Read(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes a deck document.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}
	return &d, nil
}

// Load reads a deck file and builds its presentation. Relative resource paths
// are taken relative to the deck file.
func Load(path string) (*slide.Presentation, error) {
	d, err := Read(path)
	if err != nil {
		return nil, err
	}

	p, err := d.Presentation()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	for id, loc := range p.Resources.Images {
		if !filepath.IsAbs(loc) {
			p.Resources.Images[id] = filepath.Join(base, loc)
		}
	}

	return p, nil
}

// FindLatest finds the most recently modified .yaml or .yml file in dir.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read decks directory: %w", err)
	}

	var decks []string
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if !entry.IsDir() && (strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			decks = append(decks, filepath.Join(dir, entry.Name()))
		}
	}

	if len(decks) == 0 {
		return "", fmt.Errorf("no deck files found in %s", dir)
	}

	// newest first
	sort.Slice(decks, func(i, j int) bool {
		infoI, _ := os.Stat(decks[i])
		infoJ, _ := os.Stat(decks[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return decks[0], nil
}
