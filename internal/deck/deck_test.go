package deck

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ivlev/deck2video/internal/slide"
	"github.com/ivlev/deck2video/internal/timeline"
)

const talk = `
version: "1.0"
title: Talk
background: "#000000"
size: {width: 1280, height: 720}
resources:
  images:
    logo: logo.png
slides:
  - title: One
    shortcut: [one]
    objects:
      - id: box
        kind: Rectangle
        props: {x: 10, fill: "#ff0000"}
      - id: wrap
        kind: Group
        objects:
          - id: line
            kind: Line
            props:
              start: {x: 0, y: 0}
              end: {x: 50, y: 5}
    builds:
      - - animate: box
          props: {x: 110}
          duration: 500
          easing: cubic
          block: true
        - pause: 250
        - update: line
          props: {width: 3}
          key: true
          shortcut: [thick]
  - title: Two
    endKey: false
    startKey: true
`

func TestParsePresentation(t *testing.T) {
	d, err := Parse([]byte(talk))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p, err := d.Presentation()
	if err != nil {
		t.Fatalf("Presentation failed: %v", err)
	}

	if p.Title != "Talk" || p.BackgroundColor != slide.Black {
		t.Errorf("Unexpected header: %q %+v", p.Title, p.BackgroundColor)
	}
	if p.Size != (slide.Size{Width: 1280, Height: 720}) {
		t.Errorf("Unexpected size %+v", p.Size)
	}
	if len(p.Slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(p.Slides))
	}

	one := p.Slides[0]
	box := one.Objects[0]
	if box.Kind() != slide.KindRectangle || box.Float("x", 0) != 10 || box.Color("fill", slide.Black) != slide.Red {
		t.Errorf("Unexpected box %+v", box.Props())
	}
	line := one.Objects[1].Children()[0]
	if diff := cmp.Diff(slide.Point{X: 50, Y: 5}, line.Props()["end"]); diff != "" {
		t.Errorf("Line end mismatch (-want +got):\n%s", diff)
	}

	if d := timeline.Duration(one.Builds[0]); d != 500 {
		t.Errorf("Expected build duration 500, got %v", d)
	}
	if diff := cmp.Diff([]string{"thick"}, one.Builds[0].Shortcuts()); diff != "" {
		t.Errorf("Shortcut mismatch (-want +got):\n%s", diff)
	}

	settled := timeline.Resolve(one, 1)
	if settled.Get(box).Float("x", 0) != 110 || settled.Get(line).Float("width", 0) != 3 {
		t.Error("Steps should target the objects they name")
	}

	two := p.Slides[1]
	if two.IsEndKey || !two.IsStartKey || two.Title != "Two" {
		t.Errorf("Unexpected flags on slide two: %+v", two)
	}
	if !one.IsEndKey {
		t.Error("endKey should default to true")
	}
}

func TestPresentationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown object", `
slides:
  - builds:
      - - animate: ghost
`, ErrUnknownObject},
		{"unknown kind", `
slides:
  - objects:
      - kind: Hexagon
`, ErrUnknownKind},
		{"unknown easing", `
slides:
  - objects: [{id: a, kind: Circle}]
    builds:
      - - {animate: a, easing: wobble}
`, ErrUnknownEasing},
		{"unknown interpolator", `
slides:
  - objects: [{id: a, kind: Circle}]
    builds:
      - - {animate: a, interpolators: [spline]}
`, ErrUnknownInterpolator},
		{"duplicate id", `
slides:
  - objects: [{id: a, kind: Circle}, {id: a, kind: Rectangle}]
`, ErrDuplicateID},
		{"two actions", `
slides:
  - objects: [{id: a, kind: Circle}]
    builds:
      - - {animate: a, hide: a}
`, ErrBadStep},
		{"no action", `
slides:
  - builds:
      - - {key: true}
`, ErrBadStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if _, err := d.Presentation(); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConvertValue(t *testing.T) {
	if _, err := convertValue("#zzz"); err == nil {
		t.Error("Expected an error for an invalid colour")
	}
	got, err := convertValue([]any{map[string]any{"x": 1, "y": 2.5}})
	if err != nil {
		t.Fatalf("convertValue failed: %v", err)
	}
	if diff := cmp.Diff([]slide.Point{{X: 1, Y: 2.5}}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got, _ := convertValue(7); got != 7.0 {
		t.Errorf("Expected ints to become float64, got %T", got)
	}
}

func TestSampleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yaml")

	if err := Write(Sample(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.Slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(p.Slides))
	}
	if diff := cmp.Diff([]int{0, 1, 2}, timeline.KeyBuilds(p.Slides[0])); diff != "" {
		t.Errorf("Key builds mismatch (-want +got):\n%s", diff)
	}

	tri := p.Slides[1].Objects[0].Children()[1]
	morphed := timeline.ResolveAt(p.Slides[1], 2, 500).Get(tri).Points("points")
	if len(morphed) != 3 || morphed[0].Y != 100 {
		t.Errorf("Expected the polygon to morph halfway, got %v", morphed)
	}
}

func TestWriteEncodesTypedProps(t *testing.T) {
	d := &Deck{
		Version: "1.0",
		Slides: []Slide{{
			Objects: []Object{
				{ID: "box", Kind: "Rectangle", Props: map[string]any{"fill": slide.RGB(0x1e, 0x88, 0xe5).Transparent()}},
				{ID: "tri", Kind: "Polygon", Props: map[string]any{"points": []slide.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}}},
			},
			Builds: [][]Step{{
				{Animate: "box", Props: map[string]any{"fill": slide.RGB(0x8e, 0x24, 0xaa)}},
			}},
		}},
	}
	path := filepath.Join(t.TempDir(), "typed.yaml")
	if err := Write(d, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, ok := d.Slides[0].Objects[0].Props["fill"].(slide.Color); !ok {
		t.Error("Write must not modify the deck")
	}

	read, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := read.Slides[0].Objects[0].Props["fill"]; got != "#1e88e500" {
		t.Errorf("Expected fill #1e88e500, got %v", got)
	}
	if got := read.Slides[0].Builds[0][0].Props["fill"]; got != "#8e24aa" {
		t.Errorf("Expected step fill #8e24aa, got %v", got)
	}

	p, err := read.Presentation()
	if err != nil {
		t.Fatalf("Presentation failed: %v", err)
	}
	tri := p.Slides[0].Objects[1]
	if diff := cmp.Diff([]slide.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, tri.Points("points")); diff != "" {
		t.Errorf("Points mismatch (-want +got):\n%s", diff)
	}
	settled := timeline.Resolve(p.Slides[0], 1).Get(p.Slides[0].Objects[0])
	if diff := cmp.Diff(slide.RGB(0x8e, 0x24, 0xaa), settled.Color("fill", slide.Black)); diff != "" {
		t.Errorf("Fill mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadResolvesResourcePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.yaml")
	os.WriteFile(path, []byte(talk), 0644)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := p.Resources.Images["logo"]; got != filepath.Join(dir, "logo.png") {
		t.Errorf("Expected the image next to the deck, got %s", got)
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	files := []string{"b.yaml", "c.yml", "a.yaml"}

	for i, name := range files {
		f := filepath.Join(dir, name)
		os.WriteFile(f, []byte("title: x"), 0644)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644)

	latest, err := FindLatest(dir)
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if filepath.Base(latest) != "a.yaml" {
		t.Errorf("Expected a.yaml, got %s", latest)
	}

	if _, err := FindLatest(t.TempDir()); err == nil {
		t.Error("Expected an error for an empty directory")
	}
}
