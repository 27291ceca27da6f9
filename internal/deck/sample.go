package deck

import "github.com/ivlev/deck2video/internal/slide"

func ms(v float64) *float64 { return &v }

// Sample returns a small two-slide deck used by -init.
func Sample() *Deck {
	return &Deck{
		Version:    "1.0",
		Title:      "Sample Deck",
		Background: slide.White.Hex(),
		Size:       Size{Width: 1920, Height: 1080},
		Slides: []Slide{
			{
				Title:    "Intro",
				Shortcut: []string{"intro"},
				StartKey: true,
				Objects: []Object{
					{ID: "title", Kind: "Text", Props: map[string]any{
						"text": "deck2video", "x": 160, "y": 200, "scale": 6, "length": 0,
					}},
					{ID: "bar", Kind: "Rectangle", Props: map[string]any{
						"x": 160, "y": 360, "width": 0, "height": 24, "fill": slide.RGB(0x1e, 0x88, 0xe5),
					}},
				},
				Builds: [][]Step{
					{
						{WriteOn: "title", Duration: ms(800), Block: true},
						{Animate: "bar", Props: map[string]any{"width": 1200}, Easing: "cubic", Key: true, Shortcut: []string{"bar"}},
					},
					{
						{Pause: ms(300)},
						{FadeOut: "title"},
					},
				},
			},
			{
				Title: "Shapes",
				Objects: []Object{
					{ID: "stage", Kind: "Group", Props: map[string]any{"x": 200, "y": 200}, Objects: []Object{
						{ID: "dot", Kind: "Circle", Props: map[string]any{"x": 100, "y": 100, "radius": 60, "fill": slide.RGB(0xe5, 0x39, 0x35)}},
						{ID: "tri", Kind: "Polygon", Props: map[string]any{
							"fill": slide.RGB(0x43, 0xa0, 0x47),
							"points": []any{
								map[string]any{"x": 400, "y": 200},
								map[string]any{"x": 500, "y": 0},
								map[string]any{"x": 600, "y": 200},
							},
						}},
					}},
				},
				Builds: [][]Step{
					{
						{Animate: "dot", Props: map[string]any{"x": 1300, "fill": slide.RGB(0x8e, 0x24, 0xaa)}, Duration: ms(1200), Easing: "back-in-out"},
					},
					{
						{Animate: "tri", Props: map[string]any{"points": []any{
							map[string]any{"x": 400, "y": 0},
							map[string]any{"x": 500, "y": 200},
							map[string]any{"x": 600, "y": 0},
						}}, Interpolators: []string{"points"}},
						{Hide: "dot"},
					},
				},
			},
		},
	}
}
