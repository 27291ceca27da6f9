package deck

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ivlev/deck2video/internal/easing"
	"github.com/ivlev/deck2video/internal/interpolate"
	"github.com/ivlev/deck2video/internal/slide"
)

var (
	ErrUnknownObject       = errors.New("unknown object id")
	ErrUnknownKind         = errors.New("unknown object kind")
	ErrUnknownEasing       = errors.New("unknown easing")
	ErrUnknownInterpolator = errors.New("unknown interpolator")
	ErrDuplicateID         = errors.New("duplicate object id")
	ErrBadStep             = errors.New("step must have exactly one action")
)

var interpolators = map[string]slide.Interpolator{
	"points": interpolate.Points,
}

// Presentation builds the presentation described by d.
func (d *Deck) Presentation() (*slide.Presentation, error) {
	p := slide.NewPresentation(d.Title)

	if d.Background != "" {
		c, err := slide.ParseHex(d.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		p.BackgroundColor = c
	}
	if d.Size.Width > 0 && d.Size.Height > 0 {
		p.Size = slide.Size{Width: d.Size.Width, Height: d.Size.Height}
	}
	for id, loc := range d.Resources.Images {
		p.Resources.Images[id] = loc
	}

	for i, s := range d.Slides {
		built, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		p.Slides = append(p.Slides, built)
	}

	return p, nil
}

func (s Slide) build() (*slide.Slide, error) {
	ids := map[string]*slide.Object{}

	var roots []*slide.Object
	for _, o := range s.Objects {
		obj, err := o.build(ids)
		if err != nil {
			return nil, err
		}
		roots = append(roots, obj)
	}

	var builds []slide.Build
	for b, steps := range s.Builds {
		var build slide.Build
		for n, st := range steps {
			step, err := st.build(ids)
			if err != nil {
				return nil, fmt.Errorf("build %d, step %d: %w", b+1, n+1, err)
			}
			build = append(build, step)
		}
		builds = append(builds, build)
	}

	endKey := true
	if s.EndKey != nil {
		endKey = *s.EndKey
	}

	return slide.NewSlide(roots, builds,
		slide.Titled(s.Title),
		slide.StartKey(s.StartKey),
		slide.EndKey(endKey),
		slide.AllKey(s.AllKey),
		slide.Aliases(s.Shortcut...),
	), nil
}

func (o Object) build(ids map[string]*slide.Object) (*slide.Object, error) {
	props, err := convertProps(o.Props)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", o.ID, err)
	}

	var children []*slide.Object
	for _, child := range o.Objects {
		c, err := child.build(ids)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}

	var obj *slide.Object
	switch o.Kind {
	case slide.KindRectangle:
		obj = slide.Rectangle(props)
	case slide.KindCircle:
		obj = slide.Circle(props)
	case slide.KindLine:
		obj = slide.Line(props)
	case slide.KindPolygon:
		obj = slide.Polygon(props)
	case slide.KindGroup:
		obj = slide.Group(children, props)
	case slide.KindMask:
		obj = slide.Mask(children, props)
	case slide.KindImage:
		obj = slide.Image(stringProp(props, "imageId"), props)
	case slide.KindText:
		obj = slide.Text(stringProp(props, "text"), props)
	case slide.KindQRCode:
		obj = slide.QRCode(stringProp(props, "content"), props)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, o.Kind)
	}

	if o.ID != "" {
		if _, dup := ids[o.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, o.ID)
		}
		ids[o.ID] = obj
	}
	return obj, nil
}

func (st Step) build(ids map[string]*slide.Object) (slide.Step, error) {
	action, target := st.action()
	if action == "" {
		return nil, ErrBadStep
	}

	opts, err := st.options()
	if err != nil {
		return nil, err
	}

	if action == "pause" {
		return slide.Pause(*st.Pause, opts...), nil
	}

	obj, ok := ids[target]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, target)
	}

	props, err := convertProps(st.Props)
	if err != nil {
		return nil, err
	}

	switch action {
	case "animate":
		return slide.Animate(obj, props, opts...), nil
	case "update":
		return slide.Update(obj, props, opts...), nil
	case "fadeOut":
		return slide.FadeOut(obj, opts...), nil
	case "show":
		return slide.Show(obj, opts...), nil
	case "hide":
		return slide.Hide(obj, opts...), nil
	default:
		return slide.WriteOn(obj, opts...), nil
	}
}

// action returns the single action of a step and the id it targets.
func (st Step) action() (string, string) {
	var action, target string
	set := 0
	for _, a := range []struct{ name, id string }{
		{"animate", st.Animate},
		{"update", st.Update},
		{"fadeOut", st.FadeOut},
		{"show", st.Show},
		{"hide", st.Hide},
		{"writeOn", st.WriteOn},
	} {
		if a.id != "" {
			action, target = a.name, a.id
			set++
		}
	}
	if st.Pause != nil {
		action = "pause"
		set++
	}
	if set != 1 {
		return "", ""
	}
	return action, target
}

func (st Step) options() ([]slide.Option, error) {
	var opts []slide.Option
	if st.Duration != nil {
		opts = append(opts, slide.WithDuration(*st.Duration))
	}
	if st.Delay != 0 {
		opts = append(opts, slide.WithDelay(st.Delay))
	}
	if st.Easing != "" {
		f, err := easing.ByName(st.Easing)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, st.Easing)
		}
		opts = append(opts, slide.WithEasing(f))
	}
	if st.Block {
		opts = append(opts, slide.Blocking())
	}
	if len(st.Interpolators) > 0 {
		var custom []slide.Interpolator
		for _, name := range st.Interpolators {
			in, ok := interpolators[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownInterpolator, name)
			}
			custom = append(custom, in)
		}
		opts = append(opts, slide.WithInterpolators(custom...))
	}
	if st.Key {
		opts = append(opts, slide.Key())
	}
	if len(st.Shortcut) > 0 {
		opts = append(opts, slide.WithShortcut(st.Shortcut...))
	}
	return opts, nil
}

func convertProps(in map[string]any) (slide.Props, error) {
	if len(in) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(slide.Props, len(in))
	for _, k := range keys {
		v, err := convertValue(in[k])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// convertValue maps YAML scalars onto property values: "#rrggbb" strings become
// colours, {x, y} maps become points and lists of them become point lists.
func convertValue(v any) (any, error) {
	switch x := v.(type) {
	case string:
		if strings.HasPrefix(x, "#") {
			return slide.ParseHex(x)
		}
		return x, nil
	case map[string]any:
		if p, ok := toPoint(x); ok {
			return p, nil
		}
		return nil, fmt.Errorf("unsupported map value %v", x)
	case []any:
		points := make([]slide.Point, 0, len(x))
		for _, item := range x {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("list items must be points, got %T", item)
			}
			p, ok := toPoint(m)
			if !ok {
				return nil, fmt.Errorf("invalid point %v", m)
			}
			points = append(points, p)
		}
		return points, nil
	default:
		return slide.Normalize(v), nil
	}
}

func toPoint(m map[string]any) (slide.Point, bool) {
	if len(m) != 2 {
		return slide.Point{}, false
	}
	x, okX := toFloat(m["x"])
	y, okY := toFloat(m["y"])
	return slide.Point{X: x, Y: y}, okX && okY
}

func toFloat(v any) (float64, bool) {
	f, ok := slide.Normalize(v).(float64)
	return f, ok
}

func stringProp(props slide.Props, name string) string {
	s, _ := props[name].(string)
	return s
}
