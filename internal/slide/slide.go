package slide

// Slide holds the initial objects and the builds applied to them.
type Slide struct {
	Title   string
	Objects []*Object
	Builds  []Build

	// IsStartKey marks build 0 as key for export.
	IsStartKey bool
	// IsEndKey marks the final build as key for export.
	IsEndKey bool
	// IsAllKey marks every build index as key.
	IsAllKey bool
	// Shortcut lists aliases that jump to build 0 of this slide.
	Shortcut []string
}

// SlideOption configures a slide.
type SlideOption func(*Slide)

// StartKey sets IsStartKey.
func StartKey(v bool) SlideOption { return func(s *Slide) { s.IsStartKey = v } }

// EndKey sets IsEndKey.
func EndKey(v bool) SlideOption { return func(s *Slide) { s.IsEndKey = v } }

// AllKey sets IsAllKey.
func AllKey(v bool) SlideOption { return func(s *Slide) { s.IsAllKey = v } }

// Titled sets the slide title.
func Titled(title string) SlideOption { return func(s *Slide) { s.Title = title } }

// Aliases sets the slide's shortcut aliases.
func Aliases(aliases ...string) SlideOption {
	return func(s *Slide) { s.Shortcut = append(s.Shortcut, aliases...) }
}

// NewSlide creates a slide whose end state is key by default. Nil objects are
// dropped.
func NewSlide(objects []*Object, builds []Build, opts ...SlideOption) *Slide {
	s := &Slide{IsEndKey: true, Builds: builds}
	for _, o := range objects {
		if o != nil {
			s.Objects = append(s.Objects, o)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildCount is the number of builds; valid build indices are [0, BuildCount].
func (s *Slide) BuildCount() int {
	return len(s.Builds)
}

// Size is the presentation viewport size in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Resources maps asset ids to their locations.
type Resources struct {
	Images map[string]string `yaml:"images"`
}

// Presentation is an ordered list of slides plus global settings.
type Presentation struct {
	Title           string
	Slides          []*Slide
	BackgroundColor Color
	Size            Size
	Resources       Resources
}

// NewPresentation creates a presentation with a white 3840x2160 background.
func NewPresentation(title string, slides ...*Slide) *Presentation {
	if title == "" {
		title = "Presentation"
	}
	return &Presentation{
		Title:           title,
		Slides:          slides,
		BackgroundColor: White,
		Size:            Size{Width: 3840, Height: 2160},
		Resources:       Resources{Images: map[string]string{}},
	}
}

// Slide returns the slide at index i, or nil when out of range.
func (p *Presentation) Slide(i int) *Slide {
	if i < 0 || i >= len(p.Slides) {
		return nil
	}
	return p.Slides[i]
}
