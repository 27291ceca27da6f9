package deck

// Deck is the YAML document describing a presentation.
type Deck struct {
	Version    string    `yaml:"version"`
	Title      string    `yaml:"title"`
	Background string    `yaml:"background,omitempty"` // hex colour
	Size       Size      `yaml:"size,omitempty"`
	Resources  Resources `yaml:"resources,omitempty"`
	Slides     []Slide   `yaml:"slides"`
}

// Size is the canvas size in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Resources maps image ids to files. A PDF page is written as "file.pdf#3".
type Resources struct {
	Images map[string]string `yaml:"images,omitempty"`
}

// Slide is one slide: objects by id, then builds of steps that refer to them.
type Slide struct {
	Title    string   `yaml:"title,omitempty"`
	Shortcut []string `yaml:"shortcut,omitempty"`
	StartKey bool     `yaml:"startKey,omitempty"`
	EndKey   *bool    `yaml:"endKey,omitempty"` // default true
	AllKey   bool     `yaml:"allKey,omitempty"`
	Objects  []Object `yaml:"objects,omitempty"`
	Builds   [][]Step `yaml:"builds,omitempty"`
}

// Object is a drawable. Colours are hex strings, points are {x, y} maps.
type Object struct {
	ID      string         `yaml:"id,omitempty"`
	Kind    string         `yaml:"kind"`
	Props   map[string]any `yaml:"props,omitempty"`
	Objects []Object       `yaml:"objects,omitempty"` // groups and masks
}

// Step is one timeline step. Exactly one of the action fields is set.
type Step struct {
	Animate string   `yaml:"animate,omitempty"`
	Update  string   `yaml:"update,omitempty"`
	Pause   *float64 `yaml:"pause,omitempty"`
	FadeOut string   `yaml:"fadeOut,omitempty"`
	Show    string   `yaml:"show,omitempty"`
	Hide    string   `yaml:"hide,omitempty"`
	WriteOn string   `yaml:"writeOn,omitempty"`

	Props         map[string]any `yaml:"props,omitempty"`
	Duration      *float64       `yaml:"duration,omitempty"` // ms
	Delay         float64        `yaml:"delay,omitempty"`    // ms
	Easing        string         `yaml:"easing,omitempty"`
	Block         bool           `yaml:"block,omitempty"`
	Interpolators []string       `yaml:"interpolators,omitempty"`
	Key           bool           `yaml:"key,omitempty"`
	Shortcut      []string       `yaml:"shortcut,omitempty"`
}
