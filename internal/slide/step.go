package slide

import "github.com/ivlev/deck2video/internal/easing"

// StepKind discriminates timeline steps.
type StepKind string

const (
	KindAnimate StepKind = "Animate"
	KindUpdate  StepKind = "Update"
	KindPause   StepKind = "Pause"
)

// DefaultDuration is the duration of Animate and Pause steps, in milliseconds.
const DefaultDuration = 1000.0

// Interpolator blends values of one family of types.
type Interpolator interface {
	// Check reports whether this interpolator handles value for the named property.
	Check(value any, property string) bool
	// Interpolate blends from toward to. proportion may fall outside [0, 1] when an
	// easing curve overshoots.
	Interpolate(from, to any, proportion float64) any
}

// Step is one timeline step: *AnimateStep, *UpdateStep or *PauseStep.
type Step interface {
	Kind() StepKind
	Meta() StepMeta
	step()
}

// StepMeta holds the fields every step carries.
type StepMeta struct {
	// IsKey marks the state after this step's build as significant for export.
	IsKey bool
	// Shortcut lists aliases that jump to the state after this step's build.
	Shortcut []string
}

// AnimateStep blends an object's properties toward Props over Duration.
type AnimateStep struct {
	StepMeta
	Object   *Object
	Props    Props
	Duration float64 // ms
	Delay    float64 // ms
	Easing   easing.Func
	// Block delays every later step of the same build until this one finishes.
	Block bool
	// Interpolators are tried before the defaults, for this step only.
	Interpolators []Interpolator
}

// UpdateStep applies Props to an object instantly.
type UpdateStep struct {
	StepMeta
	Object *Object
	Props  Props
}

// PauseStep shifts the start of later steps in the same build.
type PauseStep struct {
	StepMeta
	Duration float64 // ms
}

func (*AnimateStep) Kind() StepKind { return KindAnimate }
func (*UpdateStep) Kind() StepKind  { return KindUpdate }
func (*PauseStep) Kind() StepKind   { return KindPause }

func (s *AnimateStep) Meta() StepMeta { return s.StepMeta }
func (s *UpdateStep) Meta() StepMeta  { return s.StepMeta }
func (s *PauseStep) Meta() StepMeta   { return s.StepMeta }

func (*AnimateStep) step() {}
func (*UpdateStep) step()  {}
func (*PauseStep) step()   {}

type stepOptions struct {
	meta          StepMeta
	duration      *float64
	delay         float64
	easing        easing.Func
	block         bool
	interpolators []Interpolator
}

// Option configures a step at construction time.
type Option func(*stepOptions)

// WithDuration sets the duration in milliseconds. Negative values are accepted
// and make the step instantaneous.
func WithDuration(ms float64) Option {
	return func(o *stepOptions) { o.duration = &ms }
}

// WithDelay sets the delay before an Animate step starts, in milliseconds.
func WithDelay(ms float64) Option {
	return func(o *stepOptions) { o.delay = ms }
}

// WithEasing sets the easing curve of an Animate step.
func WithEasing(f easing.Func) Option {
	return func(o *stepOptions) { o.easing = f }
}

// Blocking makes later steps of the same build wait for this Animate step.
func Blocking() Option {
	return func(o *stepOptions) { o.block = true }
}

// WithInterpolators adds step-scoped interpolators ahead of the defaults.
func WithInterpolators(in ...Interpolator) Option {
	return func(o *stepOptions) { o.interpolators = append(o.interpolators, in...) }
}

// Key marks the step as key for export.
func Key() Option {
	return func(o *stepOptions) { o.meta.IsKey = true }
}

// WithShortcut registers jump aliases for the state after the step's build.
func WithShortcut(aliases ...string) Option {
	return func(o *stepOptions) { o.meta.Shortcut = append(o.meta.Shortcut, aliases...) }
}

func collect(opts []Option) stepOptions {
	o := stepOptions{easing: easing.Linear}
	for _, opt := range opts {
		opt(&o)
	}
	if o.easing == nil {
		o.easing = easing.Linear
	}
	return o
}

// Animate creates an Animate step: 1000ms, no delay, linear, non-blocking.
func Animate(object *Object, props Props, opts ...Option) *AnimateStep {
	o := collect(opts)
	duration := DefaultDuration
	if o.duration != nil {
		duration = *o.duration
	}
	return &AnimateStep{
		StepMeta:      o.meta,
		Object:        object,
		Props:         normalizeProps(props),
		Duration:      duration,
		Delay:         o.delay,
		Easing:        o.easing,
		Block:         o.block,
		Interpolators: o.interpolators,
	}
}

// Update creates an instantaneous property change.
func Update(object *Object, props Props, opts ...Option) *UpdateStep {
	o := collect(opts)
	return &UpdateStep{StepMeta: o.meta, Object: object, Props: normalizeProps(props)}
}

// Pause creates a pause of the given length in milliseconds.
func Pause(ms float64, opts ...Option) *PauseStep {
	o := collect(opts)
	return &PauseStep{StepMeta: o.meta, Duration: ms}
}

// FadeOut animates opacity to 0 over 500ms with a cubic curve.
func FadeOut(object *Object, opts ...Option) *AnimateStep {
	base := []Option{WithDuration(500), WithEasing(easing.Cubic)}
	return Animate(object, Props{"opacity": 0.0}, append(base, opts...)...)
}

// Show makes an object fully opaque instantly.
func Show(object *Object, opts ...Option) *UpdateStep {
	return Update(object, Props{"opacity": 1.0}, opts...)
}

// Hide makes an object fully transparent instantly.
func Hide(object *Object, opts ...Option) *UpdateStep {
	return Update(object, Props{"opacity": 0.0}, opts...)
}

// WriteOn animates a Text object's visible length up to its full text.
func WriteOn(text *Object, opts ...Option) *AnimateStep {
	n := float64(len([]rune(text.String("text", ""))))
	return Animate(text, Props{"length": n}, opts...)
}

func normalizeProps(props Props) Props {
	out := make(Props, len(props))
	for k, v := range props {
		out[k] = Normalize(v)
	}
	return out
}

// Build is a group of steps that start together. A one-step build is an ordinary
// sequential build.
type Build []Step

// Single wraps one step as a build.
func Single(s Step) Build {
	return Build{s}
}

// Parallel groups steps that start at the same time.
func Parallel(steps ...Step) Build {
	return Build(steps)
}

// Shortcuts returns every shortcut alias registered by the build's steps, in step
// order.
func (b Build) Shortcuts() []string {
	var out []string
	for _, s := range b {
		out = append(out, s.Meta().Shortcut...)
	}
	return out
}

// IsKey reports whether any step of the build is key.
func (b Build) IsKey() bool {
	for _, s := range b {
		if s.Meta().IsKey {
			return true
		}
	}
	return false
}
