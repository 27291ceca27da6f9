package slide

import (
	"reflect"
	"sort"
)

// Props is a set of named object properties. Values are float64, string, bool,
// Color, []Point, []*Object or any other value the renderers understand.
type Props map[string]any

// Point is a position on the slide.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ChildrenProp is the property under which containers keep their children.
const ChildrenProp = "objects"

// Object is an immutable drawable record. Two objects are the same object only if
// they are the same pointer; equal properties do not make objects identical.
type Object struct {
	kind  string
	props Props
}

// NewObject creates an object of the given kind. Numeric values are normalised to
// float64 and the props map is copied, so the caller may reuse it.
func NewObject(kind string, props Props) *Object {
	o := &Object{kind: kind, props: make(Props, len(props)+1)}
	o.props["opacity"] = 1.0
	for k, v := range props {
		o.props[k] = Normalize(v)
	}
	return o
}

// Kind returns the object's discriminant, e.g. "Rectangle".
func (o *Object) Kind() string {
	return o.kind
}

// Get returns a property value.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.props[name]
	return v, ok
}

// Props returns a copy of all properties.
func (o *Object) Props() Props {
	out := make(Props, len(o.props))
	for k, v := range o.props {
		out[k] = v
	}
	return out
}

// Float returns a numeric property or def when missing or not numeric.
func (o *Object) Float(name string, def float64) float64 {
	if v, ok := o.props[name].(float64); ok {
		return v
	}
	return def
}

// String returns a string property or def.
func (o *Object) String(name string, def string) string {
	if v, ok := o.props[name].(string); ok {
		return v
	}
	return def
}

// Bool returns a boolean property or def.
func (o *Object) Bool(name string, def bool) bool {
	if v, ok := o.props[name].(bool); ok {
		return v
	}
	return def
}

// Color returns a colour property or def.
func (o *Object) Color(name string, def Color) Color {
	if v, ok := o.props[name].(Color); ok {
		return v
	}
	return def
}

// Points returns a point-list property.
func (o *Object) Points(name string) []Point {
	v, _ := o.props[name].([]Point)
	return v
}

// Opacity returns the object's own opacity.
func (o *Object) Opacity() float64 {
	return o.Float("opacity", 1)
}

// Objects returns the children stored under name.
func (o *Object) Objects(name string) []*Object {
	v, _ := o.props[name].([]*Object)
	return v
}

// Children returns every child reachable through container-valued properties, in
// property-name order.
func (o *Object) Children() []*Object {
	var names []string
	for k, v := range o.props {
		if _, ok := v.([]*Object); ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	var children []*Object
	for _, name := range names {
		for _, child := range o.props[name].([]*Object) {
			if child != nil {
				children = append(children, child)
			}
		}
	}
	return children
}

// Equal reports structural equality: same kind and deeply equal properties. It is
// not identity; use pointer comparison for that.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.kind == other.kind && reflect.DeepEqual(o.props, other.props)
}

// With returns a new object with patch merged over the current properties. The
// receiver is left untouched.
func (o *Object) With(patch Props) *Object {
	next := &Object{kind: o.kind, props: make(Props, len(o.props)+len(patch))}
	for k, v := range o.props {
		next.props[k] = v
	}
	for k, v := range patch {
		next.props[k] = Normalize(v)
	}
	return next
}

// Normalize converts the numeric and pointer forms accepted by constructors into
// the canonical property representation.
func Normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case float32:
		return float64(x)
	case *Color:
		if x == nil {
			return nil
		}
		return *x
	default:
		return v
	}
}
