package slide

// Object kinds understood by the bundled renderers.
const (
	KindCircle    = "Circle"
	KindGroup     = "Group"
	KindImage     = "Image"
	KindLine      = "Line"
	KindMask      = "Mask"
	KindPolygon   = "Polygon"
	KindQRCode    = "QRCode"
	KindRectangle = "Rectangle"
	KindText      = "Text"
)

// Anchors.
const (
	AnchorTopLeft     = "TopLeft"
	AnchorTop         = "Top"
	AnchorTopRight    = "TopRight"
	AnchorLeft        = "Left"
	AnchorCenter      = "Center"
	AnchorRight       = "Right"
	AnchorBottomLeft  = "BottomLeft"
	AnchorBottom      = "Bottom"
	AnchorBottomRight = "BottomRight"
)

func withDefaults(kind string, defaults, props Props) *Object {
	merged := make(Props, len(defaults)+len(props))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	return NewObject(kind, merged)
}

func Rectangle(props Props) *Object {
	return withDefaults(KindRectangle, Props{
		"anchor":      AnchorTopLeft,
		"borderColor": Black,
		"borderWidth": 0.0,
		"drawn":       1.0,
		"fill":        Black,
		"height":      100.0,
		"rounding":    0.0,
		"width":       100.0,
		"x":           0.0,
		"y":           0.0,
	}, props)
}

func Circle(props Props) *Object {
	return withDefaults(KindCircle, Props{
		"anchor":      AnchorCenter,
		"borderColor": Black,
		"borderWidth": 0.0,
		"drawn":       1.0,
		"fill":        Black,
		"radius":      50.0,
		"x":           0.0,
		"y":           0.0,
	}, props)
}

func Line(props Props) *Object {
	return withDefaults(KindLine, Props{
		"color": Black,
		"drawn": 1.0,
		"end":   Point{X: 100},
		"start": Point{},
		"width": 1.0,
	}, props)
}

func Polygon(props Props) *Object {
	return withDefaults(KindPolygon, Props{
		"borderColor": Black,
		"borderWidth": 0.0,
		"fill":        Black,
		"points":      []Point{},
	}, props)
}

// Group draws its children with their positions offset by the group's x/y and
// their opacity multiplied by the group's.
func Group(children []*Object, props Props) *Object {
	p := Props{
		"anchor":   AnchorTopLeft,
		"height":   0.0,
		"rotation": 0.0,
		"scale":    1.0,
		"width":    0.0,
		"x":        0.0,
		"y":        0.0,
	}
	for k, v := range props {
		p[k] = v
	}
	p[ChildrenProp] = children
	return NewObject(KindGroup, p)
}

// Mask clips its children to its rectangle.
func Mask(children []*Object, props Props) *Object {
	p := Props{
		"anchor":  AnchorTopLeft,
		"height":  100.0,
		"preview": false,
		"width":   100.0,
		"x":       0.0,
		"y":       0.0,
	}
	for k, v := range props {
		p[k] = v
	}
	p[ChildrenProp] = children
	return NewObject(KindMask, p)
}

func Image(imageID string, props Props) *Object {
	p := Props{"imageId": imageID}
	for k, v := range props {
		p[k] = v
	}
	return withDefaults(KindImage, Props{
		"anchor":   AnchorTopLeft,
		"height":   100.0,
		"rounding": 0.0,
		"smooth":   true,
		"width":    100.0,
		"x":        0.0,
		"y":        0.0,
	}, p)
}

// Text shows the first "length" runes of its text; a negative length shows all.
func Text(text string, props Props) *Object {
	p := Props{"text": text}
	for k, v := range props {
		p[k] = v
	}
	return withDefaults(KindText, Props{
		"alignment":   "Left",
		"anchor":      AnchorTopLeft,
		"color":       Black,
		"length":      -1.0,
		"lineSpacing": 1.0,
		"scale":       1.0,
		"x":           0.0,
		"y":           0.0,
	}, p)
}

// QRCode encodes content as a square QR symbol of the given size.
func QRCode(content string, props Props) *Object {
	p := Props{"content": content}
	for k, v := range props {
		p[k] = v
	}
	return withDefaults(KindQRCode, Props{
		"anchor": AnchorTopLeft,
		"color":  Black,
		"size":   256.0,
		"x":      0.0,
		"y":      0.0,
	}, p)
}
