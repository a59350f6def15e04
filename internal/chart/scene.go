package chart

// Shape is one drawable element of a Scene.
type Shape interface {
	shape()
}

// Segment is a straight line.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
}

type Path struct {
	D           string
	Fill        string
	Stroke      string
	StrokeWidth float64
}

type Circle struct {
	CX, CY, R   float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	// Opacity of 0 means fully opaque.
	Opacity float64
	Class   string
	// Title is shown as a tooltip.
	Title string
}

type Rect struct {
	X, Y, Width, Height float64
	Fill                string
}

type Text struct {
	X, Y      float64
	Content   string
	Anchor    string
	FontSize  int
	Bold      bool
	Fill      string
	Transform string
}

type Group struct {
	Transform string
	Children  []Shape
}

func (Segment) shape() {}
func (Path) shape()    {}
func (Circle) shape()  {}
func (Rect) shape()    {}
func (Text) shape()    {}
func (Group) shape()   {}

// Scene is a laid-out chart. When Placeholder is set nothing is drawn.
type Scene struct {
	Width, Height float64
	Shapes        []Shape
	Placeholder   string
}

// Walk calls fn for every shape of s, descending into groups.
func Walk(shapes []Shape, fn func(Shape)) {
	for _, sh := range shapes {
		fn(sh)
		if g, ok := sh.(Group); ok {
			Walk(g.Children, fn)
		}
	}
}
