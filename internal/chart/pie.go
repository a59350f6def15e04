package chart

import (
	"fmt"
	"math"

	"github.com/dmitrijs2005/progressboard/internal/models"
)

const (
	PieSize    = 400
	PieRadius  = PieSize/2 - 40
	PassColor  = "#8CC63F"
	FailColor  = "#4A2882"
	textColor  = "white"
	pieTitle   = "Pass/Fail Ratio"
	NoResults  = "No results data available"
	NoProjects = "No project results available"
)

// Sector is a slice of the pie. Angles are in degrees, clockwise from
// the top.
type Sector struct {
	Label string
	Count int
	Start float64
	End   float64
	Color string
}

// Span returns the angle the sector covers.
func (s Sector) Span() float64 { return s.End - s.Start }

// LargeArc reports whether the sector's arc is the long way round.
func (s Sector) LargeArc() bool { return s.Span() > 180 }

// PieChart is the pass/fail breakdown of graded projects. Ungraded
// projects are not part of the denominator.
type PieChart struct {
	Passed      int
	Failed      int
	PassPercent float64
	FailPercent float64
	// Sectors holds the drawn slices; empty counts are omitted.
	Sectors     []Sector
	Placeholder string
}

// Pie builds the pass/fail chart of the project records among records.
func Pie(records []models.ProgressRecord) PieChart {
	if len(records) == 0 {
		return PieChart{Placeholder: NoResults}
	}
	projects := models.Projects(records)
	if len(projects) == 0 {
		return PieChart{Placeholder: NoProjects}
	}

	var c PieChart
	for _, p := range projects {
		switch p.Status() {
		case models.StatusPassed:
			c.Passed++
		case models.StatusFailed:
			c.Failed++
		}
	}

	if total := c.Passed + c.Failed; total > 0 {
		c.PassPercent = float64(c.Passed) / float64(total) * 100
		c.FailPercent = float64(c.Failed) / float64(total) * 100
	}

	sweep := c.PassPercent / 100 * 360
	if c.Passed > 0 {
		c.Sectors = append(c.Sectors, Sector{Label: "Pass", Count: c.Passed, Start: 0, End: sweep, Color: PassColor})
	}
	if c.Failed > 0 {
		c.Sectors = append(c.Sectors, Sector{Label: "Fail", Count: c.Failed, Start: sweep, End: 360, Color: FailColor})
	}
	return c
}

// polar maps an angle measured clockwise from the top to a point on a
// circle of radius r centred on the origin.
func polar(r, deg float64) (x, y float64) {
	rad := (deg - 90) * math.Pi / 180
	return r * math.Cos(rad), r * math.Sin(rad)
}

// SectorPath returns the path data of s on a circle of radius r.
func SectorPath(s Sector, r float64) string {
	x1, y1 := polar(r, s.Start)
	x2, y2 := polar(r, s.End)
	large := 0
	if s.LargeArc() {
		large = 1
	}
	return fmt.Sprintf("M 0 0 L %s %s A %s %s 0 %d 1 %s %s Z",
		num(x1), num(y1), num(r), num(r), large, num(x2), num(y2))
}

func (c PieChart) Scene() Scene {
	if c.Placeholder != "" {
		return Scene{Placeholder: c.Placeholder}
	}

	slices := make([]Shape, 0, len(c.Sectors))
	for _, s := range c.Sectors {
		// An arc cannot start and end on the same point.
		if s.Span() >= 360 {
			slices = append(slices, Circle{R: PieRadius, Fill: s.Color, Stroke: textColor, StrokeWidth: 2})
			continue
		}
		slices = append(slices, Path{D: SectorPath(s, PieRadius), Fill: s.Color, Stroke: textColor, StrokeWidth: 2})
	}

	return Scene{
		Width:  PieSize,
		Height: PieSize,
		Shapes: []Shape{
			Text{X: PieSize / 2, Y: 30, Content: pieTitle, Anchor: "middle", FontSize: 18, Bold: true, Fill: textColor},
			Group{
				Transform: fmt.Sprintf("translate(%d, %d)", PieSize/2, PieSize/2),
				Children:  slices,
			},
			Group{
				Transform: fmt.Sprintf("translate(%d, %d)", PieSize-110, PieSize-60),
				Children: []Shape{
					Rect{Width: 20, Height: 20, Fill: PassColor},
					Text{X: 30, Y: 15, Content: fmt.Sprintf("Pass (%d%%)", round(c.PassPercent)), FontSize: 14, Fill: textColor},
					Rect{Y: 30, Width: 20, Height: 20, Fill: FailColor},
					Text{X: 30, Y: 45, Content: fmt.Sprintf("Fail (%d%%)", round(c.FailPercent)), FontSize: 14, Fill: textColor},
				},
			},
		},
	}
}

func round(v float64) int { return int(math.Round(v)) }

// RenderPie renders the pass/fail chart of records.
func RenderPie(records []models.ProgressRecord) string {
	return SVG(Pie(records).Scene())
}
