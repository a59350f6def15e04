package chart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/models"
	"github.com/dmitrijs2005/progressboard/internal/stats"
)

const (
	LineWidth  = 700
	LineHeight = 400
	LineColor  = "#3498db"
	axisColor  = "#ccc"
	lineTitle  = "XP Progress Over Time"
	NoXPData   = "No XP data available"
	tickCount  = 5
	markerSize = 5
)

// margins around the plot area
var margin = struct{ Top, Right, Bottom, Left float64 }{Top: 40, Right: 40, Bottom: 60, Left: 80}

// Point is the cumulative experience at the end of a calendar day.
type Point struct {
	Date       time.Time
	Cumulative float64
}

// Series sorts txs by creation time and accumulates their valid amounts,
// keeping one point per calendar day in loc with that day's final total.
func Series(txs []models.Transaction, loc *time.Location) []Point {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var (
		points []Point
		index  = map[string]int{}
		total  float64
	)
	for _, tx := range sorted {
		if !tx.Amount.Valid {
			continue
		}
		total += tx.Amount.Value

		t := tx.CreatedAt.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		key := day.Format(time.DateOnly)
		if i, ok := index[key]; ok {
			points[i].Cumulative = total
			continue
		}
		index[key] = len(points)
		points = append(points, Point{Date: day, Cumulative: total})
	}
	return points
}

type Options struct {
	// Location decides calendar days and labels. UTC when nil.
	Location *time.Location
}

// LineChart is the cumulative experience over time.
type LineChart struct {
	Points      []Point
	Max         float64
	Placeholder string
	loc         *time.Location
}

// Line builds the cumulative experience chart of txs.
func Line(txs []models.Transaction, opts Options) LineChart {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	points := Series(txs, loc)
	if len(points) == 0 {
		return LineChart{Placeholder: NoXPData, loc: loc}
	}

	c := LineChart{Points: points, Max: points[0].Cumulative, loc: loc}
	for _, p := range points[1:] {
		if p.Cumulative > c.Max {
			c.Max = p.Cumulative
		}
	}
	return c
}

func innerWidth() float64  { return LineWidth - margin.Left - margin.Right }
func innerHeight() float64 { return LineHeight - margin.Top - margin.Bottom }

func (c LineChart) minDate() time.Time { return c.Points[0].Date }
func (c LineChart) maxDate() time.Time { return c.Points[len(c.Points)-1].Date }

// X maps a date to its horizontal position. With a single day every date
// maps to the centre of the plot.
func (c LineChart) X(d time.Time) float64 {
	span := c.maxDate().Sub(c.minDate())
	if span <= 0 {
		return margin.Left + innerWidth()/2
	}
	return margin.Left + float64(d.Sub(c.minDate()))/float64(span)*innerWidth()
}

// Y maps a cumulative value to its vertical position. A non-positive
// maximum puts every value on the x axis.
func (c LineChart) Y(v float64) float64 {
	bottom := margin.Top + innerHeight()
	if c.Max <= 0 {
		return bottom
	}
	return bottom - v/c.Max*innerHeight()
}

func (c LineChart) Scene() Scene {
	if c.Placeholder != "" {
		return Scene{Placeholder: c.Placeholder}
	}

	bottom := margin.Top + innerHeight()
	right := margin.Left + innerWidth()
	midY := margin.Top + innerHeight()/2

	shapes := []Shape{
		Text{X: LineWidth / 2, Y: 25, Content: lineTitle, Anchor: "middle", FontSize: 18, Bold: true, Fill: textColor},
		Segment{X1: margin.Left, Y1: bottom, X2: right, Y2: bottom, Stroke: axisColor, StrokeWidth: 2},
		Segment{X1: margin.Left, Y1: margin.Top, X2: margin.Left, Y2: bottom, Stroke: axisColor, StrokeWidth: 2},
		Text{X: margin.Left + innerWidth()/2, Y: LineHeight - 10, Content: "Date", Anchor: "middle", FontSize: 14, Fill: textColor},
		Text{X: 15, Y: midY, Content: "Cumulative XP", Anchor: "middle", FontSize: 14, Fill: textColor,
			Transform: fmt.Sprintf("rotate(-90, 15, %s)", num(midY))},
	}

	for _, d := range c.dateTicks() {
		x := c.X(d)
		shapes = append(shapes,
			Segment{X1: x, Y1: bottom, X2: x, Y2: bottom + 5, Stroke: axisColor, StrokeWidth: 2},
			Text{X: x, Y: bottom + 20, Content: d.In(c.loc).Format("Jan 2"), Anchor: "middle", FontSize: 12, Fill: textColor},
		)
	}

	for _, v := range c.valueTicks() {
		y := c.Y(v)
		shapes = append(shapes,
			Segment{X1: margin.Left - 5, Y1: y, X2: margin.Left, Y2: y, Stroke: axisColor, StrokeWidth: 2},
			Text{X: margin.Left - 10, Y: y + 5, Content: strconv.Itoa(round(v)), Anchor: "end", FontSize: 12, Fill: textColor},
		)
	}

	if len(c.Points) > 1 {
		var d strings.Builder
		for i, p := range c.Points {
			if i == 0 {
				d.WriteString("M")
			} else {
				d.WriteString(" L")
			}
			d.WriteString(num(c.X(p.Date)))
			d.WriteByte(',')
			d.WriteString(num(c.Y(p.Cumulative)))
		}
		shapes = append(shapes, Path{D: d.String(), Fill: "none", Stroke: LineColor, StrokeWidth: 3})
	}

	for _, p := range c.Points {
		x, y := c.X(p.Date), c.Y(p.Cumulative)
		shapes = append(shapes,
			Circle{CX: x, CY: y, R: markerSize, Fill: LineColor},
			Circle{CX: x, CY: y, R: markerSize, Fill: LineColor, Opacity: 0.3, Class: "hover-point",
				Title: fmt.Sprintf("Date: %s\nXP: %s", stats.FormatDate(p.Date, c.loc), strconv.FormatFloat(p.Cumulative, 'f', -1, 64))},
		)
	}

	return Scene{Width: LineWidth, Height: LineHeight, Shapes: shapes}
}

// dateTicks spaces tickCount intervals evenly in time. A single day has a
// single tick.
func (c LineChart) dateTicks() []time.Time {
	span := c.maxDate().Sub(c.minDate())
	if span <= 0 {
		return []time.Time{c.minDate()}
	}
	ticks := make([]time.Time, 0, tickCount+1)
	for i := 0; i <= tickCount; i++ {
		ticks = append(ticks, c.minDate().Add(time.Duration(float64(span)*float64(i)/tickCount)))
	}
	return ticks
}

// valueTicks spaces tickCount intervals evenly from 0 to the maximum. A
// non-positive maximum has only the 0 tick.
func (c LineChart) valueTicks() []float64 {
	if c.Max <= 0 {
		return []float64{0}
	}
	ticks := make([]float64, 0, tickCount+1)
	for i := 0; i <= tickCount; i++ {
		ticks = append(ticks, c.Max*float64(i)/tickCount)
	}
	return ticks
}

// RenderLine renders the cumulative experience chart of txs.
func RenderLine(txs []models.Transaction, opts Options) string {
	return SVG(Line(txs, opts).Scene())
}
