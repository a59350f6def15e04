// Package chart turns dashboard data into charts.
//
// Builders are pure: Pie and Line compute a chart value from records, and
// the chart's Scene method lays it out as a flat description of shapes
// (Segment, Path, Circle, Rect, Text, Group). SVG renders a Scene to markup.
// Keeping layout separate from markup lets callers inspect geometry
// directly and keeps the renderer free of chart knowledge.
//
// A Scene with a Placeholder renders as the placeholder text alone. The
// output for a given input is always byte-identical.
package chart
