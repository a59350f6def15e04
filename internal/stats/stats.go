// Package stats derives the textual summaries shown next to the charts.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	RecentTransactions = 5
	RecentProjects     = 3
)

var printer = message.NewPrinter(language.English)

// TotalXP sums the valid amounts of txs.
func TotalXP(txs []models.Transaction) float64 {
	var sum float64
	for _, tx := range txs {
		if tx.Amount.Valid {
			sum += tx.Amount.Value
		}
	}
	return sum
}

// FormatXP renders an experience amount with a B, KB or MB unit.
func FormatXP(xp float64) string {
	switch {
	case xp >= 1_000_000:
		return fmt.Sprintf("%.2f MB", xp/1_000_000)
	case xp >= 1_000:
		return fmt.Sprintf("%.2f KB", xp/1_000)
	default:
		return strconv.FormatFloat(xp, 'f', -1, 64) + " B"
	}
}

// FormatAmount is FormatXP for a lenient amount; invalid amounts render as
// zero.
func FormatAmount(n models.Number) string {
	if !n.Valid {
		return FormatXP(0)
	}
	return FormatXP(n.Value)
}

// Grouped renders xp rounded to a whole number with thousands separators.
func Grouped(xp float64) string {
	return printer.Sprintf("%d", int64(math.Round(xp)))
}

// FormatDate renders the calendar date of t in loc as month/day/year.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "No date"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("1/2/2006")
}

// Recent returns at most n leading items. Inputs arrive newest first.
func Recent[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// ProjectStats summarises the project records of a progress list.
type ProjectStats struct {
	Passed     int
	Failed     int
	InProgress int
	// Attempted counts graded projects only.
	Attempted int
	// SuccessRate is the rounded percentage of passed among attempted.
	SuccessRate int
}

// Summarize computes ProjectStats over the project records of records.
func Summarize(records []models.ProgressRecord) ProjectStats {
	var s ProjectStats
	for _, r := range models.Projects(records) {
		switch r.Status() {
		case models.StatusPassed:
			s.Passed++
		case models.StatusFailed:
			s.Failed++
		default:
			s.InProgress++
		}
	}
	s.Attempted = s.Passed + s.Failed
	if s.Attempted > 0 {
		s.SuccessRate = int(math.Round(float64(s.Passed) / float64(s.Attempted) * 100))
	}
	return s
}
