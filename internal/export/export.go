// Package export writes rendered charts to a local directory or an S3
// bucket.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/dashboard"
)

const svgContentType = "image/svg+xml"

// Sink stores one named object and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Charts exports the rendered charts of d to sink. Charts that failed to
// load or have nothing to draw are skipped; when none is left the error is
// common.ErrDataUnavailable.
func Charts(ctx context.Context, sink Sink, d *dashboard.Dashboard, now time.Time) ([]string, error) {
	stamp := now.UTC().Format("20060102T150405Z")

	charts := []struct {
		name string
		view dashboard.ChartView
	}{
		{"xp", d.XPChart},
		{"ratio", d.RatioChart},
	}

	var locations []string
	for _, c := range charts {
		if c.view.Failed() || !strings.HasPrefix(c.view.SVG, "<svg") {
			continue
		}
		name := fmt.Sprintf("%s-%s.svg", c.name, stamp)
		loc, err := sink.Put(ctx, name, []byte(c.view.SVG), svgContentType)
		if err != nil {
			return locations, fmt.Errorf("export %s: %w", name, err)
		}
		locations = append(locations, loc)
	}

	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: no chart to export", common.ErrDataUnavailable)
	}
	return locations, nil
}
