package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/chart"
	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/dmitrijs2005/progressboard/internal/models"
	"golang.org/x/sync/errgroup"
)

// Source provides the dashboard data. *graphql.Client implements it.
type Source interface {
	GetUserInfo(ctx context.Context) (*models.User, error)
	GetUserExperience(ctx context.Context) ([]models.Transaction, error)
	GetUserProgress(ctx context.Context) ([]models.ProgressRecord, error)
	GetPassFailRatio(ctx context.Context) ([]models.ProgressRecord, error)
}

type Dashboard struct {
	Profile    ProfileView
	XP         XPView
	Progress   ProgressView
	XPChart    ChartView
	RatioChart ChartView
}

type Controller struct {
	src    Source
	loc    *time.Location
	logger logging.Logger
}

type Option func(*Controller)

// WithLocation sets the location calendar days are computed in.
func WithLocation(loc *time.Location) Option { return func(c *Controller) { c.loc = loc } }

func WithLogger(l logging.Logger) Option { return func(c *Controller) { c.logger = l } }

func NewController(src Source, opts ...Option) *Controller {
	c := &Controller{src: src, loc: time.UTC, logger: logging.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// sectionErr keeps err on the section unless it means the session is gone,
// in which case it is returned to fail the whole load.
func (c *Controller) sectionErr(ctx context.Context, name string, err error, s *Section) error {
	if err == nil {
		return nil
	}
	if common.IsAuthError(err) {
		return err
	}
	if errors.Is(err, common.ErrDataUnavailable) {
		s.Empty = true
		return nil
	}
	c.logger.Warn(ctx, "section failed to load", "section", name, "error", err)
	s.Err = err
	return nil
}

// Load fetches every section concurrently and waits for all of them.
func (c *Controller) Load(ctx context.Context) (*Dashboard, error) {
	var (
		d Dashboard
		g errgroup.Group
	)

	g.Go(func() error {
		u, err := c.src.GetUserInfo(ctx)
		if err != nil {
			return c.sectionErr(ctx, "profile", err, &d.Profile.Section)
		}
		d.Profile = newProfileView(u)
		return nil
	})

	g.Go(func() error {
		txs, err := c.src.GetUserExperience(ctx)
		if err != nil {
			if aerr := c.sectionErr(ctx, "xp", err, &d.XP.Section); aerr != nil {
				return aerr
			}
			d.XPChart.Section = d.XP.Section
			return nil
		}
		d.XP = newXPView(txs, c.loc)
		d.XPChart.SVG = chart.RenderLine(txs, chart.Options{Location: c.loc})
		return nil
	})

	g.Go(func() error {
		records, err := c.src.GetUserProgress(ctx)
		if err != nil {
			return c.sectionErr(ctx, "progress", err, &d.Progress.Section)
		}
		d.Progress = newProgressView(records, c.loc)
		return nil
	})

	g.Go(func() error {
		records, err := c.src.GetPassFailRatio(ctx)
		if err != nil {
			return c.sectionErr(ctx, "ratio", err, &d.RatioChart.Section)
		}
		d.RatioChart.SVG = chart.RenderPie(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		c.logger.Info(ctx, "dashboard load needs a new session", "error", err)
		return nil, err
	}
	return &d, nil
}
