package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/models"
	"github.com/dmitrijs2005/progressboard/internal/stats"
)

const (
	notProvided  = "Not provided"
	notSpecified = "Not specified"
	unknown      = "Unknown"
	notAvailable = "N/A"
	subtitle     = "Student"
)

// Section is the common state of a dashboard section. Empty is set when
// the endpoint returned no data; Err when loading failed.
type Section struct {
	Empty bool
	Err   error
}

// Failed reports whether the section could not be loaded.
func (s Section) Failed() bool { return s.Err != nil }

type ProfileView struct {
	Section
	Avatar   string
	Login    string
	Subtitle string
	Email    string
	Campus   string
	Name     string
	UserID   string

	HasBackground bool
	Education     string
	Experience    string
	Skills        string
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func newProfileView(u *models.User) ProfileView {
	if u == nil {
		return ProfileView{Section: Section{Empty: true}}
	}

	v := ProfileView{
		Avatar:        u.Initial(),
		Login:         fallback(u.Login, notAvailable),
		Subtitle:      subtitle,
		Email:         fallback(u.Attrs.Email, notProvided),
		Campus:        fallback(u.Campus, notSpecified),
		Name:          fallback(u.Attrs.FullName(), notProvided),
		UserID:        unknown,
		HasBackground: u.Attrs.HasBackground(),
		Education:     u.Attrs.Education,
		Experience:    u.Attrs.Background,
		Skills:        u.Attrs.Skills,
	}
	if u.ID != 0 {
		v.UserID = strconv.Itoa(u.ID)
	}
	return v
}

type TransactionView struct {
	Name   string
	Type   string
	Amount string
	Date   string
}

func newTransactionView(tx models.Transaction, loc *time.Location) TransactionView {
	v := TransactionView{
		Name:   unknown,
		Amount: stats.FormatAmount(tx.Amount),
		Date:   stats.FormatDate(tx.CreatedAt, loc),
	}
	if tx.Object != nil {
		v.Name = tx.Object.Name
		v.Type = tx.Object.Type
	}
	return v
}

type XPView struct {
	Section
	Total float64
	// TotalText is Total with its unit; TotalRaw is the grouped number.
	TotalText string
	TotalRaw  string
	Latest    TransactionView
	Recent    []TransactionView
}

func newXPView(txs []models.Transaction, loc *time.Location) XPView {
	if len(txs) == 0 {
		return XPView{Section: Section{Empty: true}}
	}

	total := stats.TotalXP(txs)
	v := XPView{
		Total:     total,
		TotalText: stats.FormatXP(total),
		TotalRaw:  stats.Grouped(total),
		Latest:    newTransactionView(txs[0], loc),
	}
	for _, tx := range stats.Recent(txs, stats.RecentTransactions) {
		v.Recent = append(v.Recent, newTransactionView(tx, loc))
	}
	return v
}

type ProjectView struct {
	Name        string
	Status      models.Status
	StatusClass string
	Date        string
}

func statusClass(s models.Status) string {
	switch s {
	case models.StatusPassed:
		return "status-passed"
	case models.StatusFailed:
		return "status-failed"
	}
	return "status-progress"
}

type ProgressView struct {
	Section
	Stats  stats.ProjectStats
	Recent []ProjectView
}

func newProgressView(records []models.ProgressRecord, loc *time.Location) ProgressView {
	if len(records) == 0 {
		return ProgressView{Section: Section{Empty: true}}
	}

	projects := models.Projects(records)
	v := ProgressView{Stats: stats.Summarize(records)}
	for _, p := range stats.Recent(projects, stats.RecentProjects) {
		status := p.Status()
		v.Recent = append(v.Recent, ProjectView{
			Name:        p.Object.Name,
			Status:      status,
			StatusClass: statusClass(status),
			Date:        stats.FormatDate(p.CreatedAt, loc),
		})
	}
	return v
}

// ChartView holds rendered chart markup, or the placeholder text when
// there was nothing to draw.
type ChartView struct {
	Section
	SVG string
}
