package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/progressboard/internal/dashboard"
	"github.com/dmitrijs2005/progressboard/internal/models"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	passedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func card(title string, lines ...string) string {
	body := append([]string{titleStyle.Render(title)}, lines...)
	return cardStyle.Render(strings.Join(body, "\n"))
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

// sectionState returns the line shown instead of a section's content, if
// any.
func sectionState(s dashboard.Section, empty string) (string, bool) {
	switch {
	case s.Failed():
		return errorStyle.Render("Error loading data: " + s.Err.Error()), true
	case s.Empty:
		return empty, true
	}
	return "", false
}

func profileCard(v dashboard.ProfileView) string {
	if line, ok := sectionState(v.Section, "No user information available"); ok {
		return card("Profile", line)
	}

	lines := []string{
		fmt.Sprintf("[%s] %s", v.Avatar, v.Login),
		labelStyle.Render(v.Subtitle),
		"",
		field("Email", v.Email),
		field("Campus", v.Campus),
		field("Name", v.Name),
		field("User ID", v.UserID),
	}
	if v.HasBackground {
		lines = append(lines, "", titleStyle.Render("Background"))
		if v.Education != "" {
			lines = append(lines, field("Education", v.Education))
		}
		if v.Experience != "" {
			lines = append(lines, field("Experience", v.Experience))
		}
		if v.Skills != "" {
			lines = append(lines, field("Skills", v.Skills))
		}
	}
	return card("Profile", lines...)
}

func xpCard(v dashboard.XPView) string {
	if line, ok := sectionState(v.Section, "No XP information available"); ok {
		return card("Experience", line)
	}

	lines := []string{
		field("Project XP (Exercises Excluded)", fmt.Sprintf("%s (%s bytes)", v.TotalText, v.TotalRaw)),
		field("Latest XP earned", fmt.Sprintf("%s (%s)", v.Latest.Amount, v.Latest.Date)),
		"",
		titleStyle.Render("Recent XP Transactions"),
	}
	for _, tx := range v.Recent {
		lines = append(lines, fmt.Sprintf("%s  %s  %s  %s", tx.Name, labelStyle.Render(tx.Type), tx.Amount, tx.Date))
	}
	return card("Experience", lines...)
}

func statusStyle(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusPassed:
		return passedStyle
	case models.StatusFailed:
		return failedStyle
	}
	return progressStyle
}

func progressCard(v dashboard.ProgressView) string {
	if line, ok := sectionState(v.Section, "No progress information available"); ok {
		return card("Progress", line)
	}

	lines := []string{
		field("Total projects attempted", fmt.Sprint(v.Stats.Attempted)),
		field("Projects passed", fmt.Sprint(v.Stats.Passed)),
		field("Projects failed", fmt.Sprint(v.Stats.Failed)),
		field("Success rate", fmt.Sprintf("%d%%", v.Stats.SuccessRate)),
		field("In Progress", fmt.Sprint(v.Stats.InProgress)),
		"",
		titleStyle.Render("Recent Projects"),
	}
	for _, p := range v.Recent {
		lines = append(lines, fmt.Sprintf("%s  %s  %s", p.Name, statusStyle(p.Status).Render(string(p.Status)), p.Date))
	}
	return card("Progress", lines...)
}
