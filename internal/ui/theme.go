package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Iron System theme (CLI + TUI).

const (
	IconIron    = "🛡️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconLock    = "🔒"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconFire    = "🔥"
	IconCrown   = "👑"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCalDay  = "📅"
	IconGift    = "🎁"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cRare    = lipgloss.Color("99")  // violet
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Rare  = lipgloss.NewStyle().Bold(true).Foreground(cRare)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeElite   = lipgloss.NewStyle().Bold(true).Foreground(cAccent).Render("ELITE")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryIcon returns the emoji for an objective or achievement category.
func CategoryIcon(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "discipline":
		return "🥋"
	case "endurance":
		return "🫀"
	case "mental":
		return "🧠"
	default:
		return "❓"
	}
}

// FrequencyText renders "daily" or "weekly" with its own color.
func FrequencyText(freq string) string {
	switch strings.ToLower(freq) {
	case "weekly":
		return Rare.Render("weekly")
	case "daily":
		return H2.Render("daily")
	default:
		return Muted.Render(freq)
	}
}

// Bar renders a width-wide gauge for pct in 0..100.
func Bar(pct, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// Streak renders a streak counter, with a flame once it runs.
func Streak(days int) string {
	if days <= 0 {
		return Muted.Render("0 days")
	}
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return Warn.Render(fmt.Sprintf("%s %d %s", IconFire, days, unit))
}
