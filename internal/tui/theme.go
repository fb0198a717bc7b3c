package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"opinion-chat/internal/app"
)

type Theme struct {
	// Colors
	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	TextFaint   lipgloss.AdaptiveColor

	Accent   lipgloss.AdaptiveColor
	Success  lipgloss.AdaptiveColor
	Warn     lipgloss.AdaptiveColor
	Error    lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor
	BorderHi lipgloss.AdaptiveColor

	// Styles
	TopBar      lipgloss.Style
	TopBarTitle lipgloss.Style
	TopBarMeta  lipgloss.Style

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style
	Footer      lipgloss.Style
	InputBox    lipgloss.Style
	InputBoxF   lipgloss.Style

	ErrorLine  lipgloss.Style
	StatusLine lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style

	SenderName lipgloss.Style
	Timestamp  lipgloss.Style
	FileMark   lipgloss.Style
	PollMark   lipgloss.Style

	BadgeAdmin       lipgloss.Style
	BadgeModerator   lipgloss.Style
	BadgeParticipant lipgloss.Style
	BadgeObserver    lipgloss.Style
}

func NewTheme() Theme {
	if os.Getenv("OCHAT_NO_COLOR") == "1" {
		return newMonoTheme()
	}
	return newDefaultTheme()
}

func newDefaultTheme() Theme {
	t := Theme{
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1d2433", Dark: "#f2f2f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#c7c7c7"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#718096", Dark: "#9aa0a6"},

		Accent:   lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#7aa2ff"},
		Success:  lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#46d1b7"},
		Warn:     lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f4b27d"},
		Error:    lipgloss.AdaptiveColor{Light: "#b42318", Dark: "#ff7a7a"},
		Border:   lipgloss.AdaptiveColor{Light: "#cbd5e0", Dark: "#3a3a3a"},
		BorderHi: lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#7aa2ff"},
	}
	return t.buildStyles()
}

func newMonoTheme() Theme {
	t := Theme{
		TextPrimary: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#bbbbbb"},
		Accent:      lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Success:     lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Warn:        lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Error:       lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Border:      lipgloss.AdaptiveColor{Light: "#555555", Dark: "#777777"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
	}
	return t.buildStyles()
}

func (t Theme) buildStyles() Theme {
	t.TopBar = lipgloss.NewStyle().Foreground(t.TextPrimary)
	t.TopBarTitle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.TopBarMeta = lipgloss.NewStyle().Foreground(t.TextMuted)

	t.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.PaneFocused = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.InputBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.InputBoxF = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)

	t.ErrorLine = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.StatusLine = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Muted = lipgloss.NewStyle().Foreground(t.TextFaint)

	t.SenderName = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Timestamp = lipgloss.NewStyle().Foreground(t.TextFaint)
	t.FileMark = lipgloss.NewStyle().Foreground(t.Warn)
	t.PollMark = lipgloss.NewStyle().Foreground(t.Success)

	t.BadgeAdmin = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.BadgeModerator = lipgloss.NewStyle().Bold(true).Foreground(t.Warn)
	t.BadgeParticipant = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.BadgeObserver = lipgloss.NewStyle().Foreground(t.TextFaint)
	return t
}

// RoleBadge picks the style for a role label.
func (t Theme) RoleBadge(role app.UserRole) lipgloss.Style {
	switch role {
	case app.RoleAdmin:
		return t.BadgeAdmin
	case app.RoleModerator:
		return t.BadgeModerator
	case app.RoleObserver:
		return t.BadgeObserver
	default:
		return t.BadgeParticipant
	}
}
