package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"opinion-chat/internal/app"
)

// renderHelp draws the full-screen help overlay. Any key closes it.
func renderHelp(t Theme, tr *app.Translator, width int) string {
	var b strings.Builder

	b.WriteString(t.TopBarTitle.Render(tr.T("app.name") + " · " + tr.T("help.title")))
	b.WriteString("\n\n")

	b.WriteString(t.PaneTitle.Render(tr.T("help.getStarted")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("enter"), tr.T("auth.login")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("ctrl+r"), tr.T("auth.register")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("ctrl+l"), tr.T("auth.logout")))

	b.WriteString("\n")
	b.WriteString(t.PaneTitle.Render(tr.T("help.chat")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("enter"), tr.T("chat.sendMessage")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("j"), tr.T("chat.join")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("n"), tr.T("chat.createChat")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("/leave"), tr.T("chat.leave")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", t.Selected.Render("/log"), tr.T("chat.downloadLog")))
	b.WriteString(fmt.Sprintf("  %s  no | en\n", t.Selected.Render("/lang")))

	b.WriteString("\n")
	b.WriteString(t.PaneTitle.Render(tr.T("help.files")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s <path>  %s\n", t.Selected.Render("/upload"), tr.T("file.upload")))

	b.WriteString("\n")
	b.WriteString(t.PaneTitle.Render(tr.T("help.polls")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s | A | B\n", t.Selected.Render("/poll"), tr.T("poll.question")))
	b.WriteString(fmt.Sprintf("  %s <pollID> <optionID>  %s\n", t.Selected.Render("/vote"), tr.T("poll.vote")))

	b.WriteString("\n")
	b.WriteString(t.PaneTitle.Render(tr.T("help.roles")))
	b.WriteString("\n")
	for _, role := range []app.UserRole{app.RoleAdmin, app.RoleModerator, app.RoleParticipant, app.RoleObserver} {
		b.WriteString("  " + t.RoleBadge(role).Render("["+tr.T("role."+string(role))+"]") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(t.Footer.Render(tr.T("app.close") + ": esc"))
	return b.String()
}

type keyMap struct {
	Quit   key.Binding
	Enter  key.Binding
	Help   key.Binding
	Logout key.Binding
	Back   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send / confirm"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Help, k.Logout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Back, k.Help, k.Logout, k.Quit},
	}
}
