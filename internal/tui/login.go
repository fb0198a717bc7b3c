package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opinion-chat/internal/app"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm
	fieldFirstName
	fieldLastName
	fieldRole
)

var registerRoles = []app.UserRole{
	app.RoleParticipant,
	app.RoleObserver,
	app.RoleModerator,
	app.RoleAdmin,
}

// loginModel is the combined login/register form. On a failed submit the
// form stays open with the session's error line rendered above it.
type loginModel struct {
	theme Theme
	app   *app.Application

	registering bool
	focus       int
	roleIdx     int
	submitting  bool
	localErr    string

	email     textinput.Model
	password  textinput.Model
	confirm   textinput.Model
	firstName textinput.Model
	lastName  textinput.Model
}

func newLoginModel(t Theme, application *app.Application) loginModel {
	mk := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 128
		in.Width = 38
		if secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		return in
	}
	tr := application.I18n
	m := loginModel{
		theme:     t,
		app:       application,
		email:     mk(tr.T("auth.email"), false),
		password:  mk(tr.T("auth.password"), true),
		confirm:   mk(tr.T("auth.confirmPassword"), true),
		firstName: mk(tr.T("auth.firstName"), false),
		lastName:  mk(tr.T("auth.lastName"), false),
	}
	m.email.Focus()
	return m
}

func (l *loginModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (l *loginModel) fieldCount() int {
	if l.registering {
		return 6
	}
	return 2
}

func (l *loginModel) update(root *RootModel, msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return root, l.updateInputs(msg)
	}
	if l.submitting {
		return root, nil
	}

	switch key.String() {
	case "tab", "down":
		l.setFocus((l.focus + 1) % l.fieldCount())
		return root, textinput.Blink
	case "shift+tab", "up":
		l.setFocus((l.focus - 1 + l.fieldCount()) % l.fieldCount())
		return root, textinput.Blink
	case "ctrl+r":
		l.registering = !l.registering
		l.localErr = ""
		l.setFocus(fieldEmail)
		return root, textinput.Blink
	case "left":
		if l.registering && l.focus == fieldRole {
			l.roleIdx = (l.roleIdx - 1 + len(registerRoles)) % len(registerRoles)
			return root, nil
		}
	case "right":
		if l.registering && l.focus == fieldRole {
			l.roleIdx = (l.roleIdx + 1) % len(registerRoles)
			return root, nil
		}
	case "enter":
		return root, l.submit()
	}

	return root, l.updateInputs(msg)
}

func (l *loginModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	l.email, cmd = l.email.Update(msg)
	cmds = append(cmds, cmd)
	l.password, cmd = l.password.Update(msg)
	cmds = append(cmds, cmd)
	if l.registering {
		l.confirm, cmd = l.confirm.Update(msg)
		cmds = append(cmds, cmd)
		l.firstName, cmd = l.firstName.Update(msg)
		cmds = append(cmds, cmd)
		l.lastName, cmd = l.lastName.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (l *loginModel) setFocus(idx int) {
	l.focus = idx
	inputs := []*textinput.Model{&l.email, &l.password, &l.confirm, &l.firstName, &l.lastName}
	for i, in := range inputs {
		if i == idx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// submit validates locally, then runs the auth call off the UI goroutine.
func (l *loginModel) submit() tea.Cmd {
	tr := l.app.I18n
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		return nil
	}

	if l.registering {
		if len(password) < 8 {
			l.localErr = tr.T("auth.passwordTooShort")
			return nil
		}
		if password != l.confirm.Value() {
			l.localErr = tr.T("auth.passwordMismatch")
			return nil
		}
		first := strings.TrimSpace(l.firstName.Value())
		last := strings.TrimSpace(l.lastName.Value())
		role := registerRoles[l.roleIdx]
		l.localErr = ""
		l.submitting = true
		application := l.app
		return func() tea.Msg {
			err := application.SignUp(context.Background(), email, password, first, last, role)
			return authDoneMsg{err: err}
		}
	}

	l.localErr = ""
	l.submitting = true
	application := l.app
	return func() tea.Msg {
		err := application.SignIn(context.Background(), email, password)
		return authDoneMsg{err: err}
	}
}

func (l *loginModel) view(width, height int) string {
	t := l.theme
	tr := l.app.I18n

	title := tr.T("auth.login")
	hint := tr.T("auth.noAccount") + " (ctrl+r)"
	if l.registering {
		title = tr.T("auth.register")
		hint = tr.T("auth.hasAccount") + " (ctrl+r)"
	}

	var b strings.Builder
	b.WriteString(t.TopBarTitle.Render(tr.T("app.name")))
	b.WriteString("\n\n")
	b.WriteString(t.PaneTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(l.email.View() + "\n")
	b.WriteString(l.password.View() + "\n")
	if l.registering {
		b.WriteString(l.confirm.View() + "\n")
		b.WriteString(l.firstName.View() + "\n")
		b.WriteString(l.lastName.View() + "\n")
		roleLine := tr.T("auth.role") + ": "
		badge := t.RoleBadge(registerRoles[l.roleIdx])
		label := "  " + tr.T("role."+string(registerRoles[l.roleIdx])) + "  "
		if l.focus == fieldRole {
			roleLine += t.Selected.Render("‹") + badge.Render(label) + t.Selected.Render("›")
		} else {
			roleLine += badge.Render(label)
		}
		b.WriteString(roleLine + "\n")
	}

	if state := l.app.Session.State(); state.Error != "" {
		b.WriteString("\n" + t.ErrorLine.Render(state.Error) + "\n")
	} else if l.localErr != "" {
		b.WriteString("\n" + t.ErrorLine.Render(l.localErr) + "\n")
	}
	if l.submitting {
		b.WriteString("\n" + t.StatusLine.Render(tr.T("app.loading")) + "\n")
	}

	b.WriteString("\n" + t.Footer.Render(hint))
	b.WriteString("\n" + t.Footer.Render("enter: "+title+"  ·  tab: next  ·  ctrl+c: quit"))

	form := t.Pane.Render(b.String())
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
