package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"opinion-chat/internal/app"
)

type screen int

const (
	screenResolving screen = iota
	screenLogin
	screenChats
	screenChat
)

// Messages flowing back from application commands. State itself lives in the
// app containers; these only tell the model to re-read its snapshots.
type (
	resolvedMsg   struct{}
	authDoneMsg   struct{ err error }
	refreshMsg    struct{}
	chatOpenedMsg struct{}
	loggedOutMsg  struct{}
	tickMsg       time.Time
)

// RootModel routes between the login form, the chat list, and the chat
// window, and owns the refresh tick that folds realtime deltas into view.
type RootModel struct {
	app   *app.Application
	theme Theme

	width  int
	height int

	scr      screen
	keys     keyMap
	login    loginModel
	chats    chatsModel
	chat     chatModel
	showHelp bool
}

func NewRootModel(application *app.Application) *RootModel {
	t := NewTheme()
	return &RootModel{
		app:   application,
		theme: t,
		keys:  defaultKeyMap(),
		scr:   screenResolving,
		login: newLoginModel(t, application),
		chats: newChatsModel(t, application),
		chat:  newChatModel(t, application),
	}
}

func (m *RootModel) Init() tea.Cmd {
	return tea.Batch(m.resolveCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(ts time.Time) tea.Msg { return tickMsg(ts) })
}

func (m *RootModel) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		m.app.Start(context.Background())
		return resolvedMsg{}
	}
}

func (m *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat.setSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		// Realtime events land in the app state from the socket goroutine;
		// the tick re-reads the snapshots so they become visible.
		if m.scr == screenChat {
			m.chat.refresh()
		}
		return m, tick()

	case resolvedMsg:
		if m.app.Session.State().IsAuthenticated {
			m.scr = screenChats
			return m, m.chats.loadCmd()
		}
		m.scr = screenLogin
		return m, m.login.focusCmd()

	case authDoneMsg:
		if msg.err != nil {
			// The session error string is already in state; the form stays.
			m.login.submitting = false
			return m, nil
		}
		m.scr = screenChats
		return m, m.chats.loadCmd()

	case chatOpenedMsg:
		if m.app.Chat.Snapshot().Current != nil {
			m.scr = screenChat
			m.chat.enter()
		}
		return m, nil

	case loggedOutMsg:
		m.scr = screenLogin
		m.login = newLoginModel(m.theme, m.app)
		return m, m.login.focusCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = true
			return m, nil
		}
	}

	switch m.scr {
	case screenLogin:
		return m.login.update(m, msg)
	case screenChats:
		return m.chats.update(m, msg)
	case screenChat:
		return m.chat.update(m, msg)
	default:
		return m, nil
	}
}

func (m *RootModel) View() string {
	if m.showHelp {
		return renderHelp(m.theme, m.app.I18n, m.width)
	}
	switch m.scr {
	case screenLogin:
		return m.login.view(m.width, m.height)
	case screenChats:
		return m.chats.view(m.width, m.height)
	case screenChat:
		return m.chat.view()
	default:
		return m.theme.StatusLine.Render(m.app.I18n.T("app.loading"))
	}
}

// signOutCmd runs the client-side logout and reports back.
func (m *RootModel) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		m.app.SignOut()
		return loggedOutMsg{}
	}
}
