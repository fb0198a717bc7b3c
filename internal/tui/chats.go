package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"opinion-chat/internal/app"
)

// chatsModel is the chat list screen: pick a chat, join one, or create one.
type chatsModel struct {
	theme Theme
	app   *app.Application

	cursor   int
	busy     bool
	creating bool
	name     textinput.Model
	desc     textinput.Model
	nameFoc  bool
}

func newChatsModel(t Theme, application *app.Application) chatsModel {
	tr := application.I18n
	name := textinput.New()
	name.Placeholder = tr.T("chat.chatName")
	name.CharLimit = 120
	name.Width = 40
	desc := textinput.New()
	desc.Placeholder = tr.T("chat.chatDescription")
	desc.CharLimit = 240
	desc.Width = 40
	return chatsModel{theme: t, app: application, name: name, desc: desc}
}

func (c *chatsModel) loadCmd() tea.Cmd {
	c.busy = true
	application := c.app
	return func() tea.Msg {
		application.Chat.LoadChats(context.Background())
		return refreshMsg{}
	}
}

func (c *chatsModel) update(root *RootModel, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		c.busy = false
		c.clamp()
		return root, nil
	case chatCreatedMsg:
		c.busy = false
		c.creating = false
		c.clamp()
		return root, nil
	case tea.KeyMsg:
		if c.creating {
			return c.updateCreate(root, msg)
		}
		return c.updateList(root, msg)
	}
	return root, nil
}

func (c *chatsModel) updateList(root *RootModel, key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if c.busy {
		return root, nil
	}
	snap := c.app.Chat.Snapshot()

	switch key.String() {
	case "up":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down":
		if c.cursor < len(snap.Chats)-1 {
			c.cursor++
		}
	case "enter":
		if c.cursor < len(snap.Chats) {
			return root, c.openCmd(snap.Chats[c.cursor].ID)
		}
	case "j":
		if c.cursor < len(snap.Chats) {
			return root, c.joinCmd(snap.Chats[c.cursor].ID)
		}
	case "n":
		c.creating = true
		c.nameFoc = true
		c.name.SetValue("")
		c.desc.SetValue("")
		c.name.Focus()
		c.desc.Blur()
		return root, textinput.Blink
	case "r":
		return root, c.loadCmd()
	case "ctrl+l":
		return root, root.signOutCmd()
	case "esc":
		c.app.Chat.ClearError()
	}
	return root, nil
}

func (c *chatsModel) updateCreate(root *RootModel, key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		c.creating = false
		c.app.Chat.ClearError()
		return root, nil
	case "tab", "shift+tab", "up", "down":
		c.nameFoc = !c.nameFoc
		if c.nameFoc {
			c.name.Focus()
			c.desc.Blur()
		} else {
			c.desc.Focus()
			c.name.Blur()
		}
		return root, textinput.Blink
	case "enter":
		name := strings.TrimSpace(c.name.Value())
		if name == "" {
			return root, nil
		}
		desc := strings.TrimSpace(c.desc.Value())
		c.busy = true
		application := c.app
		return root, func() tea.Msg {
			// The error also lands in chat state; the dialog watches it.
			_, err := application.Chat.CreateChat(context.Background(), name, desc)
			if err == nil {
				return chatCreatedMsg{}
			}
			return refreshMsg{}
		}
	case "ctrl+c":
		return root, tea.Quit
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	c.name, cmd = c.name.Update(key)
	cmds = append(cmds, cmd)
	c.desc, cmd = c.desc.Update(key)
	cmds = append(cmds, cmd)
	return root, tea.Batch(cmds...)
}

type chatCreatedMsg struct{}

func (c *chatsModel) openCmd(chatID string) tea.Cmd {
	c.busy = true
	application := c.app
	return func() tea.Msg {
		application.Chat.OpenChat(context.Background(), chatID)
		return chatOpenedMsg{}
	}
}

func (c *chatsModel) joinCmd(chatID string) tea.Cmd {
	c.busy = true
	application := c.app
	return func() tea.Msg {
		application.Chat.JoinChat(context.Background(), chatID)
		return refreshMsg{}
	}
}

func (c *chatsModel) clamp() {
	n := len(c.app.Chat.Snapshot().Chats)
	if n == 0 {
		c.cursor = 0
	} else if c.cursor >= n {
		c.cursor = n - 1
	}
}

func (c *chatsModel) view(width, height int) string {
	t := c.theme
	tr := c.app.I18n
	snap := c.app.Chat.Snapshot()
	state := c.app.Session.State()

	var b strings.Builder
	user := ""
	if state.User != nil {
		user = state.User.FirstName + " " + state.User.LastName + " " +
			t.RoleBadge(state.User.Role).Render("["+tr.T("role."+string(state.User.Role))+"]")
	}
	b.WriteString(t.TopBarTitle.Render(tr.T("app.name")) + "  " + t.TopBarMeta.Render(user))
	b.WriteString("\n\n")

	if c.creating {
		b.WriteString(t.PaneTitle.Render(tr.T("chat.createChat")) + "\n\n")
		b.WriteString(c.name.View() + "\n")
		b.WriteString(c.desc.View() + "\n")
		if snap.Error != "" {
			b.WriteString("\n" + t.ErrorLine.Render(snap.Error) + "\n")
		}
		b.WriteString("\n" + t.Footer.Render("enter: "+tr.T("app.save")+"  ·  esc: "+tr.T("app.cancel")))
		return b.String()
	}

	b.WriteString(t.PaneTitle.Render(tr.T("chat.title")) + "\n\n")
	if len(snap.Chats) == 0 {
		b.WriteString(t.Muted.Render(tr.T("chat.noChats")) + "\n")
	}
	for i, chat := range snap.Chats {
		line := chat.Name
		if chat.Description != "" {
			line += "  " + t.Muted.Render(truncate(chat.Description, 48))
		}
		if i == c.cursor {
			b.WriteString(t.Selected.Render("› "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if snap.Error != "" {
		b.WriteString("\n" + t.ErrorLine.Render(snap.Error) + "\n")
	}
	if c.busy || snap.Loading {
		b.WriteString("\n" + t.StatusLine.Render(tr.T("app.loading")) + "\n")
	}

	b.WriteString("\n" + t.Footer.Render(fmt.Sprintf(
		"enter: %s  ·  j: %s  ·  n: %s  ·  r: %s  ·  ctrl+l: %s  ·  f1: %s",
		tr.T("chat.title"), tr.T("chat.join"), tr.T("chat.new"), tr.T("app.retry"),
		tr.T("auth.logout"), tr.T("help.title"),
	)))
	return b.String()
}
