package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opinion-chat/internal/app"
)

const participantsWidth = 28

// chatModel is the chat window: message viewport, participant sidebar, and a
// composer that doubles as the slash-command line.
type chatModel struct {
	theme Theme
	app   *app.Application

	width  int
	height int

	vp       viewport.Model
	composer textarea.Model

	lastCount int
	status    string
}

func newChatModel(t Theme, application *app.Application) chatModel {
	ta := textarea.New()
	ta.Placeholder = application.I18n.T("chat.typeMessage")
	ta.CharLimit = 4000
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	vp := viewport.New(0, 0)
	return chatModel{theme: t, app: application, vp: vp, composer: ta}
}

func (c *chatModel) setSize(width, height int) {
	c.width = width
	c.height = height
	vw := width - participantsWidth - 6
	if vw < 20 {
		vw = 20
	}
	vh := height - c.composer.Height() - 7
	if vh < 4 {
		vh = 4
	}
	c.vp.Width = vw
	c.vp.Height = vh
	c.composer.SetWidth(width - 4)
}

// enter resets the window for a freshly opened chat.
func (c *chatModel) enter() {
	c.composer.Reset()
	c.composer.Focus()
	c.status = ""
	c.lastCount = -1
	c.refresh()
}

// refresh re-renders the viewport from the current snapshot. It follows the
// tail only when new messages arrived, so scrollback survives the tick.
func (c *chatModel) refresh() {
	snap := c.app.Chat.Snapshot()
	c.vp.SetContent(renderMessages(c.theme, c.app.I18n, snap.Messages))
	if len(snap.Messages) != c.lastCount {
		c.lastCount = len(snap.Messages)
		c.vp.GotoBottom()
	}
}

func (c *chatModel) update(root *RootModel, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		c.refresh()
		return root, nil
	case statusMsg:
		c.status = string(msg)
		c.refresh()
		return root, nil
	case leftChatMsg:
		root.scr = screenChats
		return root, root.chats.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			root.scr = screenChats
			return root, root.chats.loadCmd()
		case "enter":
			return c.submit(root)
		case "pgup":
			c.vp.HalfViewUp()
			return root, nil
		case "pgdown":
			c.vp.HalfViewDown()
			return root, nil
		}
	}

	// Keys go to the composer; the viewport only scrolls via pgup/pgdown
	// above, so typing never fights the scrollback.
	var cmd tea.Cmd
	c.composer, cmd = c.composer.Update(msg)
	return root, cmd
}

type (
	statusMsg   string
	leftChatMsg struct{}
)

func (c *chatModel) submit(root *RootModel) (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(c.composer.Value())
	if text == "" {
		return root, nil
	}
	c.composer.Reset()
	c.status = ""
	c.app.Chat.ClearError()

	if strings.HasPrefix(text, "/") {
		return c.runCommand(root, text)
	}

	application := c.app
	return root, func() tea.Msg {
		application.Chat.SendMessage(context.Background(), text, "", "", "")
		return refreshMsg{}
	}
}

// runCommand dispatches a slash command typed into the composer.
func (c *chatModel) runCommand(root *RootModel, text string) (tea.Model, tea.Cmd) {
	tr := c.app.I18n
	application := c.app
	fields := strings.Fields(text)
	name := fields[0]

	switch name {
	case "/quit":
		return root, tea.Quit

	case "/back":
		root.scr = screenChats
		return root, root.chats.loadCmd()

	case "/help":
		root.showHelp = true
		return root, nil

	case "/leave":
		snap := application.Chat.Snapshot()
		if snap.Current == nil {
			c.status = tr.T("app.error")
			return root, nil
		}
		chatID := snap.Current.ID
		return root, func() tea.Msg {
			application.Chat.LeaveChat(context.Background(), chatID)
			application.Chat.Reset()
			return leftChatMsg{}
		}

	case "/lang":
		if len(fields) != 2 {
			c.status = "/lang no|en"
			return root, nil
		}
		application.SetLanguage(app.Language(fields[1]))
		c.composer.Placeholder = application.I18n.T("chat.typeMessage")
		c.refresh()
		return root, nil

	case "/poll":
		rest := strings.TrimSpace(strings.TrimPrefix(text, "/poll"))
		parts := strings.Split(rest, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 3 || parts[0] == "" {
			c.status = "/poll " + tr.T("poll.question") + " | A | B"
			return root, nil
		}
		question := parts[0]
		options := parts[1:]
		for _, opt := range options {
			if opt == "" {
				c.status = tr.T("poll.emptyOptions")
				return root, nil
			}
		}
		return root, func() tea.Msg {
			application.Chat.CreatePoll(context.Background(), question, options)
			return refreshMsg{}
		}

	case "/vote":
		if len(fields) != 3 {
			c.status = "/vote <pollID> <optionID>"
			return root, nil
		}
		pollID, optionID := fields[1], fields[2]
		return root, func() tea.Msg {
			application.Chat.VotePoll(context.Background(), pollID, optionID)
			return statusMsg(tr.T("poll.vote") + ": OK")
		}

	case "/upload":
		if len(fields) != 2 {
			c.status = "/upload <path>"
			return root, nil
		}
		path := fields[1]
		return root, func() tea.Msg {
			f, err := os.Open(path)
			if err != nil {
				return statusMsg(tr.T("file.uploadFailed"))
			}
			defer f.Close()
			fileName := filepath.Base(path)
			fileType := mime.TypeByExtension(filepath.Ext(path))
			application.Chat.UploadFile(context.Background(), fileName, fileType, f)
			return refreshMsg{}
		}

	case "/log":
		return root, func() tea.Msg {
			data, err := application.Chat.DownloadLog(context.Background())
			if err != nil {
				return statusMsg(tr.T("app.error"))
			}
			out := fmt.Sprintf("chat-log-%s.txt", time.Now().Format("20060102-150405"))
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return statusMsg(tr.T("app.error"))
			}
			return statusMsg(tr.T("chat.downloadLog") + ": " + out)
		}

	default:
		c.status = tr.T("app.error") + ": " + name
		return root, nil
	}
}

func (c *chatModel) view() string {
	t := c.theme
	tr := c.app.I18n
	snap := c.app.Chat.Snapshot()

	title := tr.T("chat.title")
	if snap.Current != nil {
		title = snap.Current.Name
	}
	conn := t.Muted.Render("·")
	if c.app.Realtime.Connected() {
		conn = t.Selected.Render("●")
	}
	top := t.TopBarTitle.Render(title) + " " + conn

	messages := t.Pane.Width(c.vp.Width + 2).Render(c.vp.View())
	side := t.Pane.Width(participantsWidth).Render(
		renderParticipants(t, tr, snap.Participants))
	body := lipgloss.JoinHorizontal(lipgloss.Top, messages, side)

	var notice string
	if snap.Error != "" {
		notice = t.ErrorLine.Render(snap.Error)
	} else if c.status != "" {
		notice = t.StatusLine.Render(c.status)
	}

	footer := t.Footer.Render(
		"enter: " + tr.T("app.send") + "  ·  esc: " + tr.T("app.back") +
			"  ·  /help  ·  /poll  ·  /vote  ·  /upload  ·  /log  ·  /leave")

	parts := []string{top, body}
	if notice != "" {
		parts = append(parts, notice)
	}
	inputWidth := c.width - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	parts = append(parts, t.InputBoxF.Width(inputWidth).Render(c.composer.View()), footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
