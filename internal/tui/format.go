package tui

import (
	"fmt"
	"strings"

	"opinion-chat/internal/app"
)

// renderMessage lays out one chat message as a viewport line block:
// timestamp, sender with role badge, content, and attachment/poll markers.
func renderMessage(t Theme, tr *app.Translator, m app.Message) string {
	var b strings.Builder

	b.WriteString(t.Timestamp.Render(m.CreatedAt.Local().Format("15:04")))
	b.WriteString(" ")
	b.WriteString(t.SenderName.Render(m.UserName))
	b.WriteString(" ")
	b.WriteString(t.RoleBadge(m.UserRole).Render("[" + tr.T("role."+string(m.UserRole)) + "]"))
	b.WriteString("\n")

	if m.Content != "" {
		b.WriteString("  " + m.Content + "\n")
	}
	if m.FileURL != "" {
		name := m.FileName
		if name == "" {
			name = m.FileURL
		}
		b.WriteString("  " + t.FileMark.Render(fmt.Sprintf("⇩ %s: %s", tr.T("file.download"), name)) + "\n")
	}
	if m.IsPoll && m.PollID != "" {
		b.WriteString("  " + t.PollMark.Render(fmt.Sprintf("▣ %s (/vote %s <option>)", tr.T("poll.vote"), m.PollID)) + "\n")
	}
	return b.String()
}

func renderMessages(t Theme, tr *app.Translator, messages []app.Message) string {
	if len(messages) == 0 {
		return t.Muted.Render(tr.T("chat.noMessages"))
	}
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, renderMessage(t, tr, m))
	}
	return strings.Join(parts, "\n")
}

// renderParticipants lays out the sidebar: one line per active participant.
func renderParticipants(t Theme, tr *app.Translator, participants []app.ChatParticipant) string {
	var b strings.Builder
	b.WriteString(t.PaneTitle.Render(tr.T("chat.participants")))
	b.WriteString("\n")
	for _, p := range participants {
		marker := "·"
		if p.IsActive {
			marker = "●"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			marker,
			p.FullName(),
			t.RoleBadge(p.Role).Render("["+tr.T("role."+string(p.Role))+"]"),
		))
	}
	return b.String()
}

// renderPoll shows a poll with its server-side tallies.
func renderPoll(t Theme, tr *app.Translator, p app.Poll) string {
	var b strings.Builder
	b.WriteString(t.PollMark.Render("▣ " + p.Question))
	if p.IsClosed {
		b.WriteString(" " + t.Muted.Render("("+tr.T("poll.closed")+")"))
	}
	b.WriteString("\n")
	for _, opt := range p.Options {
		b.WriteString(fmt.Sprintf("  %s (%d %s)\n", opt.Text, opt.Votes, tr.T("poll.votes")))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
