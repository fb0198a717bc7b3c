package tui

import (
	"strings"
	"testing"
	"time"

	"opinion-chat/internal/app"
)

func testMessage() app.Message {
	return app.Message{
		ID:        "m1",
		ChatID:    "room-1",
		UserID:    "u1",
		UserName:  "Kari Nordmann",
		UserRole:  app.RoleModerator,
		Content:   "hei alle sammen",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestRenderMessage_BasicFields(t *testing.T) {
	out := renderMessage(NewTheme(), app.NewTranslator(app.LangEnglish), testMessage())
	if !strings.Contains(out, "Kari Nordmann") {
		t.Fatalf("missing sender: %q", out)
	}
	if !strings.Contains(out, "hei alle sammen") {
		t.Fatalf("missing content: %q", out)
	}
	if !strings.Contains(out, "Moderator") {
		t.Fatalf("missing role badge: %q", out)
	}
}

func TestRenderMessage_FileAttachment(t *testing.T) {
	msg := testMessage()
	msg.Content = ""
	msg.FileURL = "/uploads/report.pdf"
	msg.FileName = "report.pdf"

	out := renderMessage(NewTheme(), app.NewTranslator(app.LangEnglish), msg)
	if !strings.Contains(out, "report.pdf") {
		t.Fatalf("missing file name: %q", out)
	}
	if !strings.Contains(out, "Download") {
		t.Fatalf("missing download label: %q", out)
	}
}

func TestRenderMessage_PollMarker(t *testing.T) {
	msg := testMessage()
	msg.IsPoll = true
	msg.PollID = "poll-7"

	out := renderMessage(NewTheme(), app.NewTranslator(app.LangNorwegian), msg)
	if !strings.Contains(out, "poll-7") {
		t.Fatalf("missing poll id: %q", out)
	}
	if !strings.Contains(out, "/vote") {
		t.Fatalf("missing vote hint: %q", out)
	}
}

func TestRenderMessages_EmptyUsesPlaceholder(t *testing.T) {
	out := renderMessages(NewTheme(), app.NewTranslator(app.LangEnglish), nil)
	if !strings.Contains(out, "No messages yet") {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

func TestRenderParticipants_ActiveMarker(t *testing.T) {
	participants := []app.ChatParticipant{
		{FirstName: "Ola", LastName: "Hansen", Role: app.RoleAdmin, IsActive: true},
		{FirstName: "Per", LastName: "Olsen", Role: app.RoleObserver, IsActive: false},
	}
	out := renderParticipants(NewTheme(), app.NewTranslator(app.LangEnglish), participants)
	if !strings.Contains(out, "● Ola Hansen") {
		t.Fatalf("missing active marker: %q", out)
	}
	if !strings.Contains(out, "· Per Olsen") {
		t.Fatalf("missing inactive marker: %q", out)
	}
}

func TestRenderPoll_TalliesAndClosed(t *testing.T) {
	poll := app.Poll{
		ID:       "p1",
		Question: "Lunsj?",
		IsClosed: true,
		Options: []app.PollOption{
			{ID: "o1", Text: "Pizza", Votes: 3},
			{ID: "o2", Text: "Sushi", Votes: 1},
		},
	}
	out := renderPoll(NewTheme(), app.NewTranslator(app.LangEnglish), poll)
	if !strings.Contains(out, "Lunsj?") {
		t.Fatalf("missing question: %q", out)
	}
	if !strings.Contains(out, "Pizza (3 Votes)") {
		t.Fatalf("missing tally line: %q", out)
	}
	if !strings.Contains(out, "Poll closed") {
		t.Fatalf("missing closed marker: %q", out)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"somewhat longer text", 8, "somewha…"},
		{"x", 0, "x"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
