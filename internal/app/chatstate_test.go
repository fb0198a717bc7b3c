package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type fakeChatAPI struct {
	chats        []Chat
	chat         Chat
	messages     []Message
	participants []ChatParticipant
	sent         Message
	poll         Poll

	failList   bool
	failGet    bool
	failCreate bool
	failJoin   bool
	failSend   bool
	failPoll   bool

	listCalls int
	sendCalls int
	pollCalls int
}

var errRemote = errors.New("remote failure")

func (f *fakeChatAPI) ListChats(ctx context.Context) ([]Chat, error) {
	f.listCalls++
	if f.failList {
		return nil, errRemote
	}
	return f.chats, nil
}

func (f *fakeChatAPI) GetChat(ctx context.Context, chatID string) (Chat, error) {
	if f.failGet {
		return Chat{}, errRemote
	}
	return f.chat, nil
}

func (f *fakeChatAPI) CreateChat(ctx context.Context, name, description string) (Chat, error) {
	if f.failCreate {
		return Chat{}, errRemote
	}
	return Chat{ID: "new", Name: name, Description: description}, nil
}

func (f *fakeChatAPI) JoinChat(ctx context.Context, chatID string) error {
	if f.failJoin {
		return errRemote
	}
	return nil
}

func (f *fakeChatAPI) LeaveChat(ctx context.Context, chatID string) error { return nil }

func (f *fakeChatAPI) ChatMessages(ctx context.Context, chatID string) ([]Message, error) {
	return f.messages, nil
}

func (f *fakeChatAPI) ChatParticipants(ctx context.Context, chatID string) ([]ChatParticipant, error) {
	return f.participants, nil
}

func (f *fakeChatAPI) SendMessage(ctx context.Context, chatID, content, fileURL, fileType, fileName string) (Message, error) {
	f.sendCalls++
	if f.failSend {
		return Message{}, errRemote
	}
	f.sent = Message{ID: "m-sent", ChatID: chatID, Content: content, FileURL: fileURL, FileType: fileType, FileName: fileName}
	return f.sent, nil
}

func (f *fakeChatAPI) CreatePoll(ctx context.Context, chatID, question string, options []string, pollType PollType, expiresAt *time.Time) (Poll, error) {
	f.pollCalls++
	if f.failPoll {
		return Poll{}, errRemote
	}
	f.poll = Poll{ID: "p1", ChatID: chatID, Question: question, PollType: pollType}
	return f.poll, nil
}

func (f *fakeChatAPI) VotePoll(ctx context.Context, pollID, optionID string) (Poll, error) {
	if f.failPoll {
		return Poll{}, errRemote
	}
	return Poll{ID: pollID, Options: []PollOption{{ID: optionID, Votes: 3}}}, nil
}

func (f *fakeChatAPI) ChatLog(ctx context.Context, chatID string) ([]byte, error) {
	return []byte("log:" + chatID), nil
}

type fakeFileAPI struct {
	failUpload bool
	uploaded   string
}

func (f *fakeFileAPI) UploadFile(ctx context.Context, chatID, fileName string, content io.Reader) (string, error) {
	if f.failUpload {
		return "", errRemote
	}
	f.uploaded = fileName
	return "https://files/" + fileName, nil
}

type fakeChannel struct {
	connected bool
	joined    []string
	handlers  RoomHandlers
	sub       *fakeSubscription
}

type fakeSubscription struct {
	chatID string
	closed bool
}

func (s *fakeSubscription) ChatID() string { return s.chatID }

func (s *fakeSubscription) Close() error {
	s.closed = true
	return nil
}

func (c *fakeChannel) Connected() bool { return c.connected }

func (c *fakeChannel) Subscribe(chatID string, h RoomHandlers) (RoomSubscription, error) {
	c.joined = append(c.joined, chatID)
	c.handlers = h
	c.sub = &fakeSubscription{chatID: chatID}
	return c.sub, nil
}

func newTestChatState(api *fakeChatAPI, files *fakeFileAPI, channel *fakeChannel) *ChatState {
	state := NewChatState(api, files, testLogger())
	if channel != nil {
		state.AttachChannel(channel)
	}
	return state
}

func TestOpenChat_LoadsSnapshotAndSubscribes(t *testing.T) {
	api := &fakeChatAPI{
		chat:         Chat{ID: "c1", Name: "general"},
		messages:     []Message{{ID: "m1", ChatID: "c1"}},
		participants: []ChatParticipant{{ID: "p1", ChatID: "c1"}},
	}
	channel := &fakeChannel{connected: true}
	state := newTestChatState(api, &fakeFileAPI{}, channel)

	state.OpenChat(context.Background(), "c1")

	snap := state.Snapshot()
	if snap.Loading || snap.Error != "" {
		t.Fatalf("unexpected state: loading=%v error=%q", snap.Loading, snap.Error)
	}
	if snap.Current == nil || snap.Current.ID != "c1" {
		t.Fatalf("expected current chat c1, got %+v", snap.Current)
	}
	if len(snap.Messages) != 1 || len(snap.Participants) != 1 {
		t.Fatalf("expected history loaded, got %d messages %d participants", len(snap.Messages), len(snap.Participants))
	}
	if len(channel.joined) != 1 || channel.joined[0] != "c1" {
		t.Fatalf("expected one room subscription for c1, got %v", channel.joined)
	}
}

func TestOpenChat_FetchFailureSetsGenericError(t *testing.T) {
	api := &fakeChatAPI{failGet: true}
	channel := &fakeChannel{connected: true}
	state := newTestChatState(api, &fakeFileAPI{}, channel)

	state.OpenChat(context.Background(), "c1")

	snap := state.Snapshot()
	if snap.Error != errFetchChat {
		t.Fatalf("expected %q, got %q", errFetchChat, snap.Error)
	}
	if snap.Loading {
		t.Fatal("loading must clear on failure")
	}
	if len(channel.joined) != 0 {
		t.Fatal("must not subscribe when the snapshot fetch failed")
	}
}

func TestOpenChat_NotConnectedSkipsSubscription(t *testing.T) {
	api := &fakeChatAPI{chat: Chat{ID: "c1"}}
	channel := &fakeChannel{connected: false}
	state := newTestChatState(api, &fakeFileAPI{}, channel)

	state.OpenChat(context.Background(), "c1")

	if len(channel.joined) != 0 {
		t.Fatalf("expected no subscription while disconnected, got %v", channel.joined)
	}
	if snap := state.Snapshot(); snap.Current == nil {
		t.Fatal("chat snapshot must still load without the channel")
	}
}

func TestSendMessage_NoActiveChat(t *testing.T) {
	api := &fakeChatAPI{}
	state := newTestChatState(api, &fakeFileAPI{}, nil)

	state.SendMessage(context.Background(), "hello", "", "", "")

	snap := state.Snapshot()
	if len(snap.Messages) != 0 {
		t.Fatalf("messages must stay unchanged, got %d", len(snap.Messages))
	}
	if snap.Error != errNoActiveChat {
		t.Fatalf("expected %q, got %q", errNoActiveChat, snap.Error)
	}
	if api.sendCalls != 0 {
		t.Fatalf("expected no network call, got %d", api.sendCalls)
	}
}

func TestSendMessage_OptimisticAppend(t *testing.T) {
	api := &fakeChatAPI{chat: Chat{ID: "c1"}}
	channel := &fakeChannel{connected: true}
	state := newTestChatState(api, &fakeFileAPI{}, channel)
	state.OpenChat(context.Background(), "c1")

	state.SendMessage(context.Background(), "hello", "", "", "")

	snap := state.Snapshot()
	if len(snap.Messages) != 1 || snap.Messages[0].Content != "hello" {
		t.Fatalf("expected optimistic append, got %+v", snap.Messages)
	}

	// A realtime echo of the same message appends again; the aggregate does
	// not deduplicate.
	channel.handlers.OnMessage(api.sent)
	if got := len(state.Snapshot().Messages); got != 2 {
		t.Fatalf("expected echo appended verbatim, got %d messages", got)
	}
}

func TestSendMessage_FailureSetsGenericError(t *testing.T) {
	api := &fakeChatAPI{chat: Chat{ID: "c1"}, failSend: true}
	state := newTestChatState(api, &fakeFileAPI{}, &fakeChannel{connected: true})
	state.OpenChat(context.Background(), "c1")

	state.SendMessage(context.Background(), "hello", "", "", "")

	snap := state.Snapshot()
	if snap.Error != errSendMessage {
		t.Fatalf("expected %q, got %q", errSendMessage, snap.Error)
	}
	if len(snap.Messages) != 0 {
		t.Fatal("failed send must not append")
	}
}

func TestParticipantUpdate_ReplacesWholesale(t *testing.T) {
	api := &fakeChatAPI{
		chat:         Chat{ID: "c1"},
		participants: []ChatParticipant{{ID: "p1", UserID: "u1"}, {ID: "p2", UserID: "u2"}},
	}
	channel := &fakeChannel{connected: true}
	state := newTestChatState(api, &fakeFileAPI{}, channel)
	state.OpenChat(context.Background(), "c1")

	channel.handlers.OnParticipants([]ChatParticipant{{ID: "p2", UserID: "u2"}})

	snap := state.Snapshot()
	if len(snap.Participants) != 1 || snap.Participants[0].ID != "p2" {
		t.Fatalf("expected wholesale replacement, got %+v", snap.Participants)
	}
}

func TestCreateChat_ReturnsErrorToCaller(t *testing.T) {
	api := &fakeChatAPI{failCreate: true}
	state := newTestChatState(api, &fakeFileAPI{}, nil)

	if _, err := state.CreateChat(context.Background(), "general", ""); err == nil {
		t.Fatal("createChat must return the failure to the caller")
	}
	if got := state.Snapshot().Error; got != errCreateChat {
		t.Fatalf("expected %q, got %q", errCreateChat, got)
	}
}

func TestCreateChat_SuccessAppendsToList(t *testing.T) {
	state := newTestChatState(&fakeChatAPI{}, &fakeFileAPI{}, nil)

	chat, err := state.CreateChat(context.Background(), "general", "talk")
	if err != nil {
		t.Fatalf("createChat: %v", err)
	}
	snap := state.Snapshot()
	if len(snap.Chats) != 1 || snap.Chats[0].ID != chat.ID {
		t.Fatalf("expected new chat in list, got %+v", snap.Chats)
	}
}

func TestJoinChat_FailureIsSwallowed(t *testing.T) {
	api := &fakeChatAPI{failJoin: true}
	state := newTestChatState(api, &fakeFileAPI{}, nil)

	state.JoinChat(context.Background(), "c1")

	snap := state.Snapshot()
	if snap.Error != errJoinChat {
		t.Fatalf("expected %q, got %q", errJoinChat, snap.Error)
	}
	if api.listCalls != 0 {
		t.Fatal("failed join must not refresh the chat list")
	}
}

func TestJoinChat_SuccessRefreshesChatList(t *testing.T) {
	api := &fakeChatAPI{chats: []Chat{{ID: "c1"}, {ID: "c2"}}}
	state := newTestChatState(api, &fakeFileAPI{}, nil)

	state.JoinChat(context.Background(), "c1")

	if api.listCalls != 1 {
		t.Fatalf("expected implicit list refresh, got %d calls", api.listCalls)
	}
	if got := len(state.Snapshot().Chats); got != 2 {
		t.Fatalf("expected refreshed list, got %d chats", got)
	}
}

func TestCreatePoll_RequiresActiveChatAndSkipsLocalAppend(t *testing.T) {
	api := &fakeChatAPI{chat: Chat{ID: "c1"}}
	state := newTestChatState(api, &fakeFileAPI{}, &fakeChannel{connected: true})

	state.CreatePoll(context.Background(), "q?", []string{"a", "b"})
	if got := state.Snapshot().Error; got != errNoActiveChat {
		t.Fatalf("expected %q, got %q", errNoActiveChat, got)
	}
	if api.pollCalls != 0 {
		t.Fatal("precondition failure must not reach the network")
	}

	state.ClearError()
	state.OpenChat(context.Background(), "c1")
	state.CreatePoll(context.Background(), "q?", []string{"a", "b"})

	snap := state.Snapshot()
	if api.pollCalls != 1 {
		t.Fatalf("expected one poll call, got %d", api.pollCalls)
	}
	if len(snap.Messages) != 0 {
		t.Fatal("poll creation must rely on the realtime echo, not a local append")
	}
	if snap.Error != "" {
		t.Fatalf("unexpected error %q", snap.Error)
	}
}

func TestVotePoll_StoresServerTally(t *testing.T) {
	state := newTestChatState(&fakeChatAPI{}, &fakeFileAPI{}, nil)

	state.VotePoll(context.Background(), "p1", "o1")

	snap := state.Snapshot()
	if len(snap.Polls) != 1 || snap.Polls[0].Options[0].Votes != 3 {
		t.Fatalf("expected server tally stored, got %+v", snap.Polls)
	}
}

func TestUploadFile_SendsMessageWithFileReference(t *testing.T) {
	api := &fakeChatAPI{chat: Chat{ID: "c1"}}
	files := &fakeFileAPI{}
	state := newTestChatState(api, files, &fakeChannel{connected: true})
	state.OpenChat(context.Background(), "c1")

	state.UploadFile(context.Background(), "notes.pdf", "application/pdf", strings.NewReader("%PDF"))

	snap := state.Snapshot()
	if files.uploaded != "notes.pdf" {
		t.Fatalf("expected upload, got %q", files.uploaded)
	}
	if len(snap.Messages) != 1 || snap.Messages[0].FileURL != "https://files/notes.pdf" {
		t.Fatalf("expected message referencing the upload, got %+v", snap.Messages)
	}
}

func TestReset_ClosesRoomSubscription(t *testing.T) {
	api := &fakeChatAPI{chat: Chat{ID: "c1"}}
	channel := &fakeChannel{connected: true}
	state := newTestChatState(api, &fakeFileAPI{}, channel)
	state.OpenChat(context.Background(), "c1")

	state.Reset()

	if channel.sub == nil || !channel.sub.closed {
		t.Fatal("expected the room subscription closed on reset")
	}
	snap := state.Snapshot()
	if snap.Current != nil || len(snap.Messages) != 0 || len(snap.Chats) != 0 {
		t.Fatalf("expected empty aggregate after reset, got %+v", snap)
	}
}

func TestConnectionError_DoesNotTouchLoadedState(t *testing.T) {
	api := &fakeChatAPI{chat: Chat{ID: "c1"}, messages: []Message{{ID: "m1"}}}
	state := newTestChatState(api, &fakeFileAPI{}, &fakeChannel{connected: true})
	state.OpenChat(context.Background(), "c1")

	state.SetConnectionError(errConnection)

	snap := state.Snapshot()
	if snap.Error != errConnection {
		t.Fatalf("expected %q, got %q", errConnection, snap.Error)
	}
	if snap.Current == nil || len(snap.Messages) != 1 {
		t.Fatal("connection errors must not tear down chat state")
	}
}
