package app

import (
	"context"
	"io"
	"sync"
	"time"
)

// Generic user-facing error strings for the chat aggregate.
const (
	errNoActiveChat = "No active chat"
	errFetchChats   = "Failed to fetch chats"
	errFetchChat    = "Failed to fetch chat"
	errCreateChat   = "Failed to create chat"
	errJoinChat     = "Failed to join chat"
	errLeaveChat    = "Failed to leave chat"
	errSendMessage  = "Failed to send message"
	errCreatePoll   = "Failed to create poll"
	errVotePoll     = "Failed to vote on poll"
	errUploadFile   = "Failed to upload file"
)

// ChatAPI is the slice of the remote access layer the chat aggregate needs.
type ChatAPI interface {
	ListChats(ctx context.Context) ([]Chat, error)
	GetChat(ctx context.Context, chatID string) (Chat, error)
	CreateChat(ctx context.Context, name, description string) (Chat, error)
	JoinChat(ctx context.Context, chatID string) error
	LeaveChat(ctx context.Context, chatID string) error
	ChatMessages(ctx context.Context, chatID string) ([]Message, error)
	ChatParticipants(ctx context.Context, chatID string) ([]ChatParticipant, error)
	SendMessage(ctx context.Context, chatID, content, fileURL, fileType, fileName string) (Message, error)
	CreatePoll(ctx context.Context, chatID, question string, options []string, pollType PollType, expiresAt *time.Time) (Poll, error)
	VotePoll(ctx context.Context, pollID, optionID string) (Poll, error)
	ChatLog(ctx context.Context, chatID string) ([]byte, error)
}

// FileAPI uploads attachments ahead of the message that references them.
type FileAPI interface {
	UploadFile(ctx context.Context, chatID, fileName string, content io.Reader) (string, error)
}

// RoomChannel is the slice of the realtime channel manager the chat
// aggregate drives: one room subscription, re-pointed on every chat switch.
type RoomChannel interface {
	Connected() bool
	Subscribe(chatID string, h RoomHandlers) (RoomSubscription, error)
}

// ChatSnapshot is a point-in-time copy of the aggregate.
type ChatSnapshot struct {
	Chats        []Chat
	Current      *Chat
	Messages     []Message
	Participants []ChatParticipant
	Polls        []Poll
	Loading      bool
	Error        string
}

// ChatState merges REST-fetched snapshots, realtime deltas, and optimistic
// local writes into the one view the UI observes.
type ChatState struct {
	api     ChatAPI
	files   FileAPI
	channel RoomChannel
	logger  *Logger

	mu           sync.Mutex
	chats        []Chat
	current      *Chat
	messages     []Message
	participants []ChatParticipant
	polls        []Poll
	loading      bool
	err          string
	sub          RoomSubscription
}

func NewChatState(api ChatAPI, files FileAPI, logger *Logger) *ChatState {
	return &ChatState{api: api, files: files, logger: logger}
}

// AttachChannel wires the realtime channel in after construction; the
// channel's error handler points back at this state, so the two are built
// in two steps.
func (s *ChatState) AttachChannel(channel RoomChannel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channel = channel
}

func (s *ChatState) Snapshot() ChatSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := ChatSnapshot{
		Chats:        append([]Chat(nil), s.chats...),
		Messages:     append([]Message(nil), s.messages...),
		Participants: append([]ChatParticipant(nil), s.participants...),
		Polls:        append([]Poll(nil), s.polls...),
		Loading:      s.loading,
		Error:        s.err,
	}
	if s.current != nil {
		c := *s.current
		snap.Current = &c
	}
	return snap
}

// LoadChats replaces the chat list. Failures surface as a generic error in
// state and are not returned.
func (s *ChatState) LoadChats(ctx context.Context) {
	s.begin()
	chats, err := s.api.ListChats(ctx)
	if err != nil {
		s.fail(errFetchChats, err)
		return
	}
	s.mu.Lock()
	s.chats = chats
	s.loading = false
	s.mu.Unlock()
}

// OpenChat makes the chat current: three sequential reads (chat, history,
// participants), then a room subscription if the channel is up. The
// subscription always matches the current chat; the channel manager tears
// the previous room down before joining the new one.
func (s *ChatState) OpenChat(ctx context.Context, chatID string) {
	s.begin()

	chat, err := s.api.GetChat(ctx, chatID)
	if err != nil {
		s.fail(errFetchChat, err)
		return
	}
	messages, err := s.api.ChatMessages(ctx, chatID)
	if err != nil {
		s.fail(errFetchChat, err)
		return
	}
	participants, err := s.api.ChatParticipants(ctx, chatID)
	if err != nil {
		s.fail(errFetchChat, err)
		return
	}

	s.mu.Lock()
	s.current = &chat
	s.messages = messages
	s.participants = participants
	s.polls = nil
	s.loading = false
	channel := s.channel
	s.mu.Unlock()

	if channel == nil || !channel.Connected() {
		return
	}
	sub, err := channel.Subscribe(chat.ID, RoomHandlers{
		OnMessage:      s.applyMessage,
		OnParticipants: s.applyParticipants,
	})
	if err != nil {
		s.logger.Error("room subscribe failed", map[string]interface{}{"chat_id": chat.ID, "error": err.Error()})
		return
	}
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()
}

// CreateChat appends the new chat to the list. Unlike the other mutations
// it returns the error as well, so a creation dialog can stay open.
func (s *ChatState) CreateChat(ctx context.Context, name, description string) (Chat, error) {
	s.begin()
	chat, err := s.api.CreateChat(ctx, name, description)
	if err != nil {
		s.fail(errCreateChat, err)
		return Chat{}, err
	}
	s.mu.Lock()
	s.chats = append(s.chats, chat)
	s.loading = false
	s.mu.Unlock()
	return chat, nil
}

// JoinChat joins and refreshes the chat list. Failures are recorded in
// state only; callers inspect Snapshot().Error.
func (s *ChatState) JoinChat(ctx context.Context, chatID string) {
	s.begin()
	if err := s.api.JoinChat(ctx, chatID); err != nil {
		s.fail(errJoinChat, err)
		return
	}
	s.LoadChats(ctx)
}

func (s *ChatState) LeaveChat(ctx context.Context, chatID string) {
	s.begin()
	if err := s.api.LeaveChat(ctx, chatID); err != nil {
		s.fail(errLeaveChat, err)
		return
	}
	s.LoadChats(ctx)
}

// SendMessage posts to the current chat and appends the returned message
// immediately, without waiting for the realtime echo. The server may echo
// the same message back over the channel, in which case it appears twice;
// that mirrors the server's room-broadcast contract.
func (s *ChatState) SendMessage(ctx context.Context, content, fileURL, fileType, fileName string) {
	chatID, ok := s.currentChatID()
	if !ok {
		s.setError(errNoActiveChat)
		return
	}

	msg, err := s.api.SendMessage(ctx, chatID, content, fileURL, fileType, fileName)
	if err != nil {
		s.fail(errSendMessage, err)
		return
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

// CreatePoll creates a single-choice poll in the current chat. Nothing is
// appended locally; the poll surfaces through the realtime message event.
func (s *ChatState) CreatePoll(ctx context.Context, question string, options []string) {
	chatID, ok := s.currentChatID()
	if !ok {
		s.setError(errNoActiveChat)
		return
	}

	if _, err := s.api.CreatePoll(ctx, chatID, question, options, PollSingleChoice, nil); err != nil {
		s.fail(errCreatePoll, err)
	}
}

// VotePoll casts a vote and stores the poll snapshot the server returns,
// with its authoritative tallies.
func (s *ChatState) VotePoll(ctx context.Context, pollID, optionID string) {
	poll, err := s.api.VotePoll(ctx, pollID, optionID)
	if err != nil {
		s.fail(errVotePoll, err)
		return
	}
	s.mu.Lock()
	replaced := false
	for i := range s.polls {
		if s.polls[i].ID == poll.ID {
			s.polls[i] = poll
			replaced = true
			break
		}
	}
	if !replaced {
		s.polls = append(s.polls, poll)
	}
	s.mu.Unlock()
}

// UploadFile uploads the attachment to the current chat and sends a message
// referencing it.
func (s *ChatState) UploadFile(ctx context.Context, fileName, fileType string, content io.Reader) {
	chatID, ok := s.currentChatID()
	if !ok {
		s.setError(errNoActiveChat)
		return
	}

	fileURL, err := s.files.UploadFile(ctx, chatID, fileName, content)
	if err != nil {
		s.fail(errUploadFile, err)
		return
	}
	s.SendMessage(ctx, "", fileURL, fileType, fileName)
}

// DownloadLog fetches the current chat's exported log. The caller decides
// where the bytes go, so the error comes back directly.
func (s *ChatState) DownloadLog(ctx context.Context) ([]byte, error) {
	chatID, ok := s.currentChatID()
	if !ok {
		s.setError(errNoActiveChat)
		return nil, &APIError{Status: 0, Message: errNoActiveChat}
	}
	return s.api.ChatLog(ctx, chatID)
}

func (s *ChatState) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// SetConnectionError records a realtime transport failure. The connection
// itself stays up.
func (s *ChatState) SetConnectionError(reason string) {
	s.setError(reason)
}

// Reset drops the whole aggregate, closing the room subscription if one is
// live. Called on logout.
func (s *ChatState) Reset() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.chats = nil
	s.current = nil
	s.messages = nil
	s.participants = nil
	s.polls = nil
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	if sub != nil {
		_ = sub.Close()
	}
}

// applyMessage appends an inbound realtime message. Arrival order is the
// only ordering; there are no sequence numbers on the wire.
func (s *ChatState) applyMessage(msg Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

// applyParticipants replaces the participant list wholesale.
func (s *ChatState) applyParticipants(participants []ChatParticipant) {
	s.mu.Lock()
	s.participants = participants
	s.mu.Unlock()
}

func (s *ChatState) currentChatID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", false
	}
	return s.current.ID, true
}

func (s *ChatState) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *ChatState) fail(message string, cause error) {
	s.logger.Error(message, map[string]interface{}{"error": cause.Error()})
	s.mu.Lock()
	s.loading = false
	s.err = message
	s.mu.Unlock()
}

func (s *ChatState) setError(message string) {
	s.mu.Lock()
	s.err = message
	s.mu.Unlock()
}
