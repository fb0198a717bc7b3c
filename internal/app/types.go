package app

import "time"

// UserRole is the role a user carries across the whole system. Roles are
// assigned at registration and embedded in every message and participant
// record the server returns.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleModerator   UserRole = "moderator"
	RoleParticipant UserRole = "participant"
	RoleObserver    UserRole = "observer"
)

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role"`
}

// Chat is a chat room. The client never mutates a chat directly; it only
// issues create/join/leave calls and re-fetches.
type Chat struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
	IsActive    bool      `json:"isActive"`
}

// Message is one entry in a chat's append-only message sequence. A message
// may carry a file attachment or reference a poll.
type Message struct {
	ID       string   `json:"id"`
	ChatID   string   `json:"chatId"`
	UserID   string   `json:"userId"`
	UserName string   `json:"userName"`
	UserRole UserRole `json:"userRole"`
	Content  string   `json:"content"`
	FileURL  string   `json:"fileUrl,omitempty"`
	FileType string   `json:"fileType,omitempty"`
	FileName string   `json:"fileName,omitempty"`
	IsPoll   bool     `json:"isPoll,omitempty"`
	PollID   string   `json:"pollId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ChatParticipant is a member of a chat. The server pushes the full
// participant list on every change; the client never merges incrementally.
type ChatParticipant struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	UserID    string    `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      UserRole  `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
	IsActive  bool      `json:"isActive"`
}

// PollType selects how many options a voter may pick.
type PollType string

const (
	PollSingleChoice   PollType = "single"
	PollMultipleChoice PollType = "multiple"
)

// PollOption is one answer in a poll. Vote counts are server-side tallies;
// the client never counts votes itself.
type PollOption struct {
	ID     string `json:"id"`
	PollID string `json:"pollId"`
	Text   string `json:"text"`
	Votes  int    `json:"votes"`
}

// Poll is a poll attached to a chat.
type Poll struct {
	ID        string       `json:"id"`
	ChatID    string       `json:"chatId"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	PollType  PollType     `json:"pollType"`
	CreatedBy string       `json:"createdBy"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
	IsClosed  bool         `json:"isClosed"`
}

// Vote is a single cast vote, as stored server-side.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"pollId"`
	OptionID  string    `json:"optionId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName renders a participant's display name.
func (p ChatParticipant) FullName() string {
	return p.FirstName + " " + p.LastName
}
