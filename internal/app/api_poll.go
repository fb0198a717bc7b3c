package app

import (
	"context"
	"net/http"
	"time"
)

type pollResponse struct {
	Poll Poll `json:"poll"`
}

type pollsResponse struct {
	Polls []Poll `json:"polls"`
}

type createPollRequest struct {
	ChatID    string     `json:"chatId"`
	Question  string     `json:"question"`
	Options   []string   `json:"options"`
	PollType  PollType   `json:"pollType"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type voteRequest struct {
	OptionID string `json:"optionId"`
}

// CreatePoll creates a poll in a chat. The server announces the poll to the
// room as a message over the realtime channel.
func (c *Client) CreatePoll(ctx context.Context, chatID, question string, options []string, pollType PollType, expiresAt *time.Time) (Poll, error) {
	if pollType == "" {
		pollType = PollSingleChoice
	}
	var resp pollResponse
	err := c.doJSON(ctx, http.MethodPost, "/polls", createPollRequest{
		ChatID:    chatID,
		Question:  question,
		Options:   options,
		PollType:  pollType,
		ExpiresAt: expiresAt,
	}, &resp)
	if err != nil {
		return Poll{}, err
	}
	return resp.Poll, nil
}

func (c *Client) GetPoll(ctx context.Context, pollID string) (Poll, error) {
	var resp pollResponse
	if err := c.doJSON(ctx, http.MethodGet, "/polls/"+pollID, nil, &resp); err != nil {
		return Poll{}, err
	}
	return resp.Poll, nil
}

func (c *Client) ChatPolls(ctx context.Context, chatID string) ([]Poll, error) {
	var resp pollsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chats/"+chatID+"/polls", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Polls, nil
}

// VotePoll casts a vote and returns the poll with server-side tallies. The
// client never counts votes locally.
func (c *Client) VotePoll(ctx context.Context, pollID, optionID string) (Poll, error) {
	var resp pollResponse
	err := c.doJSON(ctx, http.MethodPost, "/polls/"+pollID+"/vote", voteRequest{OptionID: optionID}, &resp)
	if err != nil {
		return Poll{}, err
	}
	return resp.Poll, nil
}

func (c *Client) ClosePoll(ctx context.Context, pollID string) (Poll, error) {
	var resp pollResponse
	err := c.doJSON(ctx, http.MethodPut, "/polls/"+pollID+"/close", struct{}{}, &resp)
	if err != nil {
		return Poll{}, err
	}
	return resp.Poll, nil
}

func (c *Client) DeletePoll(ctx context.Context, pollID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/polls/"+pollID, nil, nil)
}
