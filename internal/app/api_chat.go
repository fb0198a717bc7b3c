package app

import (
	"context"
	"net/http"
)

type chatsResponse struct {
	Chats []Chat `json:"chats"`
}

type chatResponse struct {
	Chat Chat `json:"chat"`
}

type messagesResponse struct {
	Messages []Message `json:"messages"`
}

type messageResponse struct {
	Message Message `json:"message"`
}

type participantsResponse struct {
	Participants []ChatParticipant `json:"participants"`
}

type createChatRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type sendMessageRequest struct {
	Content  string `json:"content"`
	FileURL  string `json:"fileUrl,omitempty"`
	FileType string `json:"fileType,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

func (c *Client) ListChats(ctx context.Context) ([]Chat, error) {
	var resp chatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chats", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Chats, nil
}

func (c *Client) GetChat(ctx context.Context, chatID string) (Chat, error) {
	var resp chatResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chats/"+chatID, nil, &resp); err != nil {
		return Chat{}, err
	}
	return resp.Chat, nil
}

func (c *Client) CreateChat(ctx context.Context, name, description string) (Chat, error) {
	var resp chatResponse
	err := c.doJSON(ctx, http.MethodPost, "/chats", createChatRequest{Name: name, Description: description}, &resp)
	if err != nil {
		return Chat{}, err
	}
	return resp.Chat, nil
}

func (c *Client) JoinChat(ctx context.Context, chatID string) error {
	return c.doJSON(ctx, http.MethodPost, "/chats/"+chatID+"/join", struct{}{}, nil)
}

func (c *Client) LeaveChat(ctx context.Context, chatID string) error {
	return c.doJSON(ctx, http.MethodPost, "/chats/"+chatID+"/leave", struct{}{}, nil)
}

func (c *Client) ChatMessages(ctx context.Context, chatID string) ([]Message, error) {
	var resp messagesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chats/"+chatID+"/messages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *Client) ChatParticipants(ctx context.Context, chatID string) ([]ChatParticipant, error) {
	var resp participantsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chats/"+chatID+"/participants", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Participants, nil
}

// SendMessage posts a message to the chat and returns the stored message as
// the server recorded it. File fields are optional and describe an already
// uploaded attachment.
func (c *Client) SendMessage(ctx context.Context, chatID, content, fileURL, fileType, fileName string) (Message, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/chats/"+chatID+"/messages", sendMessageRequest{
		Content:  content,
		FileURL:  fileURL,
		FileType: fileType,
		FileName: fileName,
	}, &resp)
	if err != nil {
		return Message{}, err
	}
	return resp.Message, nil
}

// ChatLog downloads the chat's exported log as a raw blob.
func (c *Client) ChatLog(ctx context.Context, chatID string) ([]byte, error) {
	return c.doBlob(ctx, "/chats/"+chatID+"/log")
}
