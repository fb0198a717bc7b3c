package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type uploadResponse struct {
	FileURL string `json:"fileUrl"`
}

// UploadFile sends the raw file bytes plus the target chat id as a
// multipart form and returns the URL the server stored the file under.
func (c *Client) UploadFile(ctx context.Context, chatID, fileName string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := writer.WriteField("chatId", chatID); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", apiErrorFrom(resp.StatusCode, data)
	}

	var out uploadResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", err
	}
	return out.FileURL, nil
}

// GetFile downloads a stored file by id.
func (c *Client) GetFile(ctx context.Context, fileID string) ([]byte, error) {
	return c.doBlob(ctx, "/files/"+fileID)
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/files/"+fileID, nil, nil)
}
