package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(serverURL, token string) *Client {
	return NewClient(serverURL, staticToken(token), 5*time.Second)
}

func TestClient_AttachesBearerCredential(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(userResponse{User: User{ID: "u1", Role: RoleAdmin}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok-1")
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotPath != "/auth/me" {
		t.Fatalf("expected /auth/me, got %q", gotPath)
	}
	if user.ID != "u1" {
		t.Fatalf("expected user u1, got %+v", user)
	}
}

func TestClient_OmitsHeaderWithoutCredential(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(authResponse{Token: "fresh", User: User{ID: "u1"}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	token, _, err := client.Login(context.Background(), "a@b.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous call must not carry a header, got %q", gotAuth)
	}
	if token != "fresh" {
		t.Fatalf("expected token from envelope, got %q", token)
	}
}

func TestClient_NonSuccessBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "stale")
	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "token expired" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_SendMessagePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chats/c1/messages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(messageResponse{Message: Message{ID: "m1", ChatID: "c1", Content: req.Content}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	msg, err := client.SendMessage(context.Background(), "c1", "hello", "", "", "")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.ID != "m1" || msg.Content != "hello" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestClient_VoteReturnsServerTally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/polls/p1/vote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req voteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(pollResponse{Poll: Poll{
			ID:      "p1",
			Options: []PollOption{{ID: req.OptionID, Votes: 7}},
		}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	poll, err := client.VotePoll(context.Background(), "p1", "o2")
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if poll.Options[0].ID != "o2" || poll.Options[0].Votes != 7 {
		t.Fatalf("unexpected poll %+v", poll)
	}
}

func TestClient_UploadFileMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("chatId"); got != "c1" {
			t.Errorf("expected chatId c1, got %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			defer file.Close()
			if header.Filename != "notes.txt" {
				t.Errorf("expected notes.txt, got %q", header.Filename)
			}
		}
		_ = json.NewEncoder(w).Encode(uploadResponse{FileURL: "https://files/abc"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	url, err := client.UploadFile(context.Background(), "c1", "notes.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://files/abc" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestClient_ChatLogReturnsRawBlob(t *testing.T) {
	blob := []byte{0x1f, 0x8b, 0x00, 0x42}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chats/c1/log" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write(blob)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	got, err := client.ChatLog(context.Background(), "c1")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("blob altered in transit: %v", got)
	}
}
