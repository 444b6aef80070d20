package service

import (
	"fmt"
	"learnquest_backend/internal/config"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func TestChatReturnsMessageContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`)
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	got, err := svc.Chat("hi", "", nil)
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if got != "hello there" {
		t.Errorf("Chat = %q, want %q", got, "hello there")
	}
}

func TestChatErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	if _, err := svc.Chat("hi", "", nil); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	if _, err := svc.Chat("hi", "", nil); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestChatStreamAssemblesDeltas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		chunks := []string{"Once", " upon", " a time"}
		for _, c := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", c)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	out, errChan := svc.ChatStream("tell a story", "", nil)

	var sb strings.Builder
	for chunk := range out {
		sb.WriteString(chunk)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("ChatStream returned error: %v", err)
	}
	if got := sb.String(); got != "Once upon a time" {
		t.Errorf("assembled stream = %q, want %q", got, "Once upon a time")
	}
}

func TestChatStreamServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	out, errChan := svc.ChatStream("hi", "", nil)

	for range out {
	}
	if err := <-errChan; err == nil {
		t.Fatal("expected error for non-200 stream response")
	}
}

func TestBuildMessagesOrder(t *testing.T) {
	svc := newTestAIService("http://example.invalid")
	history := []AIChatMessage{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
	}

	messages := svc.buildMessages("third", "be helpful", history)
	if len(messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(messages))
	}
	if messages[0].Role != "system" || messages[0].Content != "be helpful" {
		t.Errorf("first message = %+v, want system prompt", messages[0])
	}
	if messages[3].Role != "user" || messages[3].Content != "third" {
		t.Errorf("last message = %+v, want new prompt", messages[3])
	}
}
