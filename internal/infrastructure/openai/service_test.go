package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestNewServiceWithoutKey(t *testing.T) {
	if svc := NewService("", "gpt-4o-mini", ""); svc != nil {
		t.Error("NewService() without a key should return nil")
	}
}

func TestGenerate(t *testing.T) {
	var got openai.ChatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "RAG means retrieval-augmented generation."}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	svc := NewService("test-key", "gpt-4o-mini", srv.URL+"/v1")
	reply, err := svc.Generate(context.Background(), "What is RAG?", []string{"RAG stands for Retrieval-Augmented Generation."})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if reply != "RAG means retrieval-augmented generation." {
		t.Errorf("Generate() = %q", reply)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 3 || got.Messages[2].Content != "What is RAG?" {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[1].Content, "Retrieval-Augmented") {
		t.Errorf("context message = %q, want the retrieved passage", got.Messages[1].Content)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "choices": []}`))
	}))
	defer srv.Close()

	svc := NewService("test-key", "gpt-4o-mini", srv.URL+"/v1")
	if _, err := svc.Generate(context.Background(), "hi", nil); err == nil {
		t.Error("Generate() with no choices should fail")
	}
}
