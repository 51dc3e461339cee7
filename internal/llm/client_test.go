package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080", "test-key", "test-model")
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.Model != "test-model" {
		t.Errorf("NewClient() Model = %v, want test-model", client.Model)
	}
}

func TestClient_Generate(t *testing.T) {
	tests := []struct {
		name       string
		system     string
		user       string
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantErr    bool
		wantAnswer string
	}{
		{
			name:   "successful generation",
			system: "You are a helpful book assistant.",
			user:   "What is the capital of France?",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				var req chatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if len(req.Messages) != 2 {
					t.Errorf("expected 2 messages, got %d", len(req.Messages))
				}
				if req.Messages[0].Role != "system" {
					t.Errorf("first message role = %q, want system", req.Messages[0].Role)
				}

				resp := chatResponse{
					Choices: []chatChoice{
						{Message: Message{Role: "assistant", Content: "  Paris.\n"}},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr:    false,
			wantAnswer: "Paris.",
		},
		{
			name:   "no system message",
			system: "",
			user:   "Hello",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				var req chatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if len(req.Messages) != 1 {
					t.Errorf("expected 1 message, got %d", len(req.Messages))
				}

				resp := chatResponse{
					Choices: []chatChoice{
						{Message: Message{Role: "assistant", Content: "Hi"}},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr:    false,
			wantAnswer: "Hi",
		},
		{
			name:   "server error",
			system: "system",
			user:   "user",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model overloaded", http.StatusServiceUnavailable)
			},
			wantErr: true,
		},
		{
			name:   "no choices returned",
			system: "system",
			user:   "user",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				resp := chatResponse{Choices: []chatChoice{}}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/chat/completions" {
					t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
				}
				tt.serverResp(w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model")
			answer, err := client.Generate(context.Background(), tt.system, tt.user)

			if tt.wantErr {
				if err == nil {
					t.Error("Generate() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if answer != tt.wantAnswer {
				t.Errorf("Generate() = %q, want %q", answer, tt.wantAnswer)
			}
		})
	}
}

func TestClient_ChatWithMessages_ModelOverride(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model

		resp := chatResponse{
			Choices: []chatChoice{{Message: Message{Role: "assistant", Content: "ok"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "default-model")

	_, err := client.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{})
	if err != nil {
		t.Fatalf("ChatWithMessages() error = %v", err)
	}
	if gotModel != "default-model" {
		t.Errorf("model = %q, want default-model", gotModel)
	}

	_, err = client.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{Model: "other-model"})
	if err != nil {
		t.Fatalf("ChatWithMessages() error = %v", err)
	}
	if gotModel != "other-model" {
		t.Errorf("model = %q, want other-model", gotModel)
	}
}
