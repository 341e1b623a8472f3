package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careercraft-backend/internal/llm"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func serve(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleteReturnsContent(t *testing.T) {
	var payload map[string]any
	srv := serve(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"Tell me about yourself."}}]}`, &payload)

	client, err := NewClient("test-key", "gpt-5-mini", srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	reply, err := client.Complete(context.Background(), "start the interview")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "Tell me about yourself." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if _, ok := payload["temperature"]; ok {
		t.Fatalf("expected temperature omitted for gpt-5 models")
	}
}

func TestCompleteFailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   llm.Reason
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`, want: llm.ReasonNetwork},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, want: llm.ReasonEmpty},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, want: llm.ReasonEmpty},
		{name: "not json", status: http.StatusOK, body: `<html>`, want: llm.ReasonMalformed},
		{name: "gateway html", status: http.StatusBadGateway, body: `<html>`, want: llm.ReasonNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body, nil)
			client, err := NewClient("test-key", "", srv.URL, time.Second)
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			_, err = client.Complete(context.Background(), "prompt")
			if got := llm.ReasonOf(err); got != tt.want {
				t.Fatalf("reason = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "", srv.URL, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Complete(context.Background(), "prompt")
	if llm.ReasonOf(err) != llm.ReasonTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(" ", "", "", 0); err == nil {
		t.Fatalf("expected error without api key")
	}
}
