package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/qa" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("X-Gz-Trace-Id") == "" {
			t.Fatal("missing trace id header")
		}

		var req QARequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Question != "珍珠的主要成分是什么？" || req.UserID != "u1" || req.SessionID != "s1" {
			t.Fatalf("unexpected request: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"answer":"碳酸钙"}`)
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	answer, err := c.Ask(context.Background(), "珍珠的主要成分是什么？", "u1", "s1")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "碳酸钙" {
		t.Fatalf("unexpected answer: %s", answer)
	}
}

func TestClientAskServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"errorMsg":"Internal Server Error."}`)
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	if _, err := c.Ask(context.Background(), "q", "u", "s"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestClientAskBadBody(t *testing.T) {
	cases := map[string]string{
		"not json":          `answer`,
		"missing answer":    `{"msg":"ok"}`,
		"empty answer":      `{"answer":""}`,
		"non-string answer": `{"answer":42}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, body)
			}))
			defer server.Close()

			c := New(server.URL, time.Second)
			if _, err := c.Ask(context.Background(), "q", "u", "s"); err == nil {
				t.Fatalf("expected error for body %q", body)
			}
		})
	}
}

func TestClientAskConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c := New(server.URL, time.Second)
	if _, err := c.Ask(context.Background(), "q", "u", "s"); err == nil {
		t.Fatal("expected error when backend is unreachable")
	}
}
