package qa

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func setupRouter() *chi.Mux {
	handler := New(NewResponder())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postQA(t *testing.T, r http.Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat/qa", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeAnswer(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.Answer
}

func TestQAKnownTopic(t *testing.T) {
	r := setupRouter()
	payload, _ := json.Marshal(map[string]string{
		"question":   "珍珠的主要成分是什么？",
		"user_id":    "u1",
		"session_id": "s1",
	})

	resp := postQA(t, r, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if answer := decodeAnswer(t, resp); !strings.Contains(answer, "碳酸钙") {
		t.Fatalf("unexpected answer: %s", answer)
	}
}

func TestQAGreeting(t *testing.T) {
	r := setupRouter()
	payload, _ := json.Marshal(map[string]string{"question": "你好"})

	resp := postQA(t, r, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if answer := decodeAnswer(t, resp); !strings.Contains(answer, "宝儿") {
		t.Fatalf("unexpected greeting answer: %s", answer)
	}
}

func TestQAUnknownQuestionStillAnswers(t *testing.T) {
	r := setupRouter()
	payload, _ := json.Marshal(map[string]string{"question": "你会下围棋吗？"})

	resp := postQA(t, r, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if answer := decodeAnswer(t, resp); answer == "" {
		t.Fatal("expected a fallback answer")
	}
}

func TestQAMalformedBody(t *testing.T) {
	r := setupRouter()

	resp := postQA(t, r, []byte(`{"question":`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var payload struct {
		ErrorMsg string `json:"errorMsg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.ErrorMsg == "" {
		t.Fatal("expected errorMsg in error response")
	}
}
