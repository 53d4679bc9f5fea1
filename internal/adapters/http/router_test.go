package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ragserve/internal/core/domain"
)

type answererFake struct {
	answer   *domain.Answer
	err      error
	question string
	limit    int
}

func (f *answererFake) Answer(_ context.Context, question string, limit int) (*domain.Answer, error) {
	f.question = question
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func newTestHandler(fake *answererFake, healthy func() bool) http.Handler {
	return NewRouter("ragserve", fake, nil, healthy).Handler()
}

func postQuery(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestQuerySuccess(t *testing.T) {
	fake := &answererFake{
		answer: &domain.Answer{
			Text:  "ShopifyAudit scans stores for compliance issues.",
			Found: true,
			Sources: []domain.RetrievedChunk{
				{Chunk: domain.Chunk{Text: "ShopifyAudit scans Shopify stores.", Index: 0}, Score: 0.92},
				{Chunk: domain.Chunk{Text: "It reports compliance issues.", Index: 1}, Score: 0.87},
			},
		},
	}
	handler := newTestHandler(fake, func() bool { return true })

	rec := postQuery(t, handler, `{"question": "What does ShopifyAudit do?", "max_results": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if fake.question != "What does ShopifyAudit do?" || fake.limit != 2 {
		t.Fatalf("use case received question=%q limit=%d", fake.question, fake.limit)
	}

	payload := decodeResponse(t, rec)
	if payload["answer"] != "ShopifyAudit scans stores for compliance issues." {
		t.Fatalf("unexpected answer %v", payload["answer"])
	}
	if payload["found"] != true {
		t.Fatalf("expected found=true, got %v", payload["found"])
	}
	sources, ok := payload["sources"].([]any)
	if !ok || len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %v", payload["sources"])
	}
	if sources[0] != "ShopifyAudit scans Shopify stores." {
		t.Fatalf("unexpected first source %v", sources[0])
	}

	requestID, _ := payload["request_id"].(string)
	if requestID == "" {
		t.Fatal("response must carry a request id")
	}
	if header := rec.Header().Get("X-Request-Id"); header != requestID {
		t.Fatalf("header id %q != body id %q", header, requestID)
	}
}

func TestQueryPropagatesClientRequestID(t *testing.T) {
	fake := &answererFake{answer: &domain.Answer{Found: false, Sources: []domain.RetrievedChunk{}}}
	handler := newTestHandler(fake, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader(`{"question": "anything"}`))
	req.Header.Set("X-Request-Id", "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") != "client-supplied-id" {
		t.Fatalf("client request id not echoed, got %q", rec.Header().Get("X-Request-Id"))
	}
	payload := decodeResponse(t, rec)
	if payload["request_id"] != "client-supplied-id" {
		t.Fatalf("body request_id = %v", payload["request_id"])
	}
}

func TestQueryNotFoundIsStillOK(t *testing.T) {
	fake := &answererFake{answer: &domain.Answer{Found: false, Sources: []domain.RetrievedChunk{}}}
	handler := newTestHandler(fake, nil)

	rec := postQuery(t, handler, `{"question": "Who wrote the iliad?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("no grounding is not an error, status = %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	if payload["found"] != false {
		t.Fatalf("expected found=false, got %v", payload["found"])
	}
	if sources, ok := payload["sources"].([]any); !ok || len(sources) != 0 {
		t.Fatalf("expected empty sources array, got %v", payload["sources"])
	}
}

func TestQueryMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&answererFake{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/query", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestQueryValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"question": `},
		{"missing question", `{"max_results": 3}`},
		{"blank question", `{"question": "   "}`},
		{"question too long", `{"question": "` + strings.Repeat("q", 501) + `"}`},
		{"max_results negative", `{"question": "ok", "max_results": -1}`},
		{"max_results too large", `{"question": "ok", "max_results": 11}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &answererFake{}
			handler := newTestHandler(fake, nil)

			rec := postQuery(t, handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if fake.question != "" {
				t.Fatal("use case must not run on invalid input")
			}
		})
	}
}

func TestQueryErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "answer", errors.New("empty")), http.StatusBadRequest},
		{"temporary upstream", domain.WrapError(domain.ErrTemporary, "embed", errors.New("rate limited")), http.StatusServiceUnavailable},
		{"embedding failure", domain.WrapError(domain.ErrEmbedding, "embed", errors.New("boom")), http.StatusServiceUnavailable},
		{"generation failure", domain.WrapError(domain.ErrGeneration, "generate", errors.New("boom")), http.StatusServiceUnavailable},
		{"unknown failure", errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&answererFake{err: tt.err}, nil)

			rec := postQuery(t, handler, `{"question": "anything"}`)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	for _, tt := range []struct {
		name    string
		healthy bool
		want    string
	}{
		{"healthy", true, "healthy"},
		{"degraded", false, "degraded"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&answererFake{}, func() bool { return tt.healthy })

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if payload := decodeResponse(t, rec); payload["status"] != tt.want {
				t.Fatalf("status field = %v, want %q", payload["status"], tt.want)
			}
		})
	}
}
