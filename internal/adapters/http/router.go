package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"ragserve/internal/core/ports"
	"ragserve/internal/observability/metrics"
)

const (
	maxQuestionRunes  = 500
	maxResultsCeiling = 10
)

type Router struct {
	service string
	queryUC ports.QuestionAnswerer
	metrics *metrics.HTTPServerMetrics
	healthy func() bool
}

// NewRouter wires the query endpoint, health check and metrics endpoint.
// healthy reports whether the process can serve grounded answers (API key
// configured, index built).
func NewRouter(
	service string,
	queryUC ports.QuestionAnswerer,
	m *metrics.HTTPServerMetrics,
	healthy func() bool,
) *Router {
	return &Router{
		service: service,
		queryUC: queryUC,
		metrics: m,
		healthy: healthy,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/query", rt.query)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	if rt.healthy != nil && !rt.healthy() {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

type queryRequest struct {
	Question   string `json:"question"`
	MaxResults int    `json:"max_results"`
}

type queryResponse struct {
	Answer    string   `json:"answer"`
	Found     bool     `json:"found"`
	Sources   []string `json:"sources"`
	RequestID string   `json:"request_id"`
}

func (rt *Router) query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if msg, ok := validateQuery(req); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	start := time.Now()
	answer, err := rt.queryUC.Answer(r.Context(), req.Question, req.MaxResults)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordRAGObservation(rt.service, len(answer.Sources), answer.Found, time.Since(start))
	}

	sources := make([]string, len(answer.Sources))
	for i, hit := range answer.Sources {
		sources[i] = hit.Chunk.Text
	}
	writeJSON(w, http.StatusOK, queryResponse{
		Answer:    answer.Text,
		Found:     answer.Found,
		Sources:   sources,
		RequestID: requestIDFromContext(r.Context()),
	})
}

func validateQuery(req queryRequest) (string, bool) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "question is required", false
	}
	if utf8.RuneCountInString(question) > maxQuestionRunes {
		return "question exceeds 500 characters", false
	}
	if req.MaxResults < 0 || req.MaxResults > maxResultsCeiling {
		return "max_results must be between 1 and 10", false
	}
	return "", true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
