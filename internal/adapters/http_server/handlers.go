// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"code_reviewer/internal/domain"
)

const greeting = "Hello World"

type Handlers struct {
	Reviewer           domain.Reviewer
	DefaultInstruction string
	ReviewPath         string
	MaxBodyBytes       int64
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type reviewResponse struct {
	Feedback string `json:"feedback"`
}

func (s *Server) MountHandlers(h *Handlers) {
	path := h.ReviewPath
	if path == "" {
		path = "/api/review"
	}
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(greeting))
	})
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post(path, h.review)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) review(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	defer func() {
		if p := recover(); p != nil {
			log.Error().Str("request_id", reqID).Interface("panic", p).Msg("review handler panicked")
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Something went wrong", Details: fmt.Sprint(p)})
		}
	}()

	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}
	var in domain.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(in.Code) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Code is required"})
		return
	}

	instruction := strings.TrimSpace(in.Prompt)
	if instruction == "" {
		instruction = h.DefaultInstruction
	}

	out, err := h.Reviewer.Review(r.Context(), in.Code, instruction)
	if err != nil {
		log.Error().Str("request_id", reqID).Err(err).Msg("review failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Something went wrong", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Feedback: out.CombinedText})
}
