package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/pkg/notion"
	"github.com/yaklabco/gomd2notion/pkg/parser"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

type warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type blocksResponse struct {
	Blocks   []notion.Block `json:"blocks"`
	Count    int            `json:"count"`
	Warnings []warning      `json:"warnings"`
}

// pageRequest is a publish request carrying its markdown inline.
type pageRequest struct {
	publish.Request
	Markdown string `json:"markdown"`
}

type pageResponse struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Blocks   int       `json:"blocks"`
	Warnings []warning `json:"warnings"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Status int    `json:"status,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBlocks converts a markdown body to service blocks.
func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	src, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	conv, err := s.converter.Convert(string(src))
	if err != nil {
		s.conversionError(w, r, err)
		return
	}

	wire := notion.EncodeBlocks(conv.Blocks)
	if wire == nil {
		wire = []notion.Block{}
	}
	writeJSON(w, http.StatusOK, blocksResponse{
		Blocks:   wire,
		Count:    len(conv.Blocks),
		Warnings: warnings(conv.Warnings),
	})
}

// handlePages converts the request markdown and publishes it as a new page.
func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		jsonError(w, "publishing is not configured", http.StatusServiceUnavailable)
		return
	}

	var req pageRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		jsonError(w, "markdown is required", http.StatusBadRequest)
		return
	}

	conv, err := s.converter.Convert(req.Markdown)
	if err != nil {
		s.conversionError(w, r, err)
		return
	}

	req.Blocks = conv.Tree
	page, err := s.publisher.Publish(r.Context(), req.Request)
	if err != nil {
		s.publishError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, pageResponse{
		ID:       page.ID,
		URL:      page.URL,
		Blocks:   len(conv.Blocks),
		Warnings: warnings(conv.Warnings),
	})
}

func (s *Server) conversionError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Warn("conversion failed", logging.FieldError, err)
	if errors.Is(err, parser.ErrMalformedNesting) {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	jsonError(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) publishError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())

	if errors.Is(err, publish.ErrInvalidConfig) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var apiErr *notion.APIError
	if errors.As(err, &apiErr) {
		logger.Error("service rejected request",
			logging.FieldStatus, apiErr.Status,
			logging.FieldCode, apiErr.Code,
			logging.FieldError, err,
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:  err.Error(),
			Code:   apiErr.Code,
			Status: apiErr.Status,
		})
		return
	}

	logger.Error("publish failed", logging.FieldError, err)
	jsonError(w, err.Error(), http.StatusInternalServerError)
}

func warnings(ws []parser.Warning) []warning {
	out := make([]warning, 0, len(ws))
	for _, w := range ws {
		out = append(out, warning{Line: w.Line, Message: w.Message})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, errorResponse{Error: msg})
}
