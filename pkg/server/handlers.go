package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowlens/flowlens/pkg/cache"
	"github.com/flowlens/flowlens/pkg/errors"
	flowio "github.com/flowlens/flowlens/pkg/io"
	"github.com/flowlens/flowlens/pkg/render"
	"github.com/flowlens/flowlens/pkg/store"
	"github.com/flowlens/flowlens/pkg/workflow"
)

// maxUploadSize caps workflow uploads at 32 MiB. Real .yxmd files are
// well under a megabyte; anything larger is not a workflow.
const maxUploadSize = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload parses an uploaded workflow document, archives it, and
// returns the parsed record. Re-uploading identical bytes returns the
// existing record.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "read request body"))
		return
	}
	if len(body) > maxUploadSize {
		s.writeError(w, r, errors.New(errors.ErrCodeMalformedInput, "request body exceeds %d bytes", maxUploadSize))
		return
	}

	// Cheapest path first: a previous upload of these exact bytes left
	// the full response in the cache.
	key := cache.WorkflowKey(body)
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	hash := cache.Hash(body)
	existing, err := s.store.FindByHash(r.Context(), hash)
	if err == nil {
		writeJSON(w, http.StatusOK, existing)
		return
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		s.writeError(w, r, err)
		return
	}

	wf, err := workflow.Decode(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := &store.Record{
		ID:        uuid.NewString(),
		Name:      wf.Info.Name,
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
		Workflow:  wf,
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := s.cache.Set(r.Context(), key, data, s.cacheTTL); err != nil {
			s.logger.Warn("cache set failed", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleGraph returns the tool graph of an archived workflow as JSON or
// DOT, selected by the format query parameter.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := workflow.ToGraph(rec.Workflow)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		if err := flowio.WriteGraphJSON(g, w); err != nil {
			s.logger.Error("write graph", "error", err)
		}
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = io.WriteString(w, render.ToDOT(g, render.Options{}))
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q", format))
	}
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeMalformedInput, errors.ErrCodeInvalidWorkflow, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
