package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kalambet/doclens/internal/action"
	"github.com/kalambet/doclens/internal/agent"
	"github.com/kalambet/doclens/internal/extract"
	"github.com/kalambet/doclens/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB
const maxUploadSize = 10 << 20     // 10MB

// Processor runs one query through the analysis chain.
type Processor interface {
	Process(ctx context.Context, query, content, documentID string) agent.Envelope
}

// Recorder persists documents and analysis history. A nil Recorder disables
// the history and document endpoints.
type Recorder interface {
	SaveDocument(ctx context.Context, doc storage.Document) error
	GetDocument(ctx context.Context, id string) (storage.Document, error)
	ListDocuments(ctx context.Context, limit int) ([]storage.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	SaveAnalysis(ctx context.Context, a storage.Analysis) error
	ListAnalyses(ctx context.Context, limit int) ([]storage.Analysis, error)
}

type AppDeps struct {
	Agent    Processor
	Recorder Recorder // optional
	Token    string   // empty disables auth
}

type ProcessRequest struct {
	UserQuery       string `json:"user_query"`
	DocumentContent string `json:"document_content"`
	DocumentID      string `json:"document_id"`
}

func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Post("/api/process", handleProcess(deps))
		r.Post("/api/upload", handleUpload(deps))
		r.Get("/api/capabilities", handleCapabilities)
		r.Get("/api/history", handleHistory(deps))
		r.Get("/api/documents", handleListDocuments(deps))
		r.Delete("/api/documents/{id}", handleDeleteDocument(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleProcess(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.UserQuery == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "user_query is required")
			return
		}

		env := deps.Agent.Process(r.Context(), req.UserQuery, req.DocumentContent, req.DocumentID)

		recordAnalysis(r.Context(), deps.Recorder, req.DocumentID, env)

		writeJSON(w, env)
	}
}

func handleUpload(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid multipart form: %v", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "file is required")
			return
		}
		defer file.Close()

		if !extract.Supported(header.Filename) {
			httpError(w, http.StatusBadRequest, "invalid_request_error",
				"unsupported file format %q", header.Filename)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "reading file: %v", err)
			return
		}

		text, fileType, err := extract.Process(data, header.Filename)
		if err != nil {
			httpError(w, http.StatusUnprocessableEntity, "extraction_error", "extracting text: %v", err)
			return
		}

		docID := uuid.New().String()
		if deps.Recorder != nil {
			doc := storage.Document{
				ID:          docID,
				Title:       header.Filename,
				Content:     text,
				ContentType: fileType,
			}
			if err := deps.Recorder.SaveDocument(r.Context(), doc); err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "saving document: %v", err)
				return
			}
		}

		resp := map[string]any{
			"document_id": docID,
			"file_type":   fileType,
			"characters":  len(text),
		}

		// An accompanying query triggers immediate analysis of the upload.
		if query := r.FormValue("user_query"); query != "" {
			env := deps.Agent.Process(r.Context(), query, text, docID)
			recordAnalysis(r.Context(), deps.Recorder, docID, env)
			resp["analysis"] = env
		}

		writeJSON(w, resp)
	}
}

func handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"capabilities": action.Capabilities(),
	})
}

func handleHistory(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Recorder == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "analysis history is not configured")
			return
		}

		limit := parseIntParam(r, "limit", 20, 100)

		analyses, err := deps.Recorder.ListAnalyses(r.Context(), limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing analyses: %v", err)
			return
		}
		if analyses == nil {
			analyses = []storage.Analysis{}
		}

		writeJSON(w, analyses)
	}
}

func handleListDocuments(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Recorder == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "document storage is not configured")
			return
		}

		limit := parseIntParam(r, "limit", 20, 100)

		docs, err := deps.Recorder.ListDocuments(r.Context(), limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing documents: %v", err)
			return
		}
		if docs == nil {
			docs = []storage.Document{}
		}

		writeJSON(w, docs)
	}
}

func handleDeleteDocument(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Recorder == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "document storage is not configured")
			return
		}

		id := chi.URLParam(r, "id")

		err := deps.Recorder.DeleteDocument(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "document not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "deleting document: %v", err)
			return
		}

		writeJSON(w, map[string]string{"status": "deleted"})
	}
}

// recordAnalysis saves one envelope to history. Best effort: recording
// failures never fail the request that produced the envelope.
func recordAnalysis(ctx context.Context, rec Recorder, documentID string, env agent.Envelope) {
	if rec == nil {
		return
	}

	envJSON, err := json.Marshal(env)
	if err != nil {
		return
	}

	_ = rec.SaveAnalysis(ctx, storage.Analysis{
		ID:           uuid.New().String(),
		DocumentID:   documentID,
		UserQuery:    env.UserQuery,
		Action:       string(env.IntentAnalysis.Action),
		Confidence:   env.Confidence,
		Complexity:   string(env.Complexity),
		EnvelopeJSON: string(envJSON),
		CreatedAt:    time.Now().UTC(),
	})
}
