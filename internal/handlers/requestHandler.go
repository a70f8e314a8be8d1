package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/syedazoh/RAG-Chatbot/internal/api"
	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/rag"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/ingest"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

// IndexStatus is the slice of the vector index health reporting needs.
type IndexStatus interface {
	Exists() bool
}

// Ingestor runs one full-corpus ingestion.
type Ingestor interface {
	Run(ctx context.Context) (ingest.Report, error)
}

// Handler serves the HTTP surface. All collaborators are injected.
type Handler struct {
	ragService rag.Service
	pipeline   Ingestor
	indexState IndexStatus
	logger     *logger_i.Logger
}

func NewHandler(ragService rag.Service, pipeline Ingestor, indexState IndexStatus) *Handler {
	return &Handler{
		ragService: ragService,
		pipeline:   pipeline,
		indexState: indexState,
		logger:     logger_i.NewLogger("Request Handler"),
	}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var requestData api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := strings.TrimSpace(requestData.Query)
	if query == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "query is required")
		return
	}

	answer, err := h.ragService.AnswerQuery(r.Context(), query)
	if err != nil {
		h.writeChatError(w, r, err)
		return
	}

	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	writeJsonResponse(w, http.StatusOK, api.ChatResponse{Answer: answer.Text, Sources: sources})
}

func (h *Handler) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	h.logger.Error("Chat request failed", "traceId", traceId, "error", err)

	switch {
	case errors.Is(err, commonModels.ErrInvalidArgument):
		WriteErrorResponse(w, http.StatusBadRequest, "query is required")
	case errors.Is(err, commonModels.ErrIndexNotReady):
		WriteErrorResponse(w, http.StatusServiceUnavailable, "no documents ingested yet - call /ingest first")
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.IngestTimeout)
	defer cancel()

	report, err := h.pipeline.Run(ctx)
	if errors.Is(err, commonModels.ErrIngestRunning) {
		WriteErrorResponse(w, http.StatusConflict, "an ingestion run is already in progress")
		return
	}

	// Failed is reported in the body; the request itself succeeded.
	writeJsonResponse(w, http.StatusOK, api.IngestResponse{
		State:     string(report.State),
		Reason:    report.Reason,
		Documents: report.Documents,
		Chunks:    report.Chunks,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		Status:        "ok",
		DatabaseFound: h.indexState.Exists(),
		RagReady:      h.ragService.Ready(),
	})
}
