package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/metrics"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/chunker"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/loader"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

type State string

const (
	StateEmpty            State = "Empty"
	StateLoading          State = "Loading"
	StateChunking         State = "Chunking"
	StateEmbedding        State = "Embedding"
	StateWriting          State = "Writing"
	StateReady            State = "Ready"
	StateNoDocumentsFound State = "NoDocumentsFound"
	StateFailed           State = "Failed"
)

// Report is the outcome of one ingestion run. NoDocumentsFound is a
// reported state, not a failure.
type Report struct {
	State     State  `json:"state"`
	Reason    string `json:"reason,omitempty"`
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
}

// IndexWriter is the slice of the vector index the pipeline needs.
type IndexWriter interface {
	Build(ctx context.Context, entries []commonModels.IndexEntry) error
}

// Pipeline runs the full-corpus rebuild: load -> chunk -> embed -> write.
// Runs are exclusive; a run that fails leaves the prior index untouched.
type Pipeline struct {
	documentsDir string
	chunkSize    int
	chunkOverlap int
	embedder     embedding.Embedder
	writer       IndexWriter
	running      sync.Mutex
	logger       *logger_i.Logger
}

func NewPipeline(documentsDir string, chunkSize int, chunkOverlap int, e embedding.Embedder, w IndexWriter) *Pipeline {
	return &Pipeline{
		documentsDir: documentsDir,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		embedder:     e,
		writer:       w,
		logger:       logger_i.NewLogger("Ingestion"),
	}
}

// Run executes one ingestion. The returned error is non-nil only for the
// Failed state and for a rejected concurrent run.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	if !p.running.TryLock() {
		return Report{State: StateFailed, Reason: commonModels.ErrIngestRunning.Error()}, commonModels.ErrIngestRunning
	}
	defer p.running.Unlock()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	report := Report{State: StateLoading}
	p.logger.Info("Starting document ingestion", "dir", p.documentsDir)

	documents, err := loader.LoadDirectory(p.documentsDir)
	if err != nil {
		return p.fail(report, fmt.Errorf("loading documents: %w", err))
	}
	report.Documents = len(documents)
	if len(documents) == 0 {
		p.logger.Warn("No documents found", "dir", p.documentsDir)
		report.State = StateNoDocumentsFound
		report.Reason = "document directory is empty"
		metrics.CaptureIngestOutcome(string(StateNoDocumentsFound))
		return report, nil
	}

	report.State = StateChunking
	chunks, err := p.chunkDocuments(documents)
	if err != nil {
		return p.fail(report, err)
	}
	report.Chunks = len(chunks)
	if len(chunks) == 0 {
		p.logger.Warn("Documents produced no chunks")
		report.State = StateNoDocumentsFound
		report.Reason = "documents contain no text"
		metrics.CaptureIngestOutcome(string(StateNoDocumentsFound))
		return report, nil
	}
	p.logger.Debug("Chunked corpus", "documents", len(documents), "chunks", len(chunks))

	report.State = StateEmbedding
	entries, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return p.fail(report, err)
	}

	report.State = StateWriting
	if err := p.writer.Build(ctx, entries); err != nil {
		return p.fail(report, fmt.Errorf("writing index: %w", err))
	}

	report.State = StateReady
	metrics.CaptureIngestOutcome(string(StateReady))
	p.logger.Info("Ingestion complete", "documents", report.Documents, "chunks", report.Chunks)
	return report, nil
}

func (p *Pipeline) fail(report Report, err error) (Report, error) {
	p.logger.Error("Ingestion failed", "step", report.State, "error", err)
	report.State = StateFailed
	report.Reason = err.Error()
	metrics.CaptureIngestOutcome(string(StateFailed))
	return report, err
}

func (p *Pipeline) chunkDocuments(documents []commonModels.Document) ([]commonModels.DocChunk, error) {
	var chunks []commonModels.DocChunk
	for _, doc := range documents {
		segments, err := chunker.Split(doc.Content, p.chunkSize, p.chunkOverlap)
		if err != nil {
			return nil, fmt.Errorf("chunking %s: %w", doc.Name, err)
		}
		for _, seg := range segments {
			chunks = append(chunks, commonModels.DocChunk{
				ChunkId:  uuid.New().String(),
				Content:  seg.Text,
				Source:   doc.Metadata["source"],
				Offset:   seg.Offset,
				Ord:      len(chunks),
				Metadata: doc.Metadata,
			})
		}
	}
	return chunks, nil
}

func (p *Pipeline) embedChunks(ctx context.Context, chunks []commonModels.DocChunk) ([]commonModels.IndexEntry, error) {
	entries := make([]commonModels.IndexEntry, 0, len(chunks))

	batchSize := config.EmbeddingBatchSize
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		texts := make([]string, len(currentBatch))
		for j, c := range currentBatch {
			texts[j] = c.Content
		}

		embedStart := time.Now()
		vectors, err := p.embedder.EmbedBatch(ctx, texts)
		metrics.CaptureExecutionMetrics("embedding", time.Since(embedStart))
		if err != nil {
			return nil, fmt.Errorf("embedding batch at %d: %w", i, err)
		}
		if len(vectors) != len(currentBatch) {
			return nil, fmt.Errorf("%w: got %d vectors for %d chunks",
				commonModels.ErrEmbeddingService, len(vectors), len(currentBatch))
		}

		for j, chunk := range currentBatch {
			entries = append(entries, commonModels.IndexEntry{Chunk: chunk, Vector: vectors[j]})
		}
	}
	return entries, nil
}
