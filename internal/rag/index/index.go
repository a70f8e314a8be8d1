package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/metrics"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

const stagingFileName = "index.staging.db"

// Index is the durable vector index. The sqlite file under dir survives
// restarts; queries run against an immutable in-memory snapshot that is
// swapped atomically after a rebuild, so a reader always sees either the
// fully old or the fully new contents.
type Index struct {
	dir      string
	snapshot atomic.Pointer[snapshot]
	logger   *logger_i.Logger
}

type snapshot struct {
	entries []commonModels.IndexEntry
}

// New opens the index directory, creating it when missing, and loads the
// persisted entries if a built index is present.
func New(dir string) (*Index, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	ix := &Index{dir: dir, logger: logger_i.NewLogger("VectorIndex")}
	if ix.Exists() {
		if err := ix.load(); err != nil {
			return nil, fmt.Errorf("loading persisted index: %w", err)
		}
	}
	return ix, nil
}

func (ix *Index) path() string {
	return filepath.Join(ix.dir, config.IndexFileName)
}

// Exists reports whether a built index is present on durable storage.
func (ix *Index) Exists() bool {
	_, err := os.Stat(ix.path())
	return err == nil
}

// Ready reports whether an index snapshot is loaded and searchable.
func (ix *Index) Ready() bool {
	return ix.snapshot.Load() != nil
}

// Len returns the number of entries in the active snapshot.
func (ix *Index) Len() int {
	snap := ix.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.entries)
}

// Build replaces the entire index contents. The new contents are written to
// a staging sqlite file first and renamed over the active file, then the
// in-memory snapshot is swapped; a failure at any point leaves the prior
// index untouched.
func (ix *Index) Build(ctx context.Context, entries []commonModels.IndexEntry) error {
	stagingPath := filepath.Join(ix.dir, stagingFileName)
	_ = os.Remove(stagingPath)

	if err := ix.writeFile(ctx, stagingPath, entries); err != nil {
		_ = os.Remove(stagingPath)
		return err
	}
	if err := os.Rename(stagingPath, ix.path()); err != nil {
		_ = os.Remove(stagingPath)
		return fmt.Errorf("activating staged index: %w", err)
	}

	copied := make([]commonModels.IndexEntry, len(entries))
	copy(copied, entries)
	ix.snapshot.Store(&snapshot{entries: copied})
	metrics.SetIndexedChunks(len(copied))
	ix.logger.Info("Index rebuilt", "entries", len(entries))
	return nil
}

// Search returns up to k entries ranked by descending cosine similarity to
// the query vector. Ties keep insertion order.
func (ix *Index) Search(queryVector []float32, k int) ([]commonModels.ScoredEntry, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", commonModels.ErrInvalidArgument, k)
	}
	snap := ix.snapshot.Load()
	if snap == nil {
		return nil, commonModels.ErrIndexNotReady
	}

	scored := make([]commonModels.ScoredEntry, len(snap.entries))
	for i, entry := range snap.entries {
		scored[i] = commonModels.ScoredEntry{Entry: entry, Score: cosineSimilarity(entry.Vector, queryVector)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func (ix *Index) writeFile(ctx context.Context, path string, entries []commonModels.IndexEntry) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening staging index: %w", err)
	}
	defer db.Close()

	const schema = `CREATE TABLE entries (
		ord      INTEGER PRIMARY KEY,
		chunk_id TEXT NOT NULL,
		content  TEXT NOT NULL,
		source   TEXT NOT NULL,
		start_offset INTEGER NOT NULL,
		metadata TEXT NOT NULL,
		vector   BLOB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating index schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting index transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (ord, chunk_id, content, source, start_offset, metadata, vector) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing index insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		meta, err := json.Marshal(entry.Chunk.Metadata)
		if err != nil {
			return fmt.Errorf("encoding chunk metadata: %w", err)
		}
		_, err = stmt.ExecContext(ctx, i, entry.Chunk.ChunkId, entry.Chunk.Content,
			entry.Chunk.Source, entry.Chunk.Offset, string(meta), float32SliceToBytes(entry.Vector))
		if err != nil {
			return fmt.Errorf("inserting index entry %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (ix *Index) load() error {
	db, err := sql.Open("sqlite", ix.path())
	if err != nil {
		return fmt.Errorf("opening index file: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT ord, chunk_id, content, source, start_offset, metadata, vector FROM entries ORDER BY ord`)
	if err != nil {
		return fmt.Errorf("reading index entries: %w", err)
	}
	defer rows.Close()

	var entries []commonModels.IndexEntry
	for rows.Next() {
		var (
			entry commonModels.IndexEntry
			meta  string
			blob  []byte
		)
		if err := rows.Scan(&entry.Chunk.Ord, &entry.Chunk.ChunkId, &entry.Chunk.Content,
			&entry.Chunk.Source, &entry.Chunk.Offset, &meta, &blob); err != nil {
			return fmt.Errorf("scanning index entry: %w", err)
		}
		if err := json.Unmarshal([]byte(meta), &entry.Chunk.Metadata); err != nil {
			return fmt.Errorf("decoding chunk metadata: %w", err)
		}
		entry.Vector = bytesToFloat32Slice(blob)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating index entries: %w", err)
	}

	ix.snapshot.Store(&snapshot{entries: entries})
	metrics.SetIndexedChunks(len(entries))
	ix.logger.Info("Index loaded from disk", "entries", len(entries))
	return nil
}
