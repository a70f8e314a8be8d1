package index

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

func testEntries(n int) []commonModels.IndexEntry {
	entries := make([]commonModels.IndexEntry, n)
	for i := range entries {
		entries[i] = commonModels.IndexEntry{
			Chunk: commonModels.DocChunk{
				ChunkId:  fmt.Sprintf("chunk-%d", i),
				Content:  fmt.Sprintf("chunk content %d", i),
				Source:   "documents/data.txt",
				Offset:   i * 10,
				Ord:      i,
				Metadata: map[string]string{"source": "documents/data.txt"},
			},
			Vector: []float32{float32(i), 1, 0},
		}
	}
	return entries
}

func TestIndex_BuildPersistReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	ix, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if ix.Exists() {
		t.Fatal("fresh directory should have no persisted index")
	}

	entries := testEntries(5)
	if err := ix.Build(ctx, entries); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !ix.Exists() {
		t.Fatal("Exists() false after Build")
	}

	// a second Index over the same directory simulates a process restart
	reloaded, err := New(dir)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.Ready() {
		t.Fatal("reloaded index not ready")
	}

	results, err := reloaded.Search([]float32{1, 0, 0}, len(entries))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != len(entries) {
		t.Fatalf("round trip lost entries: got %d, want %d", len(results), len(entries))
	}

	seen := map[string]commonModels.DocChunk{}
	for _, r := range results {
		seen[r.Entry.Chunk.ChunkId] = r.Entry.Chunk
	}
	for _, want := range entries {
		got, ok := seen[want.Chunk.ChunkId]
		if !ok {
			t.Fatalf("entry %s missing after reload", want.Chunk.ChunkId)
		}
		if got.Content != want.Chunk.Content || got.Source != want.Chunk.Source ||
			got.Offset != want.Chunk.Offset || got.Metadata["source"] != want.Chunk.Metadata["source"] {
			t.Errorf("entry %s mutated by round trip: got %+v want %+v", want.Chunk.ChunkId, got, want.Chunk)
		}
	}
}

func TestIndex_SearchRanking(t *testing.T) {
	dir := t.TempDir()
	ix, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	entries := []commonModels.IndexEntry{
		{Chunk: commonModels.DocChunk{ChunkId: "orthogonal"}, Vector: []float32{0, 1, 0}},
		{Chunk: commonModels.DocChunk{ChunkId: "exact"}, Vector: []float32{1, 0, 0}},
		{Chunk: commonModels.DocChunk{ChunkId: "close"}, Vector: []float32{1, 0.2, 0}},
	}
	if err := ix.Build(context.Background(), entries); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := ix.Search([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Entry.Chunk.ChunkId != "exact" || results[1].Entry.Chunk.ChunkId != "close" {
		t.Errorf("ranking wrong: got %s, %s", results[0].Entry.Chunk.ChunkId, results[1].Entry.Chunk.ChunkId)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("scores not descending: %f < %f", results[0].Score, results[1].Score)
	}
}

func TestIndex_SearchTiesKeepInsertionOrder(t *testing.T) {
	ix, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// identical vectors - scores tie exactly
	entries := []commonModels.IndexEntry{
		{Chunk: commonModels.DocChunk{ChunkId: "first"}, Vector: []float32{1, 1}},
		{Chunk: commonModels.DocChunk{ChunkId: "second"}, Vector: []float32{1, 1}},
		{Chunk: commonModels.DocChunk{ChunkId: "third"}, Vector: []float32{1, 1}},
	}
	if err := ix.Build(context.Background(), entries); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := ix.Search([]float32{1, 1}, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].Entry.Chunk.ChunkId != want {
			t.Errorf("tie order broken at %d: got %s, want %s", i, results[i].Entry.Chunk.ChunkId, want)
		}
	}
}

func TestIndex_SearchKLargerThanIndex(t *testing.T) {
	ix, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := ix.Build(context.Background(), testEntries(3)); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := ix.Search([]float32{1, 0, 0}, 50)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want all 3", len(results))
	}
}

func TestIndex_SearchInvalidK(t *testing.T) {
	ix, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := ix.Build(context.Background(), testEntries(1)); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, k := range []int{0, -1} {
		if _, err := ix.Search([]float32{1}, k); !errors.Is(err, commonModels.ErrInvalidArgument) {
			t.Errorf("Search with k=%d: got %v, want ErrInvalidArgument", k, err)
		}
	}
}

func TestIndex_SearchBeforeBuild(t *testing.T) {
	ix, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := ix.Search([]float32{1}, 3); !errors.Is(err, commonModels.ErrIndexNotReady) {
		t.Errorf("got %v, want ErrIndexNotReady", err)
	}
}

// A search racing a rebuild must observe either the fully old or the fully
// new index, never a mix. Old entries all carry vector A, new ones vector
// B; a mixed snapshot would return both ids for k = size.
func TestIndex_RebuildAtomicity(t *testing.T) {
	ix, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	oldEntries := []commonModels.IndexEntry{
		{Chunk: commonModels.DocChunk{ChunkId: "old-0"}, Vector: []float32{1, 0}},
		{Chunk: commonModels.DocChunk{ChunkId: "old-1"}, Vector: []float32{1, 0}},
	}
	newEntries := []commonModels.IndexEntry{
		{Chunk: commonModels.DocChunk{ChunkId: "new-0"}, Vector: []float32{0, 1}},
		{Chunk: commonModels.DocChunk{ChunkId: "new-1"}, Vector: []float32{0, 1}},
	}
	if err := ix.Build(ctx, oldEntries); err != nil {
		t.Fatalf("initial Build failed: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			results, err := ix.Search([]float32{1, 1}, 2)
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
				return
			}
			generation := results[0].Entry.Chunk.ChunkId[:3]
			for _, r := range results {
				if r.Entry.Chunk.ChunkId[:3] != generation {
					select {
					case errCh <- fmt.Errorf("mixed snapshot observed: %s vs %s",
						results[0].Entry.Chunk.ChunkId, r.Entry.Chunk.ChunkId):
					default:
					}
					return
				}
			}
		}
	}()

	for i := 0; i < 10; i++ {
		if err := ix.Build(ctx, newEntries); err != nil {
			t.Fatalf("rebuild failed: %v", err)
		}
		if err := ix.Build(ctx, oldEntries); err != nil {
			t.Fatalf("rebuild failed: %v", err)
		}
	}
	close(stop)
	wg.Wait()

	select {
	case err := <-errCh:
		t.Fatal(err)
	default:
	}
}
