package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

func TestLoadDirectory_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "documents")

	docs, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory was not created: %v", err)
	}
}

func TestLoadDirectory_ReadsTextFiles(t *testing.T) {
	dir := t.TempDir()
	content := "Use SPF daily. Avoid harsh scrubs."
	if err := os.WriteFile(filepath.Join(dir, "data.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// unsupported files are skipped, not fatal
	if err := os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89, 0x50}, 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	doc := docs[0]
	if doc.Name != "data.txt" || doc.Content != content {
		t.Errorf("document mismatch: %+v", doc)
	}
	if doc.Metadata["source"] == "" {
		t.Error("document missing source metadata")
	}
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected commonModels.DocType
	}{
		{"data.txt", commonModels.TXT},
		{"notes.md", commonModels.TXT},
		{"guide.pdf", commonModels.PDF},
		{"DOC.DOCX", commonModels.DOCX},
		{"old.rtf", commonModels.DOCX},
		{"image.png", commonModels.ERR},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}
