package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

// LoadDirectory reads every supported document in dir, non-recursively.
// A missing directory is created empty and yields zero documents - the
// pipeline reports that as NoDocumentsFound, not as an error.
func LoadDirectory(dir string) ([]commonModels.Document, error) {
	logger := logger_i.NewLogger("DocumentLoader")

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Warn("Documents directory missing, creating it empty", "dir", dir)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating documents directory: %w", err)
		}
		return nil, nil
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading documents directory: %w", err)
	}

	var documents []commonModels.Document
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		docType := getDocType(path)
		if docType == commonModels.ERR {
			logger.Debug("Skipping unsupported file", "path", path)
			continue
		}

		content, err := extractText(path, docType)
		if err != nil {
			logger.Error("Error extracting document content", "path", path, "error", err)
			return nil, err
		}

		documents = append(documents, commonModels.Document{
			Path:     path,
			Name:     de.Name(),
			Content:  content,
			Metadata: map[string]string{"source": path},
		})
	}
	logger.Info("Loaded documents", "count", len(documents), "dir", dir)
	return documents, nil
}

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".txt", ".md":
		return commonModels.TXT
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

func extractText(path string, contentType commonModels.DocType) (string, error) {
	switch contentType {
	case commonModels.TXT:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX:
		return extractDocxOdtRtf(path)
	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}
}
