package retrieval

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is one retrievable passage: free text plus an optional title.
type Document struct {
	Title   string `json:"title"`
	Context string `json:"context"`
}

// ScoredDocument pairs a corpus document with its similarity to a query.
type ScoredDocument struct {
	Document Document
	Index    int // Position in the corpus the selector was built over.
	Score    float64
}

// LoadDocuments reads a JSON corpus: an array of {"title", "context"}
// objects.
func LoadDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	return docs, nil
}
