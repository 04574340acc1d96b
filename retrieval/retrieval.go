// Package retrieval provides TF-IDF document selection for the subtext
// retrieval toolkit.
//
// This package wraps the internal retrieval implementation and provides a
// clean public API for ranking a fixed document corpus against free-text
// queries.
//
// Example usage:
//
//	import (
//	    "github.com/subtext-ml/subtext/retrieval"
//	    "github.com/subtext-ml/subtext/tokenizer"
//	)
//
//	words := tokenizer.NewWordTokenizer(tokenizer.DefaultWordConfig())
//	words.Fit(texts)
//
//	sel := retrieval.NewSelector(words, docs, retrieval.DefaultConfig())
//	for _, hit := range sel.TopK("gulf stream climate", 3) {
//	    fmt.Println(hit.Score, hit.Document.Title)
//	}
package retrieval

import (
	"github.com/subtext-ml/subtext/internal/retrieval"
)

// Tokenizer is the slice of the tokenizer surface the selector needs.
type Tokenizer = retrieval.Tokenizer

// Document is one retrievable passage: free text plus an optional title.
type Document = retrieval.Document

// ScoredDocument pairs a corpus document with its similarity to a query.
type ScoredDocument = retrieval.ScoredDocument

// Config tunes selector construction and scoring.
type Config = retrieval.Config

// Selector ranks a fixed corpus by TF-IDF cosine similarity. It is safe for
// concurrent TopK calls once built.
type Selector = retrieval.Selector

// DefaultConfig returns the standard selector settings.
func DefaultConfig() Config {
	return retrieval.DefaultConfig()
}

// NewSelector vectorizes docs over tok's index space and returns a ready
// Selector.
func NewSelector(tok Tokenizer, docs []Document, cfg Config) *Selector {
	return retrieval.NewSelector(tok, docs, cfg)
}

// LoadDocuments reads a JSON corpus: an array of {"title", "context"}
// objects.
func LoadDocuments(path string) ([]Document, error) {
	return retrieval.LoadDocuments(path)
}
