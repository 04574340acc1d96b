// Package tokenizer provides text tokenization for the subtext retrieval
// toolkit.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API for tokenization tasks.
//
// Supported tokenizers:
//   - Encoder: byte-level BPE from pretrained resources (GPT-2 family)
//   - WordTokenizer: whole-word vocabulary built from your own corpus
//   - TikToken: OpenAI BPE tokenizers (GPT-3, GPT-4)
//
// Example usage:
//
//	import "github.com/subtext-ml/subtext/tokenizer"
//
//	// Load the pretrained byte-level BPE (cached after the first run)
//	enc, err := tokenizer.LoadPretrained(tokenizer.DefaultPretrainedConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text
//	ids := enc.Encode("Hello, world!")
//
//	// Decode ids
//	text := enc.Decode(ids)
package tokenizer

import (
	"github.com/subtext-ml/subtext/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations must implement this interface.
type Tokenizer = tokenizer.Tokenizer

// Vocabulary is a bidirectional mapping between string symbols and dense
// integer indices, with reserved special symbols at the lowest indices.
type Vocabulary = tokenizer.Vocabulary

// VocabConfig names the reserved special symbols of a Vocabulary.
type VocabConfig = tokenizer.VocabConfig

// Encoder implements byte-level Byte-Pair Encoding over externally trained
// resources.
type Encoder = tokenizer.Encoder

// MergePair is a pair of adjacent subword fragments subject to a learned
// merge rule.
type MergePair = tokenizer.MergePair

// MergeTable holds the ordered merge rules of an externally trained BPE.
type MergeTable = tokenizer.MergeTable

// WordTokenizer is a whole-word tokenizer over a corpus-built vocabulary.
type WordTokenizer = tokenizer.WordTokenizer

// WordConfig controls the word-level analysis pipeline.
type WordConfig = tokenizer.WordConfig

// PretrainedConfig locates the resource files of a pretrained byte-level
// BPE.
type PretrainedConfig = tokenizer.PretrainedConfig

// ParseError provides detailed information about a malformed line in a
// vocabulary or merge file.
type ParseError = tokenizer.ParseError

// Common errors.
var (
	ErrEmptyVocabulary = tokenizer.ErrEmptyVocabulary
	ErrNoMerges        = tokenizer.ErrNoMerges
)

// Default surface forms of the reserved special symbols.
const (
	PadSymbol  = tokenizer.PadSymbol
	BosSymbol  = tokenizer.BosSymbol
	EosSymbol  = tokenizer.EosSymbol
	UnkSymbol  = tokenizer.UnkSymbol
	MaskSymbol = tokenizer.MaskSymbol
)

// DefaultVocabConfig returns the four standard reserved symbols with the
// mask symbol disabled.
func DefaultVocabConfig() VocabConfig {
	return tokenizer.DefaultVocabConfig()
}

// NewVocabulary creates a vocabulary holding only the reserved special
// symbols from cfg.
func NewVocabulary(cfg VocabConfig) *Vocabulary {
	return tokenizer.NewVocabulary(cfg)
}

// LoadVocabularyFile reads a "<symbol> <count>" vocabulary file from disk.
func LoadVocabularyFile(path string, cfg VocabConfig) (*Vocabulary, error) {
	return tokenizer.LoadVocabularyFile(path, cfg)
}

// NewMergeTable builds a merge table from rules in rank order.
func NewMergeTable(rules []MergePair) *MergeTable {
	return tokenizer.NewMergeTable(rules)
}

// LoadMergesFile reads a merge rule file from disk.
func LoadMergesFile(path string) (*MergeTable, error) {
	return tokenizer.LoadMergesFile(path)
}

// NewEncoder creates an Encoder from a subword table, merge rules and a
// vocabulary.
func NewEncoder(subwords map[string]int, merges *MergeTable, vocab *Vocabulary) *Encoder {
	return tokenizer.NewEncoder(subwords, merges, vocab)
}

// DefaultPretrainedConfig returns the standard GPT-2 resource trio with the
// default reserved symbols.
func DefaultPretrainedConfig() PretrainedConfig {
	return tokenizer.DefaultPretrainedConfig()
}

// LoadPretrained resolves the configured resources through the cache and
// composes them into an Encoder.
func LoadPretrained(cfg PretrainedConfig) (*Encoder, error) {
	return tokenizer.LoadPretrained(cfg)
}

// LoadFiles composes an Encoder from local copies of the three pretrained
// resources.
func LoadFiles(encoderPath, mergesPath, vocabPath string, specials VocabConfig) (*Encoder, error) {
	return tokenizer.LoadFiles(encoderPath, mergesPath, vocabPath, specials)
}

// DefaultWordConfig returns the standard word analysis pipeline settings.
func DefaultWordConfig() WordConfig {
	return tokenizer.DefaultWordConfig()
}

// NewWordTokenizer creates a word tokenizer with an empty vocabulary. Call
// Fit to build one from a corpus before encoding.
func NewWordTokenizer(cfg WordConfig) *WordTokenizer {
	return tokenizer.NewWordTokenizer(cfg)
}

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (Tokenizer, error) {
	return tokenizer.NewTikToken(encodingName)
}

// NewTikTokenForModel creates a TikToken tokenizer for a specific model.
//
// Example models: "gpt-4", "gpt-3.5-turbo", "text-embedding-ada-002".
func NewTikTokenForModel(modelName string) (Tokenizer, error) {
	return tokenizer.NewTikTokenForModel(modelName)
}
