package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// encodingCL100kBase is the encoding name for GPT-4 and GPT-3.5-turbo.
	encodingCL100kBase = "cl100k_base"
	// encodingP50kBase is the encoding name for GPT-3.
	encodingP50kBase = "p50k_base"
	// encodingR50kBase is the encoding name for older GPT-3 models.
	encodingR50kBase = "r50k_base"
)

// TikToken wraps the pkoukk/tiktoken-go library for OpenAI tokenizers, so
// their vocabularies plug into the same retrieval pipeline as the
// byte-level Encoder.
//
// Supported encodings:
//   - cl100k_base: GPT-4, GPT-3.5-turbo, text-embedding-ada-002
//   - p50k_base: GPT-3, Codex
//   - r50k_base: GPT-3, davinci-002, babbage-002
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// NewTikTokenForModel creates a TikToken tokenizer for a specific model.
//
// Example models: "gpt-4", "gpt-3.5-turbo", "text-embedding-ada-002".
func NewTikTokenForModel(modelName string) (*TikToken, error) {
	encoding, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken for model %q: %w", modelName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     modelName,
	}, nil
}

// Encode converts text to token IDs.
func (t *TikToken) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Decode converts token IDs back to text.
func (t *TikToken) Decode(ids []int) string {
	return t.encoding.Decode(ids)
}

// VocabSize returns the total vocabulary size.
func (t *TikToken) VocabSize() int {
	// tiktoken-go doesn't expose vocab size directly.
	switch t.name {
	case encodingCL100kBase:
		return 100256 // Actual vocab size for cl100k_base
	case encodingP50kBase, encodingR50kBase:
		return 50257 // Actual vocab size for p50k_base
	default:
		return 100000 // Conservative default
	}
}

// PadID returns the padding token ID.
// tiktoken doesn't define a padding token, returns -1.
func (t *TikToken) PadID() int {
	return -1
}

// BosID returns the beginning-of-sequence token ID.
// tiktoken doesn't use BOS tokens, returns -1.
func (t *TikToken) BosID() int {
	return -1
}

// EosID returns the end-of-sequence token ID.
// tiktoken uses <|endoftext|>.
func (t *TikToken) EosID() int {
	switch t.name {
	case encodingCL100kBase:
		return 100257 // <|endoftext|> for cl100k_base
	case encodingP50kBase, encodingR50kBase:
		return 50256 // <|endoftext|> for p50k_base
	default:
		return -1
	}
}

// UnkID returns the unknown token ID.
// tiktoken handles unknown input via byte fallback, returns -1.
func (t *TikToken) UnkID() int {
	return -1
}

// IsSpecial checks if a token ID is a special token.
//
// For tiktoken, special tokens are primarily <|endoftext|> and role markers.
func (t *TikToken) IsSpecial(id int) bool {
	if id >= 0 && id == t.EosID() {
		return true
	}

	// cl100k_base special tokens: 100256-100276 (ChatML tokens).
	if t.name == encodingCL100kBase && id >= 100256 && id <= 100276 {
		return true
	}

	return false
}

// Name returns the tokenizer name.
func (t *TikToken) Name() string {
	return t.name
}
