package tokenizer

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations (Encoder, WordTokenizer, TikToken) must
// implement this interface.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) []int

	// Decode converts token IDs back to text.
	Decode(ids []int) string

	// VocabSize returns the total vocabulary size.
	VocabSize() int

	// PadID returns the padding token ID.
	// Returns -1 if not applicable.
	PadID() int

	// BosID returns the beginning-of-sequence token ID.
	// Returns -1 if not applicable.
	BosID() int

	// EosID returns the end-of-sequence token ID.
	// Returns -1 if not applicable.
	EosID() int

	// UnkID returns the unknown token ID.
	// Returns -1 if not applicable.
	UnkID() int

	// IsSpecial checks if a token ID is a reserved special token.
	IsSpecial(id int) bool
}
