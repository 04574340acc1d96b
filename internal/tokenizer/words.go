package tokenizer

import (
	"regexp"
	"strings"

	"github.com/reiver/go-porterstemmer"
	"golang.org/x/text/unicode/norm"
)

// WordConfig controls the word-level analysis pipeline.
type WordConfig struct {
	// Stem reduces tokens to their Porter stems.
	Stem bool
	// MinLength drops tokens shorter than this many runes before stemming.
	MinLength int
	// Specials names the reserved symbols of the corpus vocabulary.
	Specials VocabConfig
}

// DefaultWordConfig returns the standard analysis pipeline: stemming on,
// single-rune tokens dropped.
func DefaultWordConfig() WordConfig {
	return WordConfig{Stem: true, MinLength: 2, Specials: DefaultVocabConfig()}
}

// nonWord splits on anything that is neither a letter nor a number.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// WordTokenizer is a whole-word tokenizer over a corpus-built vocabulary.
//
// It is the retrieval-side alternative to the byte-level Encoder for
// corpora without an externally trained subword table. Analysis lowercases,
// NFC-normalizes, splits on non-alphanumerics and optionally Porter-stems.
// Fit builds the vocabulary; unknown tokens encode to the unk index.
type WordTokenizer struct {
	vocab *Vocabulary
	cfg   WordConfig
}

// NewWordTokenizer creates a tokenizer with an empty vocabulary. Call Fit
// to build one from a corpus before encoding.
func NewWordTokenizer(cfg WordConfig) *WordTokenizer {
	if cfg.MinLength <= 0 {
		cfg.MinLength = 1
	}
	return &WordTokenizer{vocab: NewVocabulary(cfg.Specials), cfg: cfg}
}

// Fit registers every analyzed token of texts in the vocabulary, counting
// corpus frequency as it goes. Fit may be called more than once; counts
// accumulate.
func (w *WordTokenizer) Fit(texts []string) {
	for _, text := range texts {
		for _, tok := range w.analyze(text) {
			w.vocab.AddSymbol(tok, 1)
		}
	}
}

// analyze runs the normalization pipeline and returns analyzed tokens.
func (w *WordTokenizer) analyze(text string) []string {
	text = norm.NFC.String(strings.ToLower(text))

	var out []string
	for _, tok := range nonWord.Split(text, -1) {
		if len([]rune(tok)) < w.cfg.MinLength {
			continue
		}
		if w.cfg.Stem {
			tok = stemToken(tok)
		}
		out = append(out, tok)
	}
	return out
}

// stemToken applies the Porter stemmer. The stemmer panics on some unusual
// input; those tokens keep their raw form.
func stemToken(tok string) (stemmed string) {
	stemmed = tok
	defer func() {
		_ = recover()
	}()
	if s := porterstemmer.StemString(tok); s != "" {
		stemmed = s
	}
	return stemmed
}

// Encode converts text to token IDs. Unknown tokens map to the unk index.
func (w *WordTokenizer) Encode(text string) []int {
	toks := w.analyze(text)
	ids := make([]int, 0, len(toks))
	for _, tok := range toks {
		ids = append(ids, w.vocab.IndexOf(tok))
	}
	return ids
}

// Decode renders token IDs as space-joined symbols. The analysis pipeline
// is lossy, so this is a readable rendering rather than the original text.
func (w *WordTokenizer) Decode(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if w.vocab.IsSpecial(id) {
			continue
		}
		if sym := w.vocab.Symbol(id); sym != "" {
			parts = append(parts, sym)
		}
	}
	return strings.Join(parts, " ")
}

// VocabSize returns the total vocabulary size.
func (w *WordTokenizer) VocabSize() int { return w.vocab.Size() }

// PadID returns the padding token ID.
func (w *WordTokenizer) PadID() int { return w.vocab.PadID() }

// BosID returns the beginning-of-sequence token ID.
func (w *WordTokenizer) BosID() int { return w.vocab.BosID() }

// EosID returns the end-of-sequence token ID.
func (w *WordTokenizer) EosID() int { return w.vocab.EosID() }

// UnkID returns the unknown token ID.
func (w *WordTokenizer) UnkID() int { return w.vocab.UnkID() }

// IsSpecial checks if a token ID is a reserved special token.
func (w *WordTokenizer) IsSpecial(id int) bool { return w.vocab.IsSpecial(id) }

// Vocabulary exposes the corpus-built vocabulary.
func (w *WordTokenizer) Vocabulary() *Vocabulary { return w.vocab }
