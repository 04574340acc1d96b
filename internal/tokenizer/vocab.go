package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Default surface forms of the reserved special symbols.
const (
	PadSymbol  = "<pad>"
	BosSymbol  = "<s>"
	EosSymbol  = "</s>"
	UnkSymbol  = "<unk>"
	MaskSymbol = "<mask>"
)

// VocabConfig names the reserved special symbols of a Vocabulary.
//
// Empty Pad/Bos/Eos/Unk fields fall back to the defaults. Mask is optional
// and disabled when empty.
type VocabConfig struct {
	Pad  string
	Bos  string
	Eos  string
	Unk  string
	Mask string
}

// DefaultVocabConfig returns the four standard reserved symbols with the
// mask symbol disabled.
func DefaultVocabConfig() VocabConfig {
	return VocabConfig{Pad: PadSymbol, Bos: BosSymbol, Eos: EosSymbol, Unk: UnkSymbol}
}

// Vocabulary is a bidirectional mapping between string symbols and dense
// integer indices.
//
// Indices are assigned in insertion order starting at zero, so the reserved
// special symbols always occupy the lowest indices. Every symbol carries an
// accumulated frequency count. Lookups of unknown symbols resolve to the
// unk index, never to an error.
type Vocabulary struct {
	symbols []string
	counts  []int64
	indices map[string]int

	padIndex   int
	bosIndex   int
	eosIndex   int
	unkIndex   int
	maskIndex  int
	numSpecial int
}

// NewVocabulary creates a vocabulary holding only the reserved special
// symbols from cfg.
func NewVocabulary(cfg VocabConfig) *Vocabulary {
	if cfg.Pad == "" {
		cfg.Pad = PadSymbol
	}
	if cfg.Bos == "" {
		cfg.Bos = BosSymbol
	}
	if cfg.Eos == "" {
		cfg.Eos = EosSymbol
	}
	if cfg.Unk == "" {
		cfg.Unk = UnkSymbol
	}

	v := &Vocabulary{
		indices:   make(map[string]int),
		maskIndex: -1,
	}
	v.padIndex = v.AddSymbol(cfg.Pad, 0)
	v.bosIndex = v.AddSymbol(cfg.Bos, 0)
	v.eosIndex = v.AddSymbol(cfg.Eos, 0)
	v.unkIndex = v.AddSymbol(cfg.Unk, 0)
	if cfg.Mask != "" {
		v.maskIndex = v.AddSymbol(cfg.Mask, 0)
	}
	v.numSpecial = len(v.symbols)
	return v
}

// AddSymbol registers sym with the given frequency count and returns its
// index. Adding an existing symbol accumulates the count onto it and keeps
// the original index.
func (v *Vocabulary) AddSymbol(sym string, count int64) int {
	if idx, ok := v.indices[sym]; ok {
		v.counts[idx] += count
		return idx
	}
	idx := len(v.symbols)
	v.indices[sym] = idx
	v.symbols = append(v.symbols, sym)
	v.counts = append(v.counts, count)
	return idx
}

// IndexOf returns the index of sym, or the unk index when sym is unknown.
func (v *Vocabulary) IndexOf(sym string) int {
	if idx, ok := v.indices[sym]; ok {
		return idx
	}
	return v.unkIndex
}

// Lookup returns the index of sym and whether the symbol is present.
func (v *Vocabulary) Lookup(sym string) (int, bool) {
	idx, ok := v.indices[sym]
	return idx, ok
}

// Symbol returns the surface form at id, or "" when id is out of range.
func (v *Vocabulary) Symbol(id int) string {
	if id < 0 || id >= len(v.symbols) {
		return ""
	}
	return v.symbols[id]
}

// Count returns the accumulated frequency count at id, or 0 when id is out
// of range.
func (v *Vocabulary) Count(id int) int64 {
	if id < 0 || id >= len(v.counts) {
		return 0
	}
	return v.counts[id]
}

// Size returns the number of symbols, reserved specials included.
func (v *Vocabulary) Size() int { return len(v.symbols) }

// NumSpecial returns how many reserved special symbols were registered at
// construction.
func (v *Vocabulary) NumSpecial() int { return v.numSpecial }

// PadID returns the padding symbol index.
func (v *Vocabulary) PadID() int { return v.padIndex }

// BosID returns the beginning-of-sequence symbol index.
func (v *Vocabulary) BosID() int { return v.bosIndex }

// EosID returns the end-of-sequence symbol index.
func (v *Vocabulary) EosID() int { return v.eosIndex }

// UnkID returns the unknown symbol index.
func (v *Vocabulary) UnkID() int { return v.unkIndex }

// MaskID returns the mask symbol index, or -1 when no mask symbol was
// configured.
func (v *Vocabulary) MaskID() int { return v.maskIndex }

// IsSpecial reports whether id is one of the reserved special indices.
func (v *Vocabulary) IsSpecial(id int) bool {
	return id >= 0 && id < v.numSpecial
}

// LoadVocabulary reads "<symbol> <count>" lines into a fresh vocabulary
// seeded with the reserved specials from cfg. The split is on the last
// space, so symbols may themselves contain spaces. Blank lines are skipped.
func LoadVocabulary(r io.Reader, cfg VocabConfig) (*Vocabulary, error) {
	v := NewVocabulary(cfg)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n ")
		if text == "" {
			continue
		}
		cut := strings.LastIndexByte(text, ' ')
		if cut <= 0 {
			return nil, &ParseError{Line: line, Text: text, Reason: `want "<symbol> <count>"`}
		}
		count, err := strconv.ParseInt(text[cut+1:], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Reason: "count is not an integer"}
		}
		v.AddSymbol(text[:cut], count)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return v, nil
}

// LoadVocabularyFile reads a vocabulary frequency file from disk.
func LoadVocabularyFile(path string, cfg VocabConfig) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer f.Close()

	v, err := LoadVocabulary(f, cfg)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return v, nil
}
