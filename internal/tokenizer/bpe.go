package tokenizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// wordSplitPattern is the GPT-2 pretokenizer: contractions, letter runs,
// number runs and punctuation runs, each with an optional leading space,
// then whitespace. Go's regexp has no lookahead, so runs of whitespace
// before a word stay attached to the whitespace alternative.
const wordSplitPattern = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+`

// bpeCacheSize bounds the word -> fragments LRU cache.
const bpeCacheSize = 8192

// Encoder implements byte-level Byte-Pair Encoding over externally trained
// resources: a subword table, ordered merge rules and a vocabulary.
//
// This is a pure Go implementation. Construct with NewEncoder or
// LoadPretrained; the zero value is not usable.
type Encoder struct {
	subwords map[string]int // subword -> vocabulary index, negative for placeholders
	decoder  map[int]string // vocabulary index -> subword
	merges   *MergeTable
	vocab    *Vocabulary
	splitter *regexp.Regexp
	cache    *lru.Cache
}

// NewEncoder creates an Encoder from a subword table, merge rules and a
// vocabulary.
//
// Non-negative subword table values are final vocabulary indices. A
// negative value is a special-symbol placeholder: the true index of such a
// subword is the negated value in decimal form, resolved against the
// vocabulary at tokenization time. Compose builds such tables from raw
// encoder files.
func NewEncoder(subwords map[string]int, merges *MergeTable, vocab *Vocabulary) *Encoder {
	decoder := make(map[int]string, len(subwords))
	for sub, id := range subwords {
		if id >= 0 {
			decoder[id] = sub
		}
	}

	// Size is positive and constant, so New cannot fail.
	cache, _ := lru.New(bpeCacheSize)

	return &Encoder{
		subwords: subwords,
		decoder:  decoder,
		merges:   merges,
		vocab:    vocab,
		splitter: regexp.MustCompile(wordSplitPattern),
		cache:    cache,
	}
}

// Bpe splits a single word into subword fragments by repeatedly applying
// the lowest-ranked merge rule until none applies.
//
// Runes below 256 are first mapped onto their printable representatives;
// runes outside the byte range are dropped. Each pass merges every
// non-overlapping occurrence of the winning pair, left to right.
func (e *Encoder) Bpe(word string) []string {
	if cached, ok := e.cache.Get(word); ok {
		return cached.([]string)
	}

	mapped := mapBytes(word)
	if mapped == "" {
		return nil
	}

	fragments := splitRunes(mapped)
	for len(fragments) > 1 {
		best, rank := e.lowestPair(fragments)
		if math.IsInf(rank, 1) {
			break
		}
		fragments = mergeFragments(fragments, best)
	}

	e.cache.Add(word, fragments)
	return fragments
}

// lowestPair returns the adjacent fragment pair with the lowest merge rank.
// Candidate pairs form a set in first-occurrence order, so the strict
// comparison keeps the earliest of equally ranked pairs.
func (e *Encoder) lowestPair(fragments []string) (MergePair, float64) {
	var best MergePair
	bestRank := math.Inf(1)
	seen := make(map[MergePair]struct{}, len(fragments))
	for i := 0; i+1 < len(fragments); i++ {
		p := MergePair{Left: fragments[i], Right: fragments[i+1]}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		if r := e.merges.Rank(p); r < bestRank {
			best = p
			bestRank = r
		}
	}
	return best, bestRank
}

// mergeFragments rewrites every non-overlapping occurrence of p in a single
// left-to-right pass.
func mergeFragments(fragments []string, p MergePair) []string {
	out := make([]string, 0, len(fragments))
	for i := 0; i < len(fragments); i++ {
		if i+1 < len(fragments) && fragments[i] == p.Left && fragments[i+1] == p.Right {
			out = append(out, p.Left+p.Right)
			i++ // Skip the right half, it is merged.
			continue
		}
		out = append(out, fragments[i])
	}
	return out
}

// mapBytes rewrites each rune of word onto its printable byte
// representative. Runes outside the byte range have no representative and
// are dropped.
func mapBytes(word string) string {
	var sb strings.Builder
	sb.Grow(len(word))
	for _, r := range word {
		if r < 256 {
			sb.WriteRune(byteRunes[byte(r)])
		}
	}
	return sb.String()
}

// splitRunes returns the runes of s as single-rune strings.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Encode converts text to token IDs using BPE.
//
// Text is quote-normalized, split into words with the pretokenizer pattern,
// byte-pair encoded per word and mapped through TokenID.
func (e *Encoder) Encode(text string) []int {
	if text == "" {
		return nil
	}

	var ids []int
	for _, word := range e.splitter.FindAllString(normalizeQuotes(text), -1) {
		for _, frag := range e.Bpe(word) {
			ids = append(ids, e.TokenID(frag))
		}
	}
	return ids
}

// Tokenize returns the subword fragments of text without mapping them to
// vocabulary indices.
func (e *Encoder) Tokenize(text string) []string {
	var out []string
	for _, word := range e.splitter.FindAllString(normalizeQuotes(text), -1) {
		out = append(out, e.Bpe(word)...)
	}
	return out
}

// normalizeQuotes rewrites the quote conventions of common evaluation
// corpora onto plain double quotes.
func normalizeQuotes(text string) string {
	text = strings.ReplaceAll(text, "``", `"`)
	text = strings.ReplaceAll(text, "''", `"`)
	return strings.ReplaceAll(text, `\"`, `"`)
}

// TokenID maps a single subword fragment to its vocabulary index.
//
// Fragments missing from the subword table yield the unk index. A negative
// table value is a placeholder whose true index is the negated value looked
// up in the vocabulary by its decimal form, so symbols registered after
// composition still resolve.
func (e *Encoder) TokenID(sub string) int {
	v, ok := e.subwords[sub]
	if !ok {
		return e.vocab.UnkID()
	}
	if v < 0 {
		return e.vocab.IndexOf(strconv.Itoa(-v))
	}
	return v
}

// Decode converts token IDs back to text.
//
// Reserved special indices are skipped, as are indices with no subword.
// The byte table inverse turns the leading-space marker back into a real
// space; runes with no inverse are dropped. The result is trimmed.
func (e *Encoder) Decode(ids []int) string {
	var mapped strings.Builder
	for _, id := range ids {
		if e.vocab.IsSpecial(id) {
			continue
		}
		if sub, ok := e.decoder[id]; ok {
			mapped.WriteString(sub)
		}
	}

	raw := make([]byte, 0, mapped.Len())
	for _, r := range mapped.String() {
		if b, ok := runeBytes[r]; ok {
			raw = append(raw, b)
		}
	}
	return strings.TrimSpace(string(raw))
}

// VocabSize returns the total vocabulary size.
func (e *Encoder) VocabSize() int {
	return e.vocab.Size()
}

// PadID returns the padding token ID.
func (e *Encoder) PadID() int { return e.vocab.PadID() }

// BosID returns the beginning-of-sequence token ID.
func (e *Encoder) BosID() int { return e.vocab.BosID() }

// EosID returns the end-of-sequence token ID.
func (e *Encoder) EosID() int { return e.vocab.EosID() }

// UnkID returns the unknown token ID.
func (e *Encoder) UnkID() int { return e.vocab.UnkID() }

// IsSpecial checks if a token ID is a reserved special token.
func (e *Encoder) IsSpecial(id int) bool { return e.vocab.IsSpecial(id) }

// Vocabulary returns the vocabulary the encoder resolves indices against.
func (e *Encoder) Vocabulary() *Vocabulary { return e.vocab }
