package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/subtext-ml/subtext/internal/resources"
)

// Default locations of the pretrained byte-level BPE resources.
const (
	DefaultEncoderURL = "https://dl.fbaipublicfiles.com/fairseq/gpt2_bpe/encoder.json"
	DefaultMergesURL  = "https://dl.fbaipublicfiles.com/fairseq/gpt2_bpe/vocab.bpe"
	DefaultVocabURL   = "https://dl.fbaipublicfiles.com/fairseq/gpt2_bpe/dict.txt"
)

// PretrainedConfig locates the three resource files of an externally
// trained byte-level BPE: the JSON subword table, the ordered merge rules
// and the vocabulary frequency file.
type PretrainedConfig struct {
	EncoderURL string
	MergesURL  string
	VocabURL   string

	// CacheDir receives downloaded copies; a later load reuses them without
	// touching the network. Empty selects a "subtext" directory under the
	// user cache dir.
	CacheDir string

	// Optional hex SHA-256 sums, verified when non-empty.
	EncoderSHA256 string
	MergesSHA256  string
	VocabSHA256   string

	// Specials names the reserved symbols of the composed vocabulary.
	Specials VocabConfig
}

// DefaultPretrainedConfig returns the standard GPT-2 resource trio with the
// default reserved symbols.
func DefaultPretrainedConfig() PretrainedConfig {
	return PretrainedConfig{
		EncoderURL: DefaultEncoderURL,
		MergesURL:  DefaultMergesURL,
		VocabURL:   DefaultVocabURL,
		Specials:   DefaultVocabConfig(),
	}
}

// LoadPretrained resolves the configured resources through the cache and
// composes them into an Encoder.
func LoadPretrained(cfg PretrainedConfig) (*Encoder, error) {
	fetcher := resources.NewFetcher(cfg.CacheDir)

	resolve := func(url, sha string, what string) (string, error) {
		path, err := fetcher.Resolve(url)
		if err != nil {
			return "", fmt.Errorf("%s: %w", what, err)
		}
		if sha != "" {
			if err := resources.Verify(path, sha); err != nil {
				return "", fmt.Errorf("%s: %w", what, err)
			}
		}
		return path, nil
	}

	encoderPath, err := resolve(cfg.EncoderURL, cfg.EncoderSHA256, "encoder resource")
	if err != nil {
		return nil, err
	}
	mergesPath, err := resolve(cfg.MergesURL, cfg.MergesSHA256, "merges resource")
	if err != nil {
		return nil, err
	}
	vocabPath, err := resolve(cfg.VocabURL, cfg.VocabSHA256, "vocabulary resource")
	if err != nil {
		return nil, err
	}

	return LoadFiles(encoderPath, mergesPath, vocabPath, cfg.Specials)
}

// LoadFiles composes an Encoder from local copies of the three resources.
func LoadFiles(encoderPath, mergesPath, vocabPath string, specials VocabConfig) (*Encoder, error) {
	raw, err := LoadEncoderFile(encoderPath)
	if err != nil {
		return nil, err
	}

	merges, err := LoadMergesFile(mergesPath)
	if err != nil {
		return nil, err
	}
	if merges.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", mergesPath, ErrNoMerges)
	}

	vocab, err := LoadVocabularyFile(vocabPath, specials)
	if err != nil {
		return nil, err
	}
	if vocab.Size() == vocab.NumSpecial() {
		return nil, fmt.Errorf("%s: %w", vocabPath, ErrEmptyVocabulary)
	}

	return Compose(raw, merges, vocab), nil
}

// LoadEncoderFile reads a JSON subword table mapping each subword to its
// raw encoder id.
func LoadEncoderFile(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder table: %w", err)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse encoder table %s: %w", path, err)
	}
	return raw, nil
}

// Compose rewrites a raw encoder table onto vocabulary indices and returns
// the Encoder.
//
// The vocabulary of a pretrained model stores the decimal form of each raw
// encoder id as its symbol. Subwords whose decimal form is present map
// straight to that index. The rest become negative placeholders and resolve
// against the vocabulary at tokenization time, so special symbols added
// after composition still land on their final index.
func Compose(raw map[string]int, merges *MergeTable, vocab *Vocabulary) *Encoder {
	subwords := make(map[string]int, len(raw))
	for sub, src := range raw {
		if idx, ok := vocab.Lookup(strconv.Itoa(src)); ok {
			subwords[sub] = idx
			continue
		}
		if src > 0 {
			subwords[sub] = -src
		}
		// A raw id of 0 with no vocabulary slot keeps the unk fallback.
	}
	return NewEncoder(subwords, merges, vocab)
}
