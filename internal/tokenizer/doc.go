// Package tokenizer provides text tokenization for retrieval and
// preprocessing pipelines.
//
// The tokenizer package implements several tokenization strategies:
//   - Encoder: byte-level BPE driven by externally trained resources
//     (encoder.json, vocab.bpe, dict.txt)
//   - WordTokenizer: whole-word tokenization over a corpus-built vocabulary,
//     with lowercasing, NFC normalization and optional Porter stemming
//   - TikToken: adapter over the OpenAI encodings (cl100k_base, p50k_base)
//
// All strategies share the Vocabulary type: a bidirectional symbol/index
// mapping with reserved special symbols (pad, bos, eos, unk) at the lowest
// indices. Looking up an unknown symbol yields the unk index, never an
// error.
//
// Example usage:
//
//	// Load the pretrained byte-level BPE
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
//
//	// Or build a word-level vocabulary from your own corpus
//	words := tokenizer.NewWordTokenizer(tokenizer.DefaultWordConfig())
//	words.Fit([]string{"some corpus text", "more corpus text"})
//	ids = words.Encode("corpus")
package tokenizer
