// Package retrieval ranks a fixed document corpus against free-text
// queries using TF-IDF weighted cosine similarity.
//
// A Selector is built once over a corpus and a tokenizer; construction
// vectorizes every document, derives per-dimension document frequencies and
// flags stop words. Queries afterwards are read-only, so one Selector
// serves concurrent TopK calls.
//
// Scoring follows the classic scheme:
//   - term frequencies are max-normalized with a smoothing floor
//   - inverse document frequency dampens common terms
//   - titles blend into context vectors with a configurable weight
//   - stop-word dimensions are excluded from similarity entirely
//
// Example usage:
//
//	words := tokenizer.NewWordTokenizer(tokenizer.DefaultWordConfig())
//	words.Fit(texts)
//
//	sel := retrieval.NewSelector(words, docs, retrieval.DefaultConfig())
//	for _, hit := range sel.TopK("gulf stream climate", 3) {
//	    fmt.Println(hit.Score, hit.Document.Title)
//	}
package retrieval
