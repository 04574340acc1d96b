package retrieval

import (
	"fmt"
	"math"
	"sort"

	"github.com/subtext-ml/subtext/internal/parallel"
)

// Tokenizer is the slice of the tokenizer surface the selector needs: a way
// to turn text into vocabulary indices and the size of the index space.
type Tokenizer interface {
	Encode(text string) []int
	VocabSize() int
}

// Config tunes selector construction and scoring.
type Config struct {
	// TopStopWords flags the N most frequent corpus tokens as stop words.
	// Zero disables frequency-rank stop words.
	TopStopWords int

	// StopDocFraction flags tokens present in more than this fraction of
	// the documents as stop words. Zero disables the document-frequency
	// criterion.
	StopDocFraction float64

	// Smoothing is the max-normalization floor for document term
	// frequencies: tf = Smoothing + (1-Smoothing)*freq/maxFreq. Zero keeps
	// raw counts.
	Smoothing float64

	// TitleWeight blends a document's title vector into its context vector;
	// the context keeps the remainder. Zero ignores titles.
	TitleWeight float64

	// SmoothIDF selects 1+ln((1+N)/(1+df)) over 1+ln(N/df).
	SmoothIDF bool

	// Parallel controls the one-time corpus vectorization fan-out.
	Parallel parallel.Config
}

// DefaultConfig returns the standard selector settings.
func DefaultConfig() Config {
	return Config{
		TopStopWords:    100,
		StopDocFraction: 0.5,
		Smoothing:       0.4,
		TitleWeight:     0.35,
		SmoothIDF:       true,
		Parallel:        parallel.DefaultConfig(),
	}
}

// Selector ranks a fixed corpus by TF-IDF cosine similarity.
//
// All document vectors are computed at construction and never change
// afterwards. Queries do not mutate selector state, so a single Selector is
// safe for concurrent TopK calls.
type Selector struct {
	tok  Tokenizer
	docs []Document
	cfg  Config

	dims    int
	idf     []float64
	stop    []bool
	vectors [][]float64
}

// NewSelector vectorizes docs over tok's index space and returns a ready
// Selector.
func NewSelector(tok Tokenizer, docs []Document, cfg Config) *Selector {
	s := &Selector{
		tok:  tok,
		docs: docs,
		cfg:  cfg,
		dims: tok.VocabSize(),
	}
	s.build()
	return s
}

// Len returns the corpus size.
func (s *Selector) Len() int { return len(s.docs) }

// Document returns the corpus document at index i.
func (s *Selector) Document(i int) Document { return s.docs[i] }

// build runs the one-time construction pass: per-field term counts,
// document frequencies, the stop-word mask, IDF weights and finally the
// blended per-document vectors.
func (s *Selector) build() {
	n := len(s.docs)
	titleCounts := make([][]float64, n)
	contextCounts := make([][]float64, n)
	parallel.ForBatch(n, 2, func(i, field int) {
		if field == 0 {
			titleCounts[i] = s.termCounts(s.docs[i].Title)
		} else {
			contextCounts[i] = s.termCounts(s.docs[i].Context)
		}
	}, s.cfg.Parallel)

	// A term counts toward document frequency when either field has it.
	df := make([]float64, s.dims)
	total := make([]float64, s.dims)
	for i := 0; i < n; i++ {
		for t := 0; t < s.dims; t++ {
			c := titleCounts[i][t] + contextCounts[i][t]
			if c > 0 {
				df[t]++
				total[t] += c
			}
		}
	}

	s.stop = stopWordMask(total, df, n, s.cfg)
	s.idf = idfWeights(df, n, s.cfg.SmoothIDF)

	s.vectors = make([][]float64, n)
	parallel.For(n, func(i int) {
		vec := s.weigh(contextCounts[i])
		if s.cfg.TitleWeight > 0 && s.docs[i].Title != "" {
			title := s.weigh(titleCounts[i])
			w := s.cfg.TitleWeight
			for t := range vec {
				vec[t] = w*title[t] + (1-w)*vec[t]
			}
		}
		s.vectors[i] = vec
	}, s.cfg.Parallel)
}

// termCounts tallies the token IDs of text into a dense vector. IDs outside
// the vocabulary range are ignored.
func (s *Selector) termCounts(text string) []float64 {
	counts := make([]float64, s.dims)
	if text == "" {
		return counts
	}
	for _, id := range s.tok.Encode(text) {
		if id >= 0 && id < s.dims {
			counts[id]++
		}
	}
	return counts
}

// weigh turns raw term counts into TF-IDF weights. A non-zero smoothing
// floor max-normalizes the frequencies first.
func (s *Selector) weigh(counts []float64) []float64 {
	out := make([]float64, len(counts))

	maxFreq := 0.0
	for _, c := range counts {
		if c > maxFreq {
			maxFreq = c
		}
	}

	for t, c := range counts {
		if c == 0 {
			continue
		}
		tf := c
		if s.cfg.Smoothing > 0 && maxFreq > 0 {
			tf = s.cfg.Smoothing + (1-s.cfg.Smoothing)*c/maxFreq
		}
		out[t] = tf * s.idf[t]
	}
	return out
}

// stopWordMask flags the TopStopWords most frequent corpus tokens and any
// token present in more than StopDocFraction of the documents. Stop words
// stay in the vectors; they are excluded from similarity scoring only.
func stopWordMask(total, df []float64, numDocs int, cfg Config) []bool {
	mask := make([]bool, len(total))

	if cfg.TopStopWords > 0 {
		order := make([]int, len(total))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return total[order[a]] > total[order[b]]
		})
		top := min(cfg.TopStopWords, len(order))
		for _, t := range order[:top] {
			if total[t] > 0 {
				mask[t] = true
			}
		}
	}

	if cfg.StopDocFraction > 0 {
		limit := cfg.StopDocFraction * float64(numDocs)
		for t := range df {
			if df[t] > limit {
				mask[t] = true
			}
		}
	}
	return mask
}

// idfWeights computes per-dimension inverse document frequency. The
// unsmoothed variant floors df at one so never-seen terms stay finite.
func idfWeights(df []float64, numDocs int, smooth bool) []float64 {
	out := make([]float64, len(df))
	if numDocs == 0 {
		return out
	}

	n := float64(numDocs)
	for t, d := range df {
		if smooth {
			out[t] = 1 + math.Log((1+n)/(1+d))
			continue
		}
		if d < 1 {
			d = 1
		}
		out[t] = 1 + math.Log(n/d)
	}
	return out
}

// queryVector computes the TF-IDF weights of a query. Queries are short, so
// raw frequencies are kept without the max-normalization floor.
func (s *Selector) queryVector(query string) []float64 {
	counts := s.termCounts(query)
	out := make([]float64, len(counts))
	for t, c := range counts {
		if c > 0 {
			out[t] = c * s.idf[t]
		}
	}
	return out
}

// TopK returns the documents most similar to query, best first, at most
// min(k, corpus size) of them. Equal scores keep corpus order.
func (s *Selector) TopK(query string, k int) []ScoredDocument {
	if k <= 0 || len(s.docs) == 0 {
		return nil
	}

	q := s.queryVector(query)
	scored := make([]ScoredDocument, len(s.docs))
	for i := range s.docs {
		scored[i] = ScoredDocument{
			Document: s.docs[i],
			Index:    i,
			Score:    maskedCosine(q, s.vectors[i], s.stop),
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	return scored[:min(k, len(scored))]
}

// maskedCosine is cosine similarity after dividing each vector by its own
// maximum component, with stop dimensions excluded from the dot product and
// both norms.
//
// Both sides always come from the same vocabulary, so a length mismatch is
// a programming error and panics.
func maskedCosine(q, d []float64, stop []bool) float64 {
	if len(q) != len(d) {
		panic(fmt.Sprintf("retrieval: vector length mismatch: %d != %d", len(q), len(d)))
	}

	qmax := maxComponent(q)
	dmax := maxComponent(d)
	if qmax == 0 || dmax == 0 {
		return 0
	}

	var dot, qnorm, dnorm float64
	for t := range q {
		if stop != nil && stop[t] {
			continue
		}
		qv := q[t] / qmax
		dv := d[t] / dmax
		dot += qv * dv
		qnorm += qv * qv
		dnorm += dv * dv
	}
	if qnorm == 0 || dnorm == 0 {
		return 0
	}
	return dot / (math.Sqrt(qnorm) * math.Sqrt(dnorm))
}

// maxComponent returns the largest component of v, or 0 for an all-zero
// vector.
func maxComponent(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	return m
}
