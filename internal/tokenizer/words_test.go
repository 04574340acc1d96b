package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordTokenizer_Fit(t *testing.T) {
	w := NewWordTokenizer(DefaultWordConfig())
	w.Fit([]string{"the cat sat", "the cat ran"})

	vocab := w.Vocabulary()
	// "the", "cat", "sat"/"ran" stems, plus 4 specials.
	assert.Equal(t, 8, vocab.Size())

	idx, ok := vocab.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, int64(2), vocab.Count(idx))
}

func TestWordTokenizer_EncodeKnownAndUnknown(t *testing.T) {
	w := NewWordTokenizer(DefaultWordConfig())
	w.Fit([]string{"cat dog"})

	ids := w.Encode("cat fish")
	require.Len(t, ids, 2)
	assert.NotEqual(t, w.UnkID(), ids[0])
	assert.Equal(t, w.UnkID(), ids[1])
}

func TestWordTokenizer_StemmingCollapsesVariants(t *testing.T) {
	w := NewWordTokenizer(DefaultWordConfig())
	w.Fit([]string{"running"})

	// Porter stemming maps inflected forms onto one symbol.
	running := w.Encode("running")
	runs := w.Encode("runs")
	require.Len(t, running, 1)
	require.Len(t, runs, 1)
	assert.Equal(t, running[0], runs[0])
	assert.NotEqual(t, w.UnkID(), runs[0])
}

func TestWordTokenizer_NoStemming(t *testing.T) {
	cfg := DefaultWordConfig()
	cfg.Stem = false
	w := NewWordTokenizer(cfg)
	w.Fit([]string{"running"})

	ids := w.Encode("runs")
	require.Len(t, ids, 1)
	assert.Equal(t, w.UnkID(), ids[0])
}

func TestWordTokenizer_Lowercases(t *testing.T) {
	w := NewWordTokenizer(DefaultWordConfig())
	w.Fit([]string{"Gulf Stream"})

	upper := w.Encode("GULF")
	lower := w.Encode("gulf")
	require.Len(t, upper, 1)
	assert.Equal(t, lower, upper)
}

func TestWordTokenizer_MinLength(t *testing.T) {
	w := NewWordTokenizer(DefaultWordConfig())

	// Single-rune tokens are dropped before stemming.
	ids := w.Encode("a I x")
	assert.Empty(t, ids)
}

func TestWordTokenizer_SplitsOnPunctuation(t *testing.T) {
	w := NewWordTokenizer(WordConfig{MinLength: 2})
	w.Fit([]string{"salt-water, ocean."})

	assert.Len(t, w.Encode("salt water ocean"), 3)
	assert.NotContains(t, w.Encode("salt"), w.UnkID())
}

func TestWordTokenizer_Decode(t *testing.T) {
	w := NewWordTokenizer(WordConfig{MinLength: 2})
	w.Fit([]string{"ocean current"})

	ids := w.Encode("ocean current")
	assert.Equal(t, "ocean current", w.Decode(ids))
}

func TestWordTokenizer_DecodeSkipsSpecials(t *testing.T) {
	w := NewWordTokenizer(WordConfig{MinLength: 2})
	w.Fit([]string{"ocean"})

	ids := append([]int{w.BosID()}, w.Encode("ocean")...)
	ids = append(ids, w.EosID())
	assert.Equal(t, "ocean", w.Decode(ids))
}

func TestWordTokenizer_FitAccumulates(t *testing.T) {
	w := NewWordTokenizer(WordConfig{MinLength: 2})
	w.Fit([]string{"ocean"})
	w.Fit([]string{"ocean"})

	idx, ok := w.Vocabulary().Lookup("ocean")
	require.True(t, ok)
	assert.Equal(t, int64(2), w.Vocabulary().Count(idx))
}
