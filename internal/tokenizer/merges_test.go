package tokenizer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTable_Rank(t *testing.T) {
	table := NewMergeTable([]MergePair{
		{Left: "l", Right: "o"},
		{Left: "lo", Right: "w"},
	})

	assert.Equal(t, 2, table.Size())
	assert.Equal(t, 0.0, table.Rank(MergePair{Left: "l", Right: "o"}))
	assert.Equal(t, 1.0, table.Rank(MergePair{Left: "lo", Right: "w"}))

	// Absent pairs rank +Inf.
	assert.True(t, math.IsInf(table.Rank(MergePair{Left: "x", Right: "y"}), 1))
}

func TestMergeTable_DuplicateKeepsFirstRank(t *testing.T) {
	table := NewMergeTable([]MergePair{
		{Left: "a", Right: "b"},
		{Left: "c", Right: "d"},
		{Left: "a", Right: "b"},
	})

	assert.Equal(t, 2, table.Size())
	assert.Equal(t, 0.0, table.Rank(MergePair{Left: "a", Right: "b"}))
}

func TestLoadMerges(t *testing.T) {
	input := "#version: 0.2\nl o\nlo w\n\n"
	table, err := LoadMerges(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, table.Size())
	assert.Equal(t, 0.0, table.Rank(MergePair{Left: "l", Right: "o"}))
	assert.Equal(t, 1.0, table.Rank(MergePair{Left: "lo", Right: "w"}))
}

func TestLoadMerges_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "one field", input: "ab\n", line: 1},
		{name: "three fields", input: "a b\nx y z\n", line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMerges(strings.NewReader(tt.input))
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestLoadMergesFile_SetsPath(t *testing.T) {
	path := writeTempFile(t, "vocab.bpe", "#version: 0.2\nnot-a-pair\n")

	_, err := LoadMergesFile(path)
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
	assert.Equal(t, 2, pe.Line)
}
