package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// MergePair is a pair of adjacent subword fragments subject to a learned
// merge rule.
type MergePair struct {
	Left  string
	Right string
}

// MergeTable holds the ordered merge rules of an externally trained
// byte-level BPE. Each rule's rank is its position in the sequence; lower
// ranks merge earlier.
type MergeTable struct {
	ranks map[MergePair]float64
}

// NewMergeTable builds a table from rules in rank order. A pair listed more
// than once keeps its first rank.
func NewMergeTable(rules []MergePair) *MergeTable {
	ranks := make(map[MergePair]float64, len(rules))
	for i, p := range rules {
		if _, ok := ranks[p]; ok {
			continue
		}
		ranks[p] = float64(i)
	}
	return &MergeTable{ranks: ranks}
}

// Rank returns the merge priority of p. Pairs absent from the table rank
// +Inf, which the encoder treats as unmergeable.
func (m *MergeTable) Rank(p MergePair) float64 {
	if r, ok := m.ranks[p]; ok {
		return r
	}
	return math.Inf(1)
}

// Size returns the number of distinct merge rules.
func (m *MergeTable) Size() int { return len(m.ranks) }

// LoadMerges reads one merge rule per line in "<left> <right>" form. Blank
// lines and #-prefixed header lines are skipped.
func LoadMerges(r io.Reader) (*MergeTable, error) {
	var rules []MergePair
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)
		if len(parts) != 2 {
			return nil, &ParseError{Line: line, Text: text, Reason: `want "<left> <right>"`}
		}
		rules = append(rules, MergePair{Left: parts[0], Right: parts[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read merge rules: %w", err)
	}
	return NewMergeTable(rules), nil
}

// LoadMergesFile reads a merge rule file from disk.
func LoadMergesFile(path string) (*MergeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open merge file: %w", err)
	}
	defer f.Close()

	table, err := LoadMerges(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return table, nil
}
