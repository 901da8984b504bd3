package mapreduce

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/book-fingerprint/pkg/tokenizer"
)

// FrequencyTable maps a normalized token to its occurrence count.
// It never holds punctuation-only tokens.
type FrequencyTable map[string]int

// Add folds other into t, summing counts of matching keys.
func (t FrequencyTable) Add(other FrequencyTable) {
	for word, count := range other {
		t[word] += count
	}
}

// Clone returns an independent copy of t.
func (t FrequencyTable) Clone() FrequencyTable {
	out := make(FrequencyTable, len(t))
	for word, count := range t {
		out[word] = count
	}
	return out
}

// Total is the sum of all counts.
func (t FrequencyTable) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}

// Normalize lower-cases line and collapses whitespace runs to single spaces.
func Normalize(line string) string {
	return strings.Join(strings.Fields(strings.ToLower(line)), " ")
}

// Map generates the frequency table for a single line of text, skipping
// punctuation tokens. A blank line yields an empty table.
func Map(line string, tok tokenizer.Tokenizer) (FrequencyTable, error) {
	normalized := Normalize(line)
	if normalized == "" {
		return FrequencyTable{}, nil
	}

	tokens, err := tok.Tokenize(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize line: %w", err)
	}

	counts := make(FrequencyTable)
	for _, t := range tokens {
		if t.IsPunct() || t.Text == "" {
			continue
		}
		counts[t.Text]++
	}
	return counts, nil
}

// Reduce aggregates a chunk of frequency tables into a new table: a left
// fold seeded with a copy of the first table. Inputs are not modified.
func Reduce(chunk []FrequencyTable) FrequencyTable {
	if len(chunk) == 0 {
		return FrequencyTable{}
	}

	finalResults := chunk[0].Clone()
	for _, counts := range chunk[1:] {
		finalResults.Add(counts)
	}
	return finalResults
}
