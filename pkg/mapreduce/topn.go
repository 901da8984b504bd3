package mapreduce

import (
	"fmt"
	"io"
	"sort"
)

// Keyword is a token with its aggregated count.
type Keyword struct {
	Word  string `yaml:"word"`
	Count int    `yaml:"count"`
}

func (k Keyword) String() string {
	return fmt.Sprintf("%s:%d", k.Word, k.Count)
}

// TopKeywords returns the n most frequent tokens, ties broken alphabetically.
func TopKeywords(wordCounts FrequencyTable, n int) []Keyword {
	ss := make([]Keyword, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, Keyword{Word: k, Count: v})
	}

	// Sort by count (descending)
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}
	return ss[:limit]
}

// PrintTopKeywords prints the top N keywords in a numbered list format.
func PrintTopKeywords(w io.Writer, wordCounts FrequencyTable, n int) {
	for i, kw := range TopKeywords(wordCounts, n) {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, kw.Word, kw.Count)
	}
}
