package mapreduce

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dtnitsch/book-fingerprint/pkg/progress"
	"github.com/dtnitsch/book-fingerprint/pkg/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The  Cat\tSAT\n", "the cat sat"},
		{"   ", ""},
		{"", ""},
		{"one", "one"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		line string
		want FrequencyTable
	}{
		{
			name: "sentence with punctuation",
			line: "The cat sat. The dog sat!",
			want: FrequencyTable{"the": 2, "cat": 1, "sat": 2, "dog": 1},
		},
		{
			name: "punctuation only",
			line: "... !? , ;",
			want: FrequencyTable{},
		},
		{
			name: "blank line",
			line: " \t \n",
			want: FrequencyTable{},
		},
		{
			name: "case folded",
			line: "Go GO go",
			want: FrequencyTable{"go": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map(tt.line, tokenizer.Simple{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingTokenizer struct{}

func (failingTokenizer) Name() string { return "failing" }
func (failingTokenizer) Tokenize(string) ([]tokenizer.Token, error) {
	return nil, errors.New("tagger unavailable")
}

func TestMapTokenizerError(t *testing.T) {
	_, err := Map("hello", failingTokenizer{})
	assert.ErrorContains(t, err, "tagger unavailable")

	// blank lines never reach the tokenizer
	got, err := Map("   ", failingTokenizer{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReduce(t *testing.T) {
	a := FrequencyTable{"a": 1, "b": 2}
	b := FrequencyTable{"b": 3, "c": 1}
	c := FrequencyTable{}

	got := Reduce([]FrequencyTable{a, b, c})
	assert.Equal(t, FrequencyTable{"a": 1, "b": 5, "c": 1}, got)

	// inputs untouched
	assert.Equal(t, FrequencyTable{"a": 1, "b": 2}, a)
	assert.Equal(t, FrequencyTable{}, Reduce(nil))
}

func TestChunk(t *testing.T) {
	tables := make([]FrequencyTable, 10)
	chunks := Chunk(tables, 4)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 4)
	assert.Len(t, chunks[1], 4)
	assert.Len(t, chunks[2], 2)
	assert.Empty(t, Chunk(nil, 4))
}

func TestReduceAllEdgeCases(t *testing.T) {
	ctx := context.Background()

	got, err := ReduceAll(ctx, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	var sink progress.Counter
	only := FrequencyTable{"x": 7}
	got, err = ReduceAll(ctx, []FrequencyTable{only}, Options{Sink: &sink})
	require.NoError(t, err)
	assert.Equal(t, only, got)
	_, _, updates := sink.Snapshot()
	assert.Zero(t, updates, "single table must not dispatch")

	_, err = ReduceAll(ctx, []FrequencyTable{only, only}, Options{ChunkSize: 1})
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
}

// roundSink records the total announced for each round.
type roundSink struct {
	totals []int
}

func (r *roundSink) SetTotal(n int) { r.totals = append(r.totals, n) }
func (r *roundSink) Advance(int)    {}

func TestReduceAllRounds(t *testing.T) {
	tables := make([]FrequencyTable, 17)
	for i := range tables {
		tables[i] = FrequencyTable{"w": 1, fmt.Sprintf("t%d", i): i}
	}

	sink := &roundSink{}
	got, err := ReduceAll(context.Background(), tables, Options{ChunkSize: 4, Sink: sink, PollInterval: time.Millisecond})
	require.NoError(t, err)

	// 17 -> 5 -> 2 -> 1
	assert.Equal(t, []int{5, 2, 1}, sink.totals)
	assert.Equal(t, 17, got["w"])
	assert.Equal(t, 16, got["t16"])
	assert.Len(t, got, 18)
}

func TestMapLines(t *testing.T) {
	lines := []string{"a b a", "", "c."}
	tables, err := MapLines(context.Background(), lines, tokenizer.Simple{}, Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, []FrequencyTable{{"a": 2, "b": 1}, {}, {"c": 1}}, tables)
}

func TestMapLinesFailure(t *testing.T) {
	_, err := MapLines(context.Background(), []string{"x", "y"}, failingTokenizer{}, Options{})
	assert.ErrorContains(t, err, "failed to map lines")
}

func genTables(t *rapid.T) []FrequencyTable {
	words := []string{"the", "cat", "sat", "dog", "on", "mat"}
	n := rapid.IntRange(0, 40).Draw(t, "tables")
	tables := make([]FrequencyTable, n)
	for i := range tables {
		tables[i] = rapid.MapOf(rapid.SampledFrom(words), rapid.IntRange(1, 9)).Draw(t, fmt.Sprintf("table%d", i))
	}
	return tables
}

func naiveSum(tables []FrequencyTable) FrequencyTable {
	out := FrequencyTable{}
	for _, tbl := range tables {
		for k, v := range tbl {
			out[k] += v
		}
	}
	return out
}

func TestReduceAllIndependentOfChunking(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tables := genTables(rt)
		chunkSize := rapid.IntRange(2, 9).Draw(rt, "chunkSize")

		got, err := ReduceAll(context.Background(), tables, Options{ChunkSize: chunkSize, PollInterval: time.Millisecond})
		require.NoError(rt, err)
		assert.Equal(rt, naiveSum(tables), got)
	})
}
