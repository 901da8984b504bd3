package manifest

import "github.com/dtnitsch/book-fingerprint/pkg/mapreduce"

// SummaryManifest describes one rendered fingerprint. It sits next to the
// image so the picture can be read back without rerunning the pipeline.
type SummaryManifest struct {
	GeneratedAt    string              `yaml:"generated_at"`
	InputPath      string              `yaml:"input_path"`
	OutputPath     string              `yaml:"output_path"`
	Tokenizer      string              `yaml:"tokenizer"`
	Language       string              `yaml:"language,omitempty"`
	LineCount      int                 `yaml:"line_count"`
	DistinctTokens int                 `yaml:"distinct_tokens"`
	TotalTokens    int                 `yaml:"total_tokens"`
	Dimension      int                 `yaml:"dimension"`
	EmptyCells     int                 `yaml:"empty_cells"`
	Step           float64             `yaml:"step"`
	Scale          int                 `yaml:"scale,omitempty"`
	CacheHit       bool                `yaml:"cache_hit,omitempty"`
	TopKeywords    []mapreduce.Keyword `yaml:"top_keywords"`
}
