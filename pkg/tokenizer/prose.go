package tokenizer

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// Prose tags tokens with the English perceptron tagger from prose.
type Prose struct {
	model *prose.Model
}

// NewProse loads the tagging model once. The model is only read afterwards,
// so one Prose can be shared by every worker.
func NewProse() (*Prose, error) {
	doc, err := prose.NewDocument("init",
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load prose model: %w", err)
	}
	return &Prose{model: doc.Model}, nil
}

func (p *Prose) Name() string { return KindProse }

func (p *Prose) Tokenize(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	docTokens := doc.Tokens()
	tokens := make([]Token, 0, len(docTokens))
	for _, tok := range docTokens {
		tokens = append(tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	return tokens, nil
}
