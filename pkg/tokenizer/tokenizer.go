// Package tokenizer splits a line of text into part-of-speech tagged tokens.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
)

// Tag values shared by the tokenizers in this package. Prose emits Penn
// Treebank tags; Simple emits the coarse ones below.
const (
	TagPunct = "PUNCT"
	TagSym   = "SYM"
	TagNum   = "NUM"
	TagWord  = "X"
)

// Kinds accepted by New.
const (
	KindProse  = "prose"
	KindSimple = "simple"
)

// punctTags are the tags treated as punctuation.
var punctTags = map[string]struct{}{
	TagPunct: {},
	",":      {},
	".":      {},
	":":      {},
	"''":     {},
	"``":     {},
	"\"":     {},
	"(":      {},
	")":      {},
	"-LRB-":  {},
	"-RRB-":  {},
	"HYPH":   {},
	"NFP":    {},
}

// Token is one unit produced by a Tokenizer.
type Token struct {
	Text string
	Tag  string
}

// IsPunct reports whether the token is punctuation, either by its tag or
// because every rune in it is a punctuation rune.
func (t Token) IsPunct() bool {
	if _, ok := punctTags[t.Tag]; ok {
		return true
	}
	if t.Text == "" {
		return false
	}
	return strings.IndexFunc(t.Text, func(r rune) bool { return !unicode.IsPunct(r) }) == -1
}

// Tokenizer turns normalized text into tagged tokens. Implementations must be
// safe for concurrent use once constructed.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
	Name() string
}

// New builds the tokenizer for kind.
func New(kind string) (Tokenizer, error) {
	switch strings.ToLower(kind) {
	case KindProse, "":
		return NewProse()
	case KindSimple:
		return Simple{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q (want %q or %q)", kind, KindProse, KindSimple)
	}
}
