package tokenizer

import (
	"unicode"
)

// Simple is a rule based tokenizer. Runs of letters and digits form words,
// apostrophes and hyphens are kept when they join two word runes, and every
// other non-space rune becomes its own PUNCT or SYM token.
type Simple struct{}

func (Simple) Name() string { return KindSimple }

func (Simple) Tokenize(text string) ([]Token, error) {
	runes := []rune(text)
	var tokens []Token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := string(runes[start:end])
		tag := TagWord
		if isNumber(runes[start:end]) {
			tag = TagNum
		}
		tokens = append(tokens, Token{Text: word, Tag: tag})
		start = -1
	}

	for i, r := range runes {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		case isJoiner(r) && start >= 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			// inner apostrophe or hyphen: "don't", "well-known"
		default:
			flush(i)
			if unicode.IsSpace(r) {
				continue
			}
			tag := TagSym
			if unicode.IsPunct(r) {
				tag = TagPunct
			}
			tokens = append(tokens, Token{Text: string(r), Tag: tag})
		}
	}
	flush(len(runes))

	return tokens, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '-' || r == '’'
}

func isNumber(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
