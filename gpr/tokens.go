// File: tokens.go
// Role: parsly token set and custom matchers for the GPR grammar.

package gpr

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes (start at iota+1 to avoid clashing with parsly.EOF).
const (
	geneCode = iota + 1
	andCode
	orCode
	lparenCode
	rparenCode
)

// Token definitions.
var (
	wsToken     = parsly.NewToken(0, "Whitespace", matcher.NewWhiteSpace())
	geneToken   = parsly.NewToken(geneCode, "Gene", &geneMatcher{})
	andToken    = parsly.NewToken(andCode, "AND", &keywordMatcher{word: "and", symbol: "&&"})
	orToken     = parsly.NewToken(orCode, "OR", &keywordMatcher{word: "or", symbol: "||"})
	lparenToken = parsly.NewToken(lparenCode, "(", matcher.NewByte('('))
	rparenToken = parsly.NewToken(rparenCode, ")", matcher.NewByte(')'))
)

// geneMatcher matches gene identifiers: a letter, digit, or underscore
// followed by any run of identifier characters. Dots and dashes are legal
// interior characters (locus tags like "Rv0001" or "G_s0001.2").
type geneMatcher struct{}

func (m *geneMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size || !isIdentStart(input[pos]) {
		return 0
	}

	matched := 1
	for i := pos + 1; i < size; i++ {
		if !isIdentByte(input[i]) {
			break
		}
		matched++
	}

	return matched
}

// keywordMatcher matches either a symbolic operator ("&&", "||") or a
// case-insensitive word ("and", "or"). The word form only matches on a word
// boundary, so gene IDs like "andX" are never split.
type keywordMatcher struct {
	word   string
	symbol string
}

func (m *keywordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	// Symbol form first: exact two-byte match.
	n := len(m.symbol)
	if pos+n <= size && string(input[pos:pos+n]) == m.symbol {
		return n
	}

	// Word form: case-insensitive, must end at a word boundary.
	n = len(m.word)
	if pos+n > size {
		return 0
	}
	for i := 0; i < n; i++ {
		if lower(input[pos+i]) != m.word[i] {
			return 0
		}
	}
	if pos+n < size && isIdentByte(input[pos+n]) {
		return 0
	}

	return n
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c == '.' || c == '-'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}
