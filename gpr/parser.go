// File: parser.go
// Role: Recursive-descent parser over parsly tokens.
// Grammar: expr := term {OR term}; term := factor {AND factor};
//          factor := GENE | '(' expr ')'.

package gpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

// ErrMalformedRule indicates a syntactically invalid GPR expression:
// a dangling operator, unbalanced parentheses, or trailing garbage.
// Returned errors wrap it with the byte offset of the offending token.
var ErrMalformedRule = errors.New("gpr: malformed rule")

// Parse parses a GPR rule string into an immutable Rule tree.
//
// An empty or all-whitespace rule returns (nil, nil): the reaction carries
// no gene association, and a nil Rule evaluates to true.
//
// Steps:
//  1. Trim; map the empty rule to a nil Rule.
//  2. Descend expr → term → factor with single-token lookahead.
//  3. Reject leftover input after the top-level expression.
//
// Complexity: O(n) time over the input bytes, O(depth) stack.
func Parse(rule string) (*Rule, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, nil
	}

	cursor := parsly.NewCursor("", []byte(trimmed), 0)
	root, err := parseExpr(cursor)
	if err != nil {
		return nil, err
	}

	// Anything left beyond trailing whitespace is garbage (e.g. a stray ')').
	cursor.MatchOne(wsToken)
	if cursor.Pos < cursor.InputSize {
		return nil, fmt.Errorf("%w: unexpected %q at position %d",
			ErrMalformedRule, rest(cursor), cursor.Pos)
	}

	return &Rule{root: root, src: trimmed}, nil
}

// MustParse is Parse for static rule literals; it panics on error.
// Intended for tests and table fixtures only.
func MustParse(rule string) *Rule {
	r, err := Parse(rule)
	if err != nil {
		panic(err)
	}

	return r
}

// parseExpr parses the OR level: term { OR term }.
func parseExpr(cursor *parsly.Cursor) (node, error) {
	first, err := parseTerm(cursor)
	if err != nil {
		return nil, err
	}
	children := []node{first}
	for {
		matched := cursor.MatchAfterOptional(wsToken, orToken)
		if matched.Code != orCode {
			break
		}
		next, err := parseTerm(cursor)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return first, nil
	}

	return orNode{children: children}, nil
}

// parseTerm parses the AND level: factor { AND factor }.
func parseTerm(cursor *parsly.Cursor) (node, error) {
	first, err := parseFactor(cursor)
	if err != nil {
		return nil, err
	}
	children := []node{first}
	for {
		matched := cursor.MatchAfterOptional(wsToken, andToken)
		if matched.Code != andCode {
			break
		}
		next, err := parseFactor(cursor)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return first, nil
	}

	return andNode{children: children}, nil
}

// parseFactor parses a gene leaf or a parenthesized subexpression.
func parseFactor(cursor *parsly.Cursor) (node, error) {
	matched := cursor.MatchAfterOptional(wsToken, lparenToken, geneToken)
	switch matched.Code {
	case lparenCode:
		inner, err := parseExpr(cursor)
		if err != nil {
			return nil, err
		}
		matched = cursor.MatchAfterOptional(wsToken, rparenToken)
		if matched.Code != rparenCode {
			return nil, fmt.Errorf("%w: missing ')' at position %d", ErrMalformedRule, cursor.Pos)
		}

		return inner, nil

	case geneCode:
		id := matched.Text(cursor)
		// An operator keyword in operand position is a dangling operator
		// ("a and or b", "and a").
		if strings.EqualFold(id, "and") || strings.EqualFold(id, "or") {
			return nil, fmt.Errorf("%w: operator %q where a gene was expected at position %d",
				ErrMalformedRule, id, cursor.Pos-len(id))
		}

		return geneNode{id: id}, nil

	default:
		return nil, fmt.Errorf("%w: expected gene or '(' at position %d", ErrMalformedRule, cursor.Pos)
	}
}

// rest previews the unconsumed input for error messages (capped for brevity).
func rest(cursor *parsly.Cursor) string {
	tail := cursor.Input[cursor.Pos:]
	if len(tail) > 12 {
		tail = tail[:12]
	}

	return string(tail)
}
