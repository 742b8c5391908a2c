// Package gpr parses and evaluates gene-protein-reaction (GPR) rules.
//
// A GPR rule is the boolean expression a metabolic model attaches to a
// reaction to state which gene products must be present for the reaction to
// carry flux: isoenzymes combine with OR (either gene suffices), enzyme
// complexes combine with AND (every subunit is required).
//
// # Grammar
//
//	expr   := term { OR term }
//	term   := factor { AND factor }
//	factor := GENE | '(' expr ')'
//
// Operator keywords are case-insensitive; both spellings are accepted:
// "and" / "&&" and "or" / "||". AND binds tighter than OR, so
// "b0001 and b0002 or b0003" reads as "(b0001 and b0002) or b0003".
//
// # API
//
//	rule, err := gpr.Parse("(b0001 and b0002) or b0003")
//	rule.Genes()                          // [b0001 b0002 b0003]
//	rule.Eval(nil)                        // true, everything present
//	rule.Eval(map[string]bool{"b0003": true, "b0001": true}) // false
//
// An empty (or all-whitespace) rule parses to a nil *Rule: the reaction is
// not gene-associated, and a nil rule evaluates to true under any knockout
// set. Malformed input (dangling operators, unbalanced parentheses,
// trailing garbage) returns ErrMalformedRule wrapped with the byte offset
// of the offending token.
//
// Complexity: Parse is a single left-to-right scan, O(n) time and O(depth)
// stack; Eval and Genes are O(nodes).
//
// See also: package fba, which evaluates rules against gene knockout sets to
// decide which reactions to close.
package gpr
