// SPDX-License-Identifier: MIT

// Package stoich: functional configuration for matrix assembly.
// Defaults are documented constants (single source of truth).

package stoich

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultBinary controls whether coefficients are reduced to sign
	// structure. false ⇒ keep numeric coefficients.
	DefaultBinary = false

	// DefaultDropBoundary controls whether metabolites touched by boundary
	// reactions keep their mass-balance rows. false ⇒ keep every row.
	DefaultDropBoundary = false
)

// Option mutates assembly options. Safe to apply repeatedly (idempotent).
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	binary       bool
	dropBoundary bool
}

// WithBinary reduces every entry to its sign: -1 for consumed, +1 for
// produced. Useful for topology-only analyses where magnitudes distract.
func WithBinary() Option {
	return func(o *options) { o.binary = true }
}

// WithDropBoundary omits rows for metabolites that participate in at least
// one boundary reaction, treating them as unbalanced external pools.
// Columns of the affected boundary reactions may become all-zero; they are
// kept so column indexing still covers every reaction.
func WithDropBoundary() Option {
	return func(o *options) { o.dropBoundary = true }
}

// gatherOptions applies setters over documented defaults, last-writer-wins.
func gatherOptions(opts ...Option) options {
	o := options{
		binary:       DefaultBinary,
		dropBoundary: DefaultDropBoundary,
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}
