// File: knockout.go
// Role: Reaction and gene deletion screens, plus the GPR-driven bound
//       closing they are built on.

package fba

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/gpr"
	"github.com/katalvlaran/gemflux/linprog"
)

// DisableGenes closes every reaction whose gene-protein-reaction rule no
// longer evaluates true once the given genes are knocked out, by setting its
// bounds to (0, 0). It mutates m (clone first to keep the original) and
// returns the sorted IDs of the reactions it closed.
//
// Unknown gene IDs return gem.ErrUnknownGene; a malformed rule on any
// reaction surfaces as a wrapped gpr.ErrMalformedRule.
func DisableGenes(m *gem.Model, genes []string) ([]string, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	knocked := make(map[string]bool, len(genes))
	for _, id := range genes {
		if !m.HasGene(id) {
			return nil, fmt.Errorf("fba: disable gene %s: %w", id, gem.ErrUnknownGene)
		}
		knocked[id] = true
	}

	var disabled []string
	for _, r := range m.Reactions() {
		if r.GPR == "" {
			continue // not gene-associated, never closable by knockout
		}
		rule, err := gpr.Parse(r.GPR)
		if err != nil {
			return nil, fmt.Errorf("fba: rule of %s: %w", r.ID, err)
		}
		if rule.Eval(knocked) {
			continue
		}
		if err = m.SetBounds(r.ID, 0, 0); err != nil {
			return nil, fmt.Errorf("fba: close %s: %w", r.ID, err)
		}
		disabled = append(disabled, r.ID)
	}
	sort.Strings(disabled)

	return disabled, nil
}

// DeleteGenes screens each gene in ids as a single knockout: the model is
// cloned, the gene's dependent reactions are closed, and the clone is
// re-solved. One KnockoutResult per id, in input order.
//
// A lethal or infeasible knockout is a result (Growth 0), not an error.
// Options.Workers > 1 runs the screens concurrently; the input model is
// never mutated.
func DeleteGenes(m *gem.Model, ids []string, opts Options) ([]KnockoutResult, error) {
	return screen(m, ids, opts, func(clone *gem.Model, id string) ([]string, error) {
		return DisableGenes(clone, []string{id})
	})
}

// DeleteReactions screens each reaction in ids as a single knockout by
// closing its bounds on a clone and re-solving. One KnockoutResult per id,
// in input order.
func DeleteReactions(m *gem.Model, ids []string, opts Options) ([]KnockoutResult, error) {
	return screen(m, ids, opts, func(clone *gem.Model, id string) ([]string, error) {
		if err := clone.SetBounds(id, 0, 0); err != nil {
			return nil, fmt.Errorf("fba: close %s: %w", id, err)
		}

		return []string{id}, nil
	})
}

// screen is the shared single-deletion loop: clone, apply, solve, record.
func screen(
	m *gem.Model,
	ids []string,
	opts Options,
	apply func(clone *gem.Model, id string) ([]string, error),
) ([]KnockoutResult, error) {
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNilModel
	}
	if len(m.Objective()) == 0 {
		return nil, ErrNoObjective
	}

	results := make([]KnockoutResult, len(ids))
	err := forEachIndex(opts.Ctx, opts.Workers, len(ids), func(i int) error {
		id := ids[i]
		clone := m.Clone()
		disabled, aerr := apply(clone, id)
		if aerr != nil {
			return aerr
		}

		sol, serr := Solve(clone, opts)
		switch {
		case errors.Is(serr, ErrInfeasible):
			results[i] = KnockoutResult{ID: id, Growth: 0, Status: linprog.StatusInfeasible, Disabled: disabled}
		case serr != nil:
			return fmt.Errorf("fba: knockout %s: %w", id, serr)
		default:
			results[i] = KnockoutResult{ID: id, Growth: sol.Objective, Status: sol.Status, Disabled: disabled}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}
