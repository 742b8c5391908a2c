// File: measure.go
// Role: Measured-flux ingestion (CSV) and predicted-vs-measured correlation.

package fba

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ReadFluxCSV parses a two-column table of measured fluxes:
//
//	reaction,flux
//	PTS,9.8
//	BIOMASS,9.7
//
// The header row is optional and detected by a non-numeric second column.
// Lines starting with '#' are comments. Duplicate reaction IDs and rows
// whose flux does not parse return ErrBadFluxTable with the offending line.
func ReadFluxCSV(r io.Reader) (map[string]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	fluxes := make(map[string]float64)
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadFluxTable, err)
		}
		id := strings.TrimSpace(rec[0])
		value, perr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if perr != nil {
			if row == 0 {
				continue // header row
			}

			return nil, fmt.Errorf("%w: line %d: flux %q", ErrBadFluxTable, row+1, rec[1])
		}
		if id == "" {
			return nil, fmt.Errorf("%w: line %d: empty reaction ID", ErrBadFluxTable, row+1)
		}
		if _, dup := fluxes[id]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate reaction %s", ErrBadFluxTable, row+1, id)
		}
		fluxes[id] = value
	}

	return fluxes, nil
}

// Pearson computes the Pearson correlation between two flux sets over the
// reactions they share, in sorted ID order, and reports how many reactions
// that was. Fewer than two shared reactions, or zero variance on either
// side, return ErrNoOverlap.
func Pearson(predicted, measured map[string]float64) (float64, int, error) {
	shared := make([]string, 0, len(predicted))
	for id := range predicted {
		if _, ok := measured[id]; ok {
			shared = append(shared, id)
		}
	}
	if len(shared) < 2 {
		return 0, len(shared), ErrNoOverlap
	}
	sort.Strings(shared)

	x := make([]float64, len(shared))
	y := make([]float64, len(shared))
	for i, id := range shared {
		x[i] = predicted[id]
		y[i] = measured[id]
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, len(shared), fmt.Errorf("%w: constant flux sets", ErrNoOverlap)
	}

	return r, len(shared), nil
}
