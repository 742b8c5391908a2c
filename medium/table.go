// File: table.go
// Role: CSV media tables: parse, emit, and load by URL.

package medium

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/viant/afs"
)

// tableHeader is the column layout of a media table.
var tableHeader = []string{"compound", "exchange", "lower", "upper"}

// ReadTable parses a media table:
//
//	compound,exchange,lower,upper
//	D-glucose,EX_glc,-10,0
//
// The header row is optional and detected by a non-numeric third column;
// '#' starts a comment line. Options.Comma switches the delimiter (e.g.
// '\t'). Duplicate exchange IDs keep the last row's bounds, matching how a
// hand-edited table is usually meant.
func ReadTable(r io.Reader, opts Options) (*Environment, error) {
	opts.normalize()
	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.FieldsPerRecord = len(tableHeader)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	env := New()
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadTable, err)
		}

		lo, loErr := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		hi, hiErr := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if loErr != nil || hiErr != nil {
			if row == 0 {
				continue // header row
			}

			return nil, fmt.Errorf("%w: line %d: bounds %q,%q", ErrBadTable, row+1, rec[2], rec[3])
		}

		rxnID := strings.TrimSpace(rec[1])
		if rxnID == "" {
			return nil, fmt.Errorf("%w: line %d: empty exchange ID", ErrBadTable, row+1)
		}
		if err = env.SetNamed(rxnID, strings.TrimSpace(rec[0]), lo, hi); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadTable, row+1, err)
		}
	}

	return env, nil
}

// WriteTable emits the environment as a media table with header, one row per
// exchange in entry order.
func WriteTable(w io.Writer, env *Environment) error {
	if env == nil {
		return ErrNilEnvironment
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return fmt.Errorf("medium: write header: %w", err)
	}
	for _, rxnID := range env.order {
		ent := env.entries[rxnID]
		rec := []string{
			ent.name,
			rxnID,
			strconv.FormatFloat(ent.lo, 'g', -1, 64),
			strconv.FormatFloat(ent.hi, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("medium: write %s: %w", rxnID, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// LoadTable reads a media table from any afs-addressable URL (file, mem,
// cloud schemes).
func LoadTable(ctx context.Context, url string, opts Options) (*Environment, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("medium: load %s: %w", url, err)
	}

	return ReadTable(bytes.NewReader(data), opts)
}
