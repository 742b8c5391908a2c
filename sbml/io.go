// File: io.go
// Role: URL-addressed model I/O through viant/afs.

package sbml

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/katalvlaran/gemflux/gem"
)

// Load fetches and decodes a model from any afs-addressable URL (file, mem,
// or a registered cloud scheme).
func Load(ctx context.Context, url string) (*gem.Model, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("sbml: load %s: %w", url, err)
	}

	return Decode(bytes.NewReader(data))
}

// Save encodes m and uploads the document to the URL. The document is built
// in memory first, so a model that fails to encode leaves no partial file.
func Save(ctx context.Context, m *gem.Model, url string) error {
	if m == nil {
		return ErrNilModel
	}
	var buf bytes.Buffer
	if err := Encode(m, &buf); err != nil {
		return err
	}

	fs := afs.New()
	if err := fs.Upload(ctx, url, file.DefaultFileOsMode, &buf); err != nil {
		return fmt.Errorf("sbml: save %s: %w", url, err)
	}

	return nil
}
