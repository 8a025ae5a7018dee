package importer

import (
	"io"

	"github.com/pmiguelc/transita/internal/transfer"
)

// Source identifies the system a manifest file came from.
type Source string

const (
	SourceManifest Source = "manifest"
)

type Parser interface {
	Parse(r io.Reader) ([]transfer.ItemParams, error)
}
