package importer

import (
	"fmt"
	"io"

	"github.com/pmiguelc/transita/internal/importer/manifest"
	"github.com/pmiguelc/transita/internal/transfer"
)

type Service struct {
	manifestParser Parser
}

func NewService() *Service {
	return &Service{
		manifestParser: manifest.NewParser(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]transfer.ItemParams, error) {
	var parser Parser

	switch source {
	case SourceManifest:
		parser = s.manifestParser
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return parser.Parse(r)
}
