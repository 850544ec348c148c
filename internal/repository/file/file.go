// Package file reads incident records from a YAML or JSON document on disk.
package file

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/crimemap/backend/internal/domain"
)

// Document is the on-disk layout: a top-level "records" list.
// JSON is valid YAML, so both formats decode the same way.
type Document struct {
	Records []domain.RecordInput `yaml:"records"`
}

// Source implements domain.RecordSource over a file that is re-read on every fetch
type Source struct {
	path string
}

// NewSource creates a file source for path
func NewSource(path string) *Source {
	return &Source{path: path}
}

// FetchRecords reads and decodes the file
func (s *Source) FetchRecords(ctx context.Context) ([]domain.RecordInput, error) {
	return Load(s.path)
}

// Health checks that the file is readable
func (s *Source) Health(ctx context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return eris.Wrapf(err, "file: %s not accessible", s.path)
	}
	return nil
}

// Load decodes a records document from path
func Load(path string) ([]domain.RecordInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "file: failed to read %s", path)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "file: failed to parse %s", path)
	}
	return doc.Records, nil
}
