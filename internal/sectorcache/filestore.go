package sectorcache

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kartavantaj/kampanya/internal/model"
)

// FileStore serves the sector taxonomy from a YAML file, re-read on every
// cache refresh so edits show up after the TTL without a restart.
type FileStore struct {
	path string
}

// NewFileStore creates a store over the YAML file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// SectorsWithKeywords loads and parses the taxonomy file.
func (s *FileStore) SectorsWithKeywords(_ context.Context) ([]model.SectorDefinition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read sectors file: %w", err)
	}

	var sectors []model.SectorDefinition
	if err := yaml.Unmarshal(data, &sectors); err != nil {
		return nil, fmt.Errorf("parse sectors file: %w", err)
	}
	return sectors, nil
}
