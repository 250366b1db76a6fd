package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store loads and saves project records.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Load reads the record for the project rooted at projPath.
func (s *Store) Load(projPath string) (*Project, error) {
	recordPath := filepath.Join(projPath, FileName)
	data, err := os.ReadFile(recordPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project record: %w", err)
	}

	var proj Project
	if err := yaml.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", recordPath, err)
	}
	if proj.Identifier.Locator == "" {
		return nil, fmt.Errorf("%s: identifier.locator is required", recordPath)
	}
	proj.Path = projPath
	return &proj, nil
}

// Save writes the record atomically: serialize to a temp file alongside the
// target, then rename, so a crash never leaves a truncated record.
func (s *Store) Save(proj *Project) error {
	data, err := yaml.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to serialize project record: %w", err)
	}

	recordPath := filepath.Join(proj.Path, FileName)
	tmp, err := os.CreateTemp(proj.Path, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp record: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp record: %w", err)
	}
	if err := os.Rename(tmpPath, recordPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace project record: %w", err)
	}
	return nil
}

// UpdateVersion re-reads the record and writes back only the version field,
// leaving every other field as found on disk.
func (s *Store) UpdateVersion(projPath, newVersion string) error {
	proj, err := s.Load(projPath)
	if err != nil {
		return err
	}
	proj.Identifier.Version = newVersion
	return s.Save(proj)
}
