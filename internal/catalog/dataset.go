package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed challenges.yaml
var defaultDataset []byte

const datasetVersion = 1

type datasetFile struct {
	Version    int     `yaml:"version"`
	Challenges []Entry `yaml:"challenges"`
}

func ParseDataset(data []byte) ([]Entry, error) {
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	if file.Version > datasetVersion {
		return nil, fmt.Errorf("unsupported dataset version %d", file.Version)
	}

	seen := make(map[string]bool, len(file.Challenges))
	entries := make([]Entry, 0, len(file.Challenges))
	for _, e := range file.Challenges {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}

	return entries, nil
}

func MarshalDataset(entries []Entry) ([]byte, error) {
	return yaml.Marshal(datasetFile{Version: datasetVersion, Challenges: entries})
}

func DefaultDataset() []Entry {
	entries, err := ParseDataset(defaultDataset)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset is invalid: %v", err))
	}
	return entries
}

// YAMLSource reads a dataset file, falling back to the embedded dataset
// when the file does not exist.
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

func (s *YAMLSource) Path() string {
	return s.path
}

func (s *YAMLSource) Load() ([]Entry, error) {
	if s.path == "" {
		return DefaultDataset(), nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultDataset(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	entries, err := ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", s.path, err)
	}
	return entries, nil
}

func (s *YAMLSource) Save(entries []Entry) error {
	data, err := MarshalDataset(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}
