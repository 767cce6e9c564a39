package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/features"
	"NewsGuard/internal/forest"
)

// artifact is the on-disk layout: vectorizer state, classifier and schema
// in one co-versioned document.
type artifact struct {
	Vectorizer features.VectorizerState `json:"vectorizer"`
	Classifier *forest.Forest           `json:"classifier"`
	Schema     features.Schema          `json:"schema"`
	Meta       Metadata                 `json:"metadata"`
}

// FileStore persists the model as a single JSON artifact. Saves go
// through a temp file and rename, so a crash mid-save can never leave a
// classifier paired with a stale vectorizer.
type FileStore struct {
	path string
}

// NewFileStore stores the artifact at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the model atomically, replacing any previous artifact.
func (s *FileStore) Save(m *TrainedModel) error {
	if m == nil || m.Vectorizer == nil || m.Forest == nil {
		return fmt.Errorf("save model: incomplete model")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save model: %w", err)
	}

	data, err := json.Marshal(artifact{
		Vectorizer: m.Vectorizer.State(),
		Classifier: m.Forest,
		Schema:     m.Schema,
		Meta:       m.Meta,
	})
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// Load restores the persisted model. A missing artifact yields
// ErrModelNotFound; a file that cannot be decoded, or whose vectorizer,
// classifier and schema disagree with each other, yields ErrCorruptModel.
func (s *FileStore) Load() (*TrainedModel, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load model from %s: %w", s.path, domain.ErrModelNotFound)
		}
		return nil, fmt.Errorf("load model: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("load model: %v: %w", err, domain.ErrCorruptModel)
	}

	vectorizer, err := features.FromState(art.Vectorizer)
	if err != nil {
		return nil, fmt.Errorf("load model: %v: %w", err, domain.ErrCorruptModel)
	}
	if art.Classifier == nil || len(art.Classifier.Trees) == 0 {
		return nil, fmt.Errorf("load model: classifier missing: %w", domain.ErrCorruptModel)
	}
	if art.Schema.VectorTerms != vectorizer.Dimension() {
		return nil, fmt.Errorf("load model: schema expects %d terms, vectorizer has %d: %w",
			art.Schema.VectorTerms, vectorizer.Dimension(), domain.ErrCorruptModel)
	}

	return &TrainedModel{
		Vectorizer: vectorizer,
		Forest:     art.Classifier,
		Schema:     art.Schema,
		Meta:       art.Meta,
	}, nil
}
