package features

import (
	"NewsGuard/internal/domain"
)

// SchemaVersion is bumped whenever the slot layout changes shape.
const SchemaVersion = 1

// LexicalSlotNames are the named scalar slots appended after the
// vocabulary terms when lexical features feed the classifier.
var LexicalSlotNames = []string{"word_count", "sensational_count", "emotional_count"}

// Schema is the versioned feature-layout contract shared by the training
// and inference paths: the vocabulary terms first, then any named lexical
// slots. It is persisted with the model and checked on every assembled
// vector, so the two paths cannot silently diverge.
type Schema struct {
	Version      int      `json:"version"`
	VectorTerms  int      `json:"vector_terms"`
	LexicalSlots []string `json:"lexical_slots,omitempty"`
}

// NewSchema describes a layout of vectorTerms TF-IDF slots, optionally
// followed by the lexical scalars.
func NewSchema(vectorTerms int, appendLexical bool) Schema {
	s := Schema{Version: SchemaVersion, VectorTerms: vectorTerms}
	if appendLexical {
		s.LexicalSlots = append([]string(nil), LexicalSlotNames...)
	}
	return s
}

// Dimension is the total slot count.
func (s Schema) Dimension() int { return s.VectorTerms + len(s.LexicalSlots) }

// AppendsLexical reports whether lexical scalars are part of the
// classifier input.
func (s Schema) AppendsLexical() bool { return len(s.LexicalSlots) > 0 }

// Validate rejects vectors whose length disagrees with the schema.
func (s Schema) Validate(vec []float64) error {
	if len(vec) != s.Dimension() {
		return &domain.FeatureMismatchError{Want: s.Dimension(), Got: len(vec)}
	}
	return nil
}

// Assemble builds the classifier input per the schema: the TF-IDF vector,
// then the lexical slots when the schema includes them. A TF-IDF vector
// computed against a different vocabulary is rejected with a
// FeatureMismatchError.
func Assemble(schema Schema, vec []float64, lex domain.LexicalFeatures) ([]float64, error) {
	if len(vec) != schema.VectorTerms {
		return nil, &domain.FeatureMismatchError{Want: schema.VectorTerms, Got: len(vec)}
	}
	if !schema.AppendsLexical() {
		return vec, nil
	}

	full := make([]float64, 0, schema.Dimension())
	full = append(full, vec...)
	for _, slot := range schema.LexicalSlots {
		switch slot {
		case "word_count":
			full = append(full, float64(lex.WordCount))
		case "sensational_count":
			full = append(full, float64(lex.SensationalCount))
		case "emotional_count":
			full = append(full, float64(lex.EmotionalCount))
		default:
			return nil, &domain.FeatureMismatchError{Want: schema.Dimension(), Got: len(vec)}
		}
	}
	return full, nil
}
