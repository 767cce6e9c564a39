// Package model owns the trained-model unit: the fitted vectorizer and
// the classifier trained on its feature space, which are only ever
// created, persisted, loaded and swapped together.
package model

import (
	"time"

	"NewsGuard/internal/features"
	"NewsGuard/internal/forest"
)

// Metadata records how and when the artifact was produced.
type Metadata struct {
	TrainedAt   time.Time `json:"trained_at"`
	Accuracy    float64   `json:"accuracy"`
	Precision   float64   `json:"precision"`
	Recall      float64   `json:"recall"`
	F1          float64   `json:"f1"`
	Samples     int       `json:"samples"`
	MaxFeatures int       `json:"max_features"`
	NGramMin    int       `json:"ngram_min"`
	NGramMax    int       `json:"ngram_max"`
	Trees       int       `json:"trees"`
	MaxDepth    int       `json:"max_depth"`
}

// TrainedModel pairs a fitted vectorizer with its classifier plus the
// feature schema both were built against.
type TrainedModel struct {
	Vectorizer *features.Vectorizer
	Forest     *forest.Forest
	Schema     features.Schema
	Meta       Metadata
}
