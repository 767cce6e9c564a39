package model

import (
	"sync/atomic"

	"NewsGuard/internal/domain"
)

// Handle is the process-wide swappable reference to the active model.
// Readers take one snapshot per request; Swap publishes a replacement
// with a single pointer store, so no reader ever observes a vectorizer
// paired with a classifier from a different training run.
type Handle struct {
	current atomic.Pointer[TrainedModel]
}

// NewHandle returns an empty handle.
func NewHandle() *Handle { return &Handle{} }

// Current returns the active model or ErrModelNotTrained.
func (h *Handle) Current() (*TrainedModel, error) {
	m := h.current.Load()
	if m == nil {
		return nil, domain.ErrModelNotTrained
	}
	return m, nil
}

// Ready reports whether a model is loaded.
func (h *Handle) Ready() bool { return h.current.Load() != nil }

// Swap atomically replaces the active model.
func (h *Handle) Swap(m *TrainedModel) { h.current.Store(m) }
