// Package forest implements a Random Forest classifier: an ensemble of
// CART trees trained on bootstrap samples with a random feature subset
// considered at every split. It is the only supervised learner in the
// repository and hides entirely behind a fit/predict surface, so any
// classifier honoring that contract could replace it.
package forest

import (
	"fmt"
	"math"
	"math/rand"

	"NewsGuard/internal/domain"
)

// Params are the ensemble hyperparameters.
type Params struct {
	Trees           int   `json:"trees"`
	MaxDepth        int   `json:"max_depth"`
	MinSamplesSplit int   `json:"min_samples_split"`
	MinSamplesLeaf  int   `json:"min_samples_leaf"`
	Seed            int64 `json:"seed"`
}

// DefaultParams mirror the production training setup.
func DefaultParams() Params {
	return Params{
		Trees:           100,
		MaxDepth:        20,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  2,
		Seed:            42,
	}
}

func (p Params) normalized() Params {
	if p.Trees < 1 {
		p.Trees = 1
	}
	if p.MaxDepth < 1 {
		p.MaxDepth = 1
	}
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = 2
	}
	if p.MinSamplesLeaf < 1 {
		p.MinSamplesLeaf = 1
	}
	return p
}

// Forest is the serializable trained ensemble.
type Forest struct {
	Params  Params  `json:"params"`
	Classes int     `json:"classes"`
	Trees   []*Tree `json:"trees"`
}

// New creates an untrained forest.
func New(params Params) *Forest {
	return &Forest{Params: params.normalized()}
}

// Fit trains the ensemble on dense feature rows with labels in
// [0, classes). Each tree draws its own bootstrap sample from an rng
// derived from the seed and the tree index, so a fixed seed reproduces
// the forest bit for bit.
func (f *Forest) Fit(rows [][]float64, labels []int) error {
	if len(rows) == 0 {
		return fmt.Errorf("fit forest: empty training set")
	}
	if len(rows) != len(labels) {
		return fmt.Errorf("fit forest: %d rows with %d labels", len(rows), len(labels))
	}

	classes := 2
	for _, label := range labels {
		if label < 0 {
			return fmt.Errorf("fit forest: negative label %d", label)
		}
		if label+1 > classes {
			classes = label + 1
		}
	}

	nFeatures := len(rows[0])
	for i, row := range rows {
		if len(row) != nFeatures {
			return fmt.Errorf("fit forest: row %d has %d features, want %d", i, len(row), nFeatures)
		}
	}

	mtry := int(math.Sqrt(float64(nFeatures)))
	if mtry < 1 {
		mtry = 1
	}

	trees := make([]*Tree, f.Params.Trees)
	for i := range trees {
		rng := rand.New(rand.NewSource(f.Params.Seed + int64(i)))

		sample := make([]int, len(rows))
		for j := range sample {
			sample[j] = rng.Intn(len(rows))
		}

		g := &grower{
			rows:    rows,
			labels:  labels,
			classes: classes,
			params:  f.Params,
			rng:     rng,
			mtry:    mtry,
		}
		trees[i] = &Tree{Root: g.grow(sample, 0)}
	}

	f.Classes = classes
	f.Trees = trees
	return nil
}

// Predict returns the majority-vote label and the per-class vote
// fractions. An untrained forest fails with ErrModelNotTrained; a zero or
// short vector still yields a deterministic prediction.
func (f *Forest) Predict(row []float64) (int, []float64, error) {
	if len(f.Trees) == 0 {
		return 0, nil, domain.ErrModelNotTrained
	}

	votes := make([]int, f.Classes)
	for _, tree := range f.Trees {
		votes[tree.vote(row)]++
	}

	probs := make([]float64, f.Classes)
	best := 0
	for class, count := range votes {
		probs[class] = float64(count) / float64(len(f.Trees))
		if count > votes[best] {
			best = class
		}
	}
	return best, probs, nil
}
