package features

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"NewsGuard/internal/domain"
)

// VectorizerOptions configure vocabulary construction.
type VectorizerOptions struct {
	// MaxFeatures caps the vocabulary, keeping the terms with the highest
	// document frequency. Zero means unlimited.
	MaxFeatures int `json:"max_features"`
	// NGramMin and NGramMax bound the inclusive n-gram range.
	NGramMin int `json:"ngram_min"`
	NGramMax int `json:"ngram_max"`
	// MinDocFreq drops terms seen in fewer documents.
	MinDocFreq int `json:"min_doc_freq"`
	// MaxDocShare drops terms seen in more than this share of documents.
	// Values outside (0,1) disable the cut.
	MaxDocShare float64 `json:"max_doc_share"`
}

// DefaultVectorizerOptions mirror the production training setup.
func DefaultVectorizerOptions() VectorizerOptions {
	return VectorizerOptions{
		MaxFeatures: 5000,
		NGramMin:    1,
		NGramMax:    3,
		MinDocFreq:  2,
		MaxDocShare: 0.9,
	}
}

func (o VectorizerOptions) normalized() VectorizerOptions {
	if o.NGramMin < 1 {
		o.NGramMin = 1
	}
	if o.NGramMax < o.NGramMin {
		o.NGramMax = o.NGramMin
	}
	if o.MinDocFreq < 1 {
		o.MinDocFreq = 1
	}
	return o
}

// Vectorizer turns cleaned text into L2-normalized TF-IDF vectors over a
// vocabulary learned by Fit. The vocabulary and IDF weights are immutable
// once fit; only a fresh Fit replaces them.
type Vectorizer struct {
	opts     VectorizerOptions
	terms    []string
	index    map[string]int
	idf      []float64
	docCount int
	fitted   bool
}

// NewVectorizer creates an unfit vectorizer.
func NewVectorizer(opts VectorizerOptions) *Vectorizer {
	return &Vectorizer{opts: opts.normalized()}
}

// Fit builds the vocabulary and IDF weights from the corpus of cleaned
// documents. Terms are ranked by document frequency with lexicographic
// tie-breaking, capped at MaxFeatures, and indexed in lexicographic order
// for a stable slot layout.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("fit vectorizer: empty corpus")
	}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, gram := range v.ngrams(doc) {
			seen[gram] = struct{}{}
		}
		for gram := range seen {
			df[gram]++
		}
	}

	maxDF := len(corpus)
	if v.opts.MaxDocShare > 0 && v.opts.MaxDocShare < 1 {
		maxDF = int(v.opts.MaxDocShare * float64(len(corpus)))
	}

	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if count < v.opts.MinDocFreq || count > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("fit vectorizer: no terms survive frequency pruning")
	}

	sort.Slice(candidates, func(i, j int) bool {
		if df[candidates[i]] != df[candidates[j]] {
			return df[candidates[i]] > df[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if v.opts.MaxFeatures > 0 && len(candidates) > v.opts.MaxFeatures {
		candidates = candidates[:v.opts.MaxFeatures]
	}
	sort.Strings(candidates)

	terms := candidates
	index := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.terms = terms
	v.index = index
	v.idf = idf
	v.docCount = len(corpus)
	v.fitted = true
	return nil
}

// Transform computes the TF-IDF vector of one cleaned document. Terms
// unseen at fit time contribute nothing; an unfit vectorizer fails with
// ErrModelNotTrained.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.fitted {
		return nil, domain.ErrModelNotTrained
	}

	vec := make([]float64, len(v.terms))
	counts := make(map[int]int)
	total := 0
	for _, gram := range v.ngrams(text) {
		if idx, ok := v.index[gram]; ok {
			counts[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}

	for idx, count := range counts {
		vec[idx] = (float64(count) / float64(total)) * v.idf[idx]
	}

	norm := 0.0
	for _, val := range vec {
		norm += val * val
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Dimension returns the vocabulary size, zero before Fit.
func (v *Vectorizer) Dimension() int { return len(v.terms) }

// Vocabulary returns a copy of the ordered term list.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

func (v *Vectorizer) ngrams(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	grams := make([]string, 0, len(tokens)*(v.opts.NGramMax-v.opts.NGramMin+1))
	for n := v.opts.NGramMin; n <= v.opts.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

// VectorizerState is the serializable snapshot of a fitted vectorizer.
type VectorizerState struct {
	Options  VectorizerOptions `json:"options"`
	Terms    []string          `json:"terms"`
	IDF      []float64         `json:"idf"`
	DocCount int               `json:"doc_count"`
}

// State captures the fitted vocabulary for persistence.
func (v *Vectorizer) State() VectorizerState {
	return VectorizerState{
		Options:  v.opts,
		Terms:    v.Vocabulary(),
		IDF:      append([]float64(nil), v.idf...),
		DocCount: v.docCount,
	}
}

// FromState restores a fitted vectorizer from its persisted snapshot.
func FromState(st VectorizerState) (*Vectorizer, error) {
	if len(st.Terms) == 0 || len(st.Terms) != len(st.IDF) {
		return nil, fmt.Errorf("vectorizer state: %d terms with %d idf weights", len(st.Terms), len(st.IDF))
	}

	index := make(map[string]int, len(st.Terms))
	for i, term := range st.Terms {
		index[term] = i
	}
	return &Vectorizer{
		opts:     st.Options.normalized(),
		terms:    append([]string(nil), st.Terms...),
		index:    index,
		idf:      append([]float64(nil), st.IDF...),
		docCount: st.DocCount,
		fitted:   true,
	}, nil
}
