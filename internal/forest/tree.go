package forest

import (
	"math/rand"
	"sort"
)

// Node is a single decision-tree node. Internal nodes route on
// row[Feature] <= Threshold; leaves carry the class histogram of the
// training samples that reached them.
type Node struct {
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
	Counts    []int   `json:"counts,omitempty"`
}

func (n *Node) leaf() bool { return n.Left == nil && n.Right == nil }

// Tree is one member of the ensemble.
type Tree struct {
	Root *Node `json:"root"`
}

// vote returns the class a single tree picks for the row. Feature indexes
// beyond the row length read as zero, so degenerate vectors still descend
// deterministically.
func (t *Tree) vote(row []float64) int {
	node := t.Root
	for node != nil && !node.leaf() {
		value := 0.0
		if node.Feature < len(row) {
			value = row[node.Feature]
		}
		if value <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	best, bestCount := 0, -1
	for class, count := range node.Counts {
		if count > bestCount {
			best, bestCount = class, count
		}
	}
	return best
}

// grower builds one CART tree over a bootstrap sample.
type grower struct {
	rows    [][]float64
	labels  []int
	classes int
	params  Params
	rng     *rand.Rand
	mtry    int
}

func (g *grower) grow(indices []int, depth int) *Node {
	counts := g.classCounts(indices)
	if depth >= g.params.MaxDepth ||
		len(indices) < g.params.MinSamplesSplit ||
		pure(counts) {
		return &Node{Counts: counts}
	}

	feature, threshold, ok := g.bestSplit(indices, counts)
	if !ok {
		return &Node{Counts: counts}
	}

	left := make([]int, 0, len(indices))
	right := make([]int, 0, len(indices))
	for _, idx := range indices {
		if g.rows[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      g.grow(left, depth+1),
		Right:     g.grow(right, depth+1),
	}
}

// bestSplit searches a random subset of mtry features for the
// gini-minimizing threshold honoring MinSamplesLeaf.
func (g *grower) bestSplit(indices []int, parentCounts []int) (int, float64, bool) {
	nFeatures := len(g.rows[indices[0]])
	if nFeatures == 0 {
		return 0, 0, false
	}

	candidates := g.rng.Perm(nFeatures)
	if len(candidates) > g.mtry {
		candidates = candidates[:g.mtry]
	}

	var (
		bestFeature   int
		bestThreshold float64
		bestScore     = gini(parentCounts, len(indices))
		found         bool
	)

	ordered := make([]int, len(indices))
	for _, feature := range candidates {
		copy(ordered, indices)
		sort.Slice(ordered, func(i, j int) bool {
			return g.rows[ordered[i]][feature] < g.rows[ordered[j]][feature]
		})

		leftCounts := make([]int, g.classes)
		rightCounts := g.classCounts(ordered)
		total := len(ordered)

		for i := 0; i < total-1; i++ {
			label := g.labels[ordered[i]]
			leftCounts[label]++
			rightCounts[label]--

			current := g.rows[ordered[i]][feature]
			next := g.rows[ordered[i+1]][feature]
			if current == next {
				continue
			}
			nLeft := i + 1
			nRight := total - nLeft
			if nLeft < g.params.MinSamplesLeaf || nRight < g.params.MinSamplesLeaf {
				continue
			}

			score := (float64(nLeft)*gini(leftCounts, nLeft) +
				float64(nRight)*gini(rightCounts, nRight)) / float64(total)
			if score < bestScore {
				bestScore = score
				bestFeature = feature
				bestThreshold = (current + next) / 2
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func (g *grower) classCounts(indices []int) []int {
	counts := make([]int, g.classes)
	for _, idx := range indices {
		counts[g.labels[idx]]++
	}
	return counts
}

func pure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}
