package classifier

import (
	"fmt"
)

// TreeNode is one node of a decision tree. Leaves have Feature == -1.
// Value is the stopped-class fraction of the training samples that reached
// the node; keeping it on internal nodes as well lets prediction report
// per-feature contributions from the decision path.
type TreeNode struct {
	Feature   int     `json:"feature"` // index into the artifact's feature names, -1 for leaf
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`  // child index for value <= threshold
	Right     int     `json:"right"` // child index for value > threshold
	Value     float64 `json:"value"` // P(stopped) estimate at this node
}

// Tree is a single decision tree stored as a flat node array rooted at 0
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// ForestArtifact is the persisted random-forest classifier. It is produced by
// the offline training job and consumed read-only here; FeatureNames records
// the exact ordered feature contract the trees were fit on.
type ForestArtifact struct {
	Version      string   `json:"version"`
	TrainedAt    string   `json:"trained_at,omitempty"`
	FeatureNames []string `json:"feature_names"`
	Trees        []Tree   `json:"trees"`
}

// predict walks one tree and returns the leaf probability plus the value shift
// attributed to each feature along the path.
func (t *Tree) predict(features []float64) (float64, []float64, error) {
	if len(t.Nodes) == 0 {
		return 0, nil, fmt.Errorf("tree has no nodes")
	}

	contrib := make([]float64, len(features))
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Feature < 0 {
			return node.Value, contrib, nil
		}
		if node.Feature >= len(features) {
			return 0, nil, fmt.Errorf("tree references feature %d, vector has %d", node.Feature, len(features))
		}

		next := node.Left
		if features[node.Feature] > node.Threshold {
			next = node.Right
		}
		if next < 0 || next >= len(t.Nodes) {
			return 0, nil, fmt.Errorf("tree child index %d out of range", next)
		}

		contrib[node.Feature] += t.Nodes[next].Value - node.Value
		idx = next
	}
}

// Predict averages the per-tree probabilities and path contributions
func (f *ForestArtifact) Predict(features []float64) (float64, []float64, error) {
	if len(f.Trees) == 0 {
		return 0, nil, fmt.Errorf("forest artifact has no trees")
	}

	prob := 0.0
	contrib := make([]float64, len(features))
	for i := range f.Trees {
		p, c, err := f.Trees[i].predict(features)
		if err != nil {
			return 0, nil, fmt.Errorf("tree %d: %w", i, err)
		}
		prob += p
		for j := range c {
			contrib[j] += c[j]
		}
	}

	n := float64(len(f.Trees))
	for j := range contrib {
		contrib[j] /= n
	}
	return prob / n, contrib, nil
}
