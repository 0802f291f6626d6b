package structural

import (
	"math"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"codeanomaly/python"
	"codeanomaly/types"
)

// Per-metric normalization caps. Each raw counter is divided by its cap
// and clamped at 1.0.
const (
	functionCap    = 10.0
	loopCap        = 10.0
	conditionalCap = 15.0
	depthCap       = 8.0
)

// ExtractMetrics parses source as Python and walks the syntax tree once,
// counting function definitions, loops, if statements and the maximum
// node nesting depth. Input with syntax errors yields the zero sentinel
// and ok=false; callers score such samples on the semantic signal alone.
func ExtractMetrics(source []byte) (types.StructuralMetrics, bool) {
	tree, err := python.Parse(source)
	if err != nil || tree == nil {
		return types.StructuralMetrics{}, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return types.StructuralMetrics{}, false
	}

	var metrics types.StructuralMetrics
	walk(root, 1, &metrics)

	return metrics, true
}

// walk traverses named nodes depth-first. Every node adds one nesting
// level for the duration of its subtree, so MaxDepth measures generic
// structural nesting rather than control-flow nesting alone.
func walk(node *tree_sitter.Node, depth int, metrics *types.StructuralMetrics) {
	if depth > metrics.MaxDepth {
		metrics.MaxDepth = depth
	}

	switch node.Kind() {
	case "function_definition":
		metrics.Functions++
	case "for_statement", "while_statement":
		metrics.Loops++
	case "if_statement":
		metrics.Conditionals++
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		walk(node.NamedChild(i), depth+1, metrics)
	}
}

// Normalize maps the raw counters into a [0,1] feature vector by dividing
// each counter by its cap and clamping at 1.0
func Normalize(metrics types.StructuralMetrics) types.NormalizedVector {
	return types.NormalizedVector{
		math.Min(float64(metrics.Functions)/functionCap, 1.0),
		math.Min(float64(metrics.Loops)/loopCap, 1.0),
		math.Min(float64(metrics.Conditionals)/conditionalCap, 1.0),
		math.Min(float64(metrics.MaxDepth)/depthCap, 1.0),
	}
}

// Score computes the structural anomaly score in [0,1] as the population
// standard deviation of the normalized feature vector. A shape that is
// uniform across all four axes scores near zero; one wildly atypical axis
// drives the score up.
func Score(metrics types.StructuralMetrics) float64 {
	normalized := Normalize(metrics)

	var sum float64
	for _, v := range normalized {
		sum += v
	}
	mean := sum / float64(len(normalized))

	var variance float64
	for _, v := range normalized {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(normalized))

	return math.Min(math.Sqrt(variance), 1.0)
}
