package structural_test

import (
	"math"
	"testing"

	"codeanomaly/structural"
	"codeanomaly/types"
)

func TestExtractMetricsCounters(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		functions    int
		loops        int
		conditionals int
	}{
		{
			name:      "single function",
			source:    "def add(a, b):\n    return a + b\n",
			functions: 1,
		},
		{
			name:   "for and while loops",
			source: "for i in range(3):\n    x = i\nwhile x:\n    x = x - 1\n",
			loops:  2,
		},
		{
			name:         "nested conditionals",
			source:       "if a:\n    if b:\n        pass\nif c:\n    pass\n",
			conditionals: 3,
		},
		{
			name: "mixed",
			source: "def f():\n" +
				"    for i in range(2):\n" +
				"        if i:\n" +
				"            pass\n" +
				"\n" +
				"def g():\n" +
				"    while True:\n" +
				"        break\n",
			functions:    2,
			loops:        2,
			conditionals: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics, ok := structural.ExtractMetrics([]byte(tt.source))
			if !ok {
				t.Fatalf("ExtractMetrics() reported parse failure for valid source")
			}
			if metrics.Functions != tt.functions {
				t.Errorf("Functions = %d, expected %d", metrics.Functions, tt.functions)
			}
			if metrics.Loops != tt.loops {
				t.Errorf("Loops = %d, expected %d", metrics.Loops, tt.loops)
			}
			if metrics.Conditionals != tt.conditionals {
				t.Errorf("Conditionals = %d, expected %d", metrics.Conditionals, tt.conditionals)
			}
			if metrics.MaxDepth < 2 {
				t.Errorf("MaxDepth = %d, expected at least 2", metrics.MaxDepth)
			}
		})
	}
}

func TestExtractMetricsNestingDepth(t *testing.T) {
	shallow, ok := structural.ExtractMetrics([]byte("x = 1\n"))
	if !ok {
		t.Fatalf("ExtractMetrics() reported parse failure for valid source")
	}

	deep, ok := structural.ExtractMetrics([]byte(
		"if a:\n" +
			"    if b:\n" +
			"        if c:\n" +
			"            if d:\n" +
			"                pass\n"))
	if !ok {
		t.Fatalf("ExtractMetrics() reported parse failure for valid source")
	}

	if deep.MaxDepth <= shallow.MaxDepth {
		t.Errorf("expected nested source to be deeper: deep=%d shallow=%d", deep.MaxDepth, shallow.MaxDepth)
	}
}

func TestExtractMetricsUnparsable(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "broken def", source: "def broken(:\n"},
		{name: "unclosed paren", source: "print((1\n"},
		{name: "stray indent", source: "    ]]]]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics, ok := structural.ExtractMetrics([]byte(tt.source))
			if ok {
				t.Fatalf("ExtractMetrics() did not report parse failure")
			}
			if metrics != (types.StructuralMetrics{}) {
				t.Errorf("expected zero metrics for unparsable input, got %+v", metrics)
			}
		})
	}
}

func TestNormalizeBounds(t *testing.T) {
	tests := []struct {
		name     string
		metrics  types.StructuralMetrics
		expected types.NormalizedVector
	}{
		{
			name:     "all zero",
			metrics:  types.StructuralMetrics{},
			expected: types.NormalizedVector{0, 0, 0, 0},
		},
		{
			name:     "typical values",
			metrics:  types.StructuralMetrics{Functions: 2, Loops: 5, Conditionals: 3, MaxDepth: 4},
			expected: types.NormalizedVector{0.2, 0.5, 0.2, 0.5},
		},
		{
			name:     "at the caps",
			metrics:  types.StructuralMetrics{Functions: 10, Loops: 10, Conditionals: 15, MaxDepth: 8},
			expected: types.NormalizedVector{1, 1, 1, 1},
		},
		{
			name:     "beyond the caps",
			metrics:  types.StructuralMetrics{Functions: 100, Loops: 50, Conditionals: 90, MaxDepth: 64},
			expected: types.NormalizedVector{1, 1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := structural.Normalize(tt.metrics)
			for i, v := range normalized {
				if v < 0 || v > 1 {
					t.Errorf("entry %d = %f, outside [0,1]", i, v)
				}
				if math.Abs(v-tt.expected[i]) > 1e-9 {
					t.Errorf("entry %d = %f, expected %f", i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestScoreUniformShapeIsZero(t *testing.T) {
	tests := []struct {
		name    string
		metrics types.StructuralMetrics
	}{
		{name: "all zero", metrics: types.StructuralMetrics{}},
		{name: "all saturated", metrics: types.StructuralMetrics{Functions: 10, Loops: 10, Conditionals: 15, MaxDepth: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if score := structural.Score(tt.metrics); score != 0 {
				t.Errorf("Score() = %f, expected 0 for uniform normalized vector", score)
			}
		})
	}
}

func TestScorePermutationInvariance(t *testing.T) {
	// All four shapes normalize to one entry at 1.0 and three at 0, so
	// the dispersion must not depend on which axis carries the spike.
	shapes := []types.StructuralMetrics{
		{Functions: 10},
		{Loops: 10},
		{Conditionals: 15},
		{MaxDepth: 8},
	}

	first := structural.Score(shapes[0])
	for i, m := range shapes[1:] {
		if score := structural.Score(m); math.Abs(score-first) > 1e-9 {
			t.Errorf("shape %d scored %f, expected %f", i+1, score, first)
		}
	}

	if first <= 0 {
		t.Errorf("spiked shape scored %f, expected a positive dispersion", first)
	}
}

func TestScoreHighDispersion(t *testing.T) {
	// One wildly atypical axis (deep nesting, many conditionals, nothing
	// else) should push the score well up.
	metrics := types.StructuralMetrics{Conditionals: 8, MaxDepth: 8}

	score := structural.Score(metrics)
	if score < 0.4 {
		t.Errorf("Score() = %f, expected at least 0.4", score)
	}
	if score > 1.0 {
		t.Errorf("Score() = %f, expected at most 1.0", score)
	}
}
