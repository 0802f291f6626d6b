package types

// Embedding represents a vector embedding for a code sample
type Embedding struct {
	Vector []float32 `toml:"vector" json:"vector"` // The embedding vector
}

// StructuralMetrics holds the counters extracted from one parsed source
// file. The zero value doubles as the sentinel for input that failed to
// parse.
type StructuralMetrics struct {
	Functions    int `toml:"functions" json:"functions"`       // Function definitions
	Loops        int `toml:"loops" json:"loops"`               // for and while loops
	Conditionals int `toml:"conditionals" json:"conditionals"` // if statements
	MaxDepth     int `toml:"max_depth" json:"max_depth"`       // Deepest node nesting observed
}

// NormalizedVector is the bounded [0,1] feature vector derived from
// StructuralMetrics, one entry per counter.
type NormalizedVector [4]float64

// Classification is the binary verdict for an analyzed sample
type Classification string

const (
	ClassNormal    Classification = "NORMAL"
	ClassAnomalous Classification = "ANOMALOUS"
)

// AnomalyResult is the outcome of scoring one code sample
type AnomalyResult struct {
	Score           float64           `json:"score"`            // Weighted, scaled combination of both signals
	Classification  Classification    `json:"classification"`   // NORMAL or ANOMALOUS
	SemanticScore   float64           `json:"semantic_score"`   // 1 - cosine similarity to the baseline mean
	StructuralScore float64           `json:"structural_score"` // Dispersion of the normalized metrics
	Metrics         StructuralMetrics `json:"metrics"`          // Raw counters for the sample
}

// FileResult pairs an AnomalyResult with the file it was computed from
type FileResult struct {
	File   string        `json:"file"`
	Result AnomalyResult `json:"result"`
}

// Metric names used as BaselineProfile.MeanMetrics keys
const (
	MetricFunctions    = "functions"
	MetricLoops        = "loops"
	MetricConditionals = "conditionals"
	MetricMaxDepth     = "max_depth"
)

// BaselineProfile holds what training learned from a corpus of normal
// code: the mean embedding and the per-metric arithmetic means. It is
// built in one pass and treated as immutable afterwards.
type BaselineProfile struct {
	MeanEmbedding Embedding          `toml:"mean_embedding"`
	MeanMetrics   map[string]float64 `toml:"mean_metrics"`
	SampleCount   int                `toml:"sample_count"`
}
