package detector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"codeanomaly/embedding"
	"codeanomaly/structural"
	"codeanomaly/types"
)

// SourceSuffix selects corpus files; everything else is skipped.
const SourceSuffix = ".py"

// Sample is one (name, code) pair from a corpus
type Sample struct {
	Name string
	Code string
}

// Detector scores code samples for anomalousness against a baseline
// learned from normal code. It starts untrained; Train installs a
// BaselineProfile and retraining atomically replaces it, so concurrent
// Score calls always observe one consistent profile.
type Detector struct {
	provider embedding.Provider
	policy   Policy
	log      zerolog.Logger

	mu      sync.RWMutex
	profile *types.BaselineProfile
}

// New creates an untrained detector using the given embedding provider
// and scoring policy
func New(provider embedding.Provider, policy Policy, log zerolog.Logger) *Detector {
	return &Detector{
		provider: provider,
		policy:   policy,
		log:      log,
	}
}

// Policy returns the scoring policy the detector was built with
func (d *Detector) Policy() Policy {
	return d.policy
}

// Ready reports whether a baseline profile is installed
func (d *Detector) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.profile != nil
}

// Profile returns the current baseline profile, or nil when untrained.
// The returned profile must be treated as read-only.
func (d *Detector) Profile() *types.BaselineProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.profile
}

// SetProfile installs a previously computed baseline profile, moving the
// detector to the ready state without a training pass
func (d *Detector) SetProfile(profile *types.BaselineProfile) error {
	if profile == nil || len(profile.MeanEmbedding.Vector) == 0 {
		return fmt.Errorf("baseline profile has no mean embedding")
	}
	d.mu.Lock()
	d.profile = profile
	d.mu.Unlock()
	return nil
}

// Train computes a baseline profile over the given samples: the
// element-wise mean of their embeddings and the arithmetic mean of each
// structural metric. Samples that fail to parse or embed are skipped
// with a warning; if none survive, ErrEmptyCorpus is returned and any
// existing profile is left untouched.
func (d *Detector) Train(ctx context.Context, samples []Sample) error {
	var (
		embeddingSum []float64
		count        int

		functionSum    float64
		loopSum        float64
		conditionalSum float64
		depthSum       float64
	)

	for _, sample := range samples {
		metrics, ok := structural.ExtractMetrics([]byte(sample.Code))
		if !ok {
			d.log.Warn().Str("sample", sample.Name).Msg("could not parse sample, skipping")
			continue
		}

		emb, err := d.provider.Embed(ctx, sample.Code)
		if err != nil {
			d.log.Warn().Str("sample", sample.Name).Err(err).Msg("could not embed sample, skipping")
			continue
		}

		if embeddingSum == nil {
			embeddingSum = make([]float64, len(emb.Vector))
		} else if len(emb.Vector) != len(embeddingSum) {
			d.log.Warn().
				Str("sample", sample.Name).
				Int("dimension", len(emb.Vector)).
				Int("expected", len(embeddingSum)).
				Msg("embedding dimension mismatch, skipping")
			continue
		}

		for i, v := range emb.Vector {
			embeddingSum[i] += float64(v)
		}

		functionSum += float64(metrics.Functions)
		loopSum += float64(metrics.Loops)
		conditionalSum += float64(metrics.Conditionals)
		depthSum += float64(metrics.MaxDepth)
		count++
	}

	if count == 0 {
		return ErrEmptyCorpus
	}

	meanVector := make([]float32, len(embeddingSum))
	for i, v := range embeddingSum {
		meanVector[i] = float32(v / float64(count))
	}

	profile := &types.BaselineProfile{
		MeanEmbedding: types.Embedding{Vector: meanVector},
		MeanMetrics: map[string]float64{
			types.MetricFunctions:    functionSum / float64(count),
			types.MetricLoops:        loopSum / float64(count),
			types.MetricConditionals: conditionalSum / float64(count),
			types.MetricMaxDepth:     depthSum / float64(count),
		},
		SampleCount: count,
	}

	d.mu.Lock()
	d.profile = profile
	d.mu.Unlock()

	d.log.Info().Int("samples", count).Int("dimension", len(meanVector)).Msg("baseline profile trained")
	return nil
}

// TrainFromDirectory trains on every source file in dir, in lexicographic
// filename order. Files that cannot be read are skipped with a warning.
func (d *Detector) TrainFromDirectory(ctx context.Context, dir string) error {
	samples, err := d.readCorpus(dir)
	if err != nil {
		return err
	}
	return d.Train(ctx, samples)
}

// Score analyzes a single code sample against the baseline profile.
// Valid only once trained; embedding provider failures are propagated,
// never folded into a NORMAL result.
func (d *Detector) Score(ctx context.Context, code string) (types.AnomalyResult, error) {
	d.mu.RLock()
	profile := d.profile
	d.mu.RUnlock()

	if profile == nil {
		return types.AnomalyResult{}, ErrNotTrained
	}

	// Unparsable input degrades to the zero sentinel; the semantic
	// signal carries the whole score in that case.
	metrics, _ := structural.ExtractMetrics([]byte(code))

	emb, err := d.provider.Embed(ctx, code)
	if err != nil {
		return types.AnomalyResult{}, fmt.Errorf("error embedding sample: %w", err)
	}

	similarity := float64(embedding.CosineSimilarity(emb, profile.MeanEmbedding))
	// Keep the semantic distance in [0,2] even for degenerate vectors
	if similarity > 1 {
		similarity = 1
	} else if similarity < -1 {
		similarity = -1
	}
	semanticScore := 1.0 - similarity

	structuralScore := structural.Score(metrics)

	rawScore := d.policy.SemanticWeight*semanticScore + d.policy.StructuralWeight*structuralScore
	finalScore := rawScore * d.policy.ScaleFactor

	classification := types.ClassNormal
	if finalScore >= d.policy.Threshold {
		classification = types.ClassAnomalous
	}

	return types.AnomalyResult{
		Score:           finalScore,
		Classification:  classification,
		SemanticScore:   semanticScore,
		StructuralScore: structuralScore,
		Metrics:         metrics,
	}, nil
}

// EvaluateDirectory scores every source file in dir, in lexicographic
// filename order. A missing directory yields an empty result rather than
// an error; per-file failures are logged and skipped. The untrained
// precondition still aborts the whole batch.
func (d *Detector) EvaluateDirectory(ctx context.Context, dir string) ([]types.FileResult, error) {
	if !d.Ready() {
		return nil, ErrNotTrained
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.log.Warn().Str("dir", dir).Msg("directory not found")
			return []types.FileResult{}, nil
		}
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	results := make([]types.FileResult, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SourceSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			d.log.Warn().Str("file", entry.Name()).Err(err).Msg("could not read file, skipping")
			continue
		}

		result, err := d.Score(ctx, string(data))
		if err != nil {
			if errors.Is(err, ErrNotTrained) {
				return nil, err
			}
			d.log.Warn().Str("file", entry.Name()).Err(err).Msg("could not score file, skipping")
			continue
		}

		results = append(results, types.FileResult{File: entry.Name(), Result: result})
	}

	return results, nil
}

// readCorpus collects the source files under dir as samples
func (d *Detector) readCorpus(dir string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading corpus directory %s: %w", dir, err)
	}

	var samples []Sample
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SourceSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			d.log.Warn().Str("file", entry.Name()).Err(err).Msg("could not read corpus file, skipping")
			continue
		}

		samples = append(samples, Sample{Name: entry.Name(), Code: string(data)})
	}

	return samples, nil
}
