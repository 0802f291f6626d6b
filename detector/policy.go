package detector

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Policy bundles the scoring constants that only make sense chosen
// together: the semantic/structural weights, the scale factor that
// spreads raw scores across a human-readable 0-10-ish range, and the
// classification threshold on that scaled range. The scale factor is a
// tuning constant, not a probability.
type Policy struct {
	SemanticWeight   float64 `toml:"semantic_weight"`
	StructuralWeight float64 `toml:"structural_weight"`
	ScaleFactor      float64 `toml:"scale_factor"`
	Threshold        float64 `toml:"threshold"`
}

// DefaultPolicy leans almost entirely on the semantic signal. Scores land
// roughly on a 0-10 scale; 7.0 and above classifies as anomalous.
func DefaultPolicy() Policy {
	return Policy{
		SemanticWeight:   0.9,
		StructuralWeight: 0.1,
		ScaleFactor:      150.0,
		Threshold:        7.0,
	}
}

// BalancedPolicy gives the structural signal real weight and classifies
// more aggressively. Useful when the corpus is too small for the
// embedding baseline to be trusted on its own.
func BalancedPolicy() Policy {
	return Policy{
		SemanticWeight:   0.6,
		StructuralWeight: 0.4,
		ScaleFactor:      150.0,
		Threshold:        2.5,
	}
}

// Validate checks that the policy constants are usable
func (p Policy) Validate() error {
	if p.SemanticWeight < 0 || p.StructuralWeight < 0 {
		return fmt.Errorf("weights must be non-negative, got %.3f/%.3f", p.SemanticWeight, p.StructuralWeight)
	}
	if p.SemanticWeight+p.StructuralWeight == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	if p.ScaleFactor <= 0 {
		return fmt.Errorf("scale factor must be positive, got %.3f", p.ScaleFactor)
	}
	return nil
}

// LoadPolicy reads a scoring policy from a TOML file
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("error reading policy file: %w", err)
	}

	policy := DefaultPolicy()
	if err := toml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("error parsing policy file: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid policy in %s: %w", path, err)
	}

	return policy, nil
}

// SavePolicy writes a scoring policy to a TOML file
func SavePolicy(policy Policy, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating policy file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(policy); err != nil {
		return fmt.Errorf("error encoding policy TOML: %w", err)
	}

	return nil
}
