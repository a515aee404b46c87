package scoring

import (
	"fmt"
	"math"
)

// Weights distributes the overall score across the five dimensions.
// They are tunable through configuration but must always sum to 1.0.
type Weights struct {
	Skill     float64 `mapstructure:"skill"`
	Seniority float64 `mapstructure:"seniority"`
	Salary    float64 `mapstructure:"salary"`
	Remote    float64 `mapstructure:"remote"`
	Growth    float64 `mapstructure:"growth"`
}

const weightSumTolerance = 1e-9

// DefaultWeights returns the standard distribution: skills dominate,
// seniority and salary matter equally, remote fit and growth are
// tie-breakers.
func DefaultWeights() Weights {
	return Weights{
		Skill:     0.40,
		Seniority: 0.20,
		Salary:    0.20,
		Remote:    0.10,
		Growth:    0.10,
	}
}

// Validate enforces the sum-to-one invariant.
func (w Weights) Validate() error {
	sum := w.Skill + w.Seniority + w.Salary + w.Remote + w.Growth
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("dimension weights must sum to 1.0, got %v", sum)
	}
	return nil
}
