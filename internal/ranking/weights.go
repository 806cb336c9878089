// Package ranking scores candidate/posting pairs and orders the results.
package ranking

import (
	"fmt"
	"math"
)

// weightSumTolerance absorbs float rounding when checking that weights sum to 1.
const weightSumTolerance = 1e-9

// Default factor weights.
const (
	DefaultSkillsWeight     = 0.4
	DefaultLocationWeight   = 0.2
	DefaultExperienceWeight = 0.2
	DefaultSalaryWeight     = 0.1
	DefaultCompanyWeight    = 0.1
)

// Weights is the relative importance of each factor. Values obtained from
// DefaultWeights or NewWeights are non-negative and sum to 1.
type Weights struct {
	Skills     float64 `json:"skills" koanf:"skills"`
	Location   float64 `json:"location" koanf:"location"`
	Experience float64 `json:"experience" koanf:"experience"`
	Salary     float64 `json:"salary" koanf:"salary"`
	Company    float64 `json:"company" koanf:"company"`
}

// DefaultWeights returns 0.4 skills, 0.2 location, 0.2 experience, 0.1 salary, 0.1 company.
func DefaultWeights() Weights {
	return Weights{
		Skills:     DefaultSkillsWeight,
		Location:   DefaultLocationWeight,
		Experience: DefaultExperienceWeight,
		Salary:     DefaultSalaryWeight,
		Company:    DefaultCompanyWeight,
	}
}

// NewWeights validates w and returns it unchanged.
func NewWeights(w Weights) (Weights, error) {
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Location + w.Experience + w.Salary + w.Company
}

// Validate checks that no weight is negative and that the weights sum to 1.
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"skills", w.Skills},
		{"location", w.Location},
		{"experience", w.Experience},
		{"salary", w.Salary},
		{"company", w.Company},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || n.value < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %v", n.name, n.value)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", sum)
	}
	return nil
}
