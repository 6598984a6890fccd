package scoring

import (
	"fmt"
	"math"
)

// Weights blends the four factor scores into one combined score.
type Weights struct {
	Text     float64
	Category float64
	Material float64
	Color    float64
}

// DefaultWeights returns the production blend: text similarity dominates,
// category refines, material and color nudge.
func DefaultWeights() Weights {
	return Weights{Text: 0.75, Category: 0.15, Material: 0.05, Color: 0.05}
}

// Validate rejects negative weights and blends that do not sum to 1.0.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"text": w.Text, "category": w.Category, "material": w.Material, "color": w.Color,
	} {
		if v < 0 {
			return fmt.Errorf("%s weight must be non-negative, got %v", name, v)
		}
	}
	sum := w.Text + w.Category + w.Material + w.Color
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("similarity weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Combine blends the factor vectors under the weights. When all three
// keyword vectors are zero the text similarities pass through exactly, so
// purely semantic queries keep their raw cosine scale instead of being
// scaled down by the text weight.
func (w Weights) Combine(text, category, material, color []float64) []float64 {
	combined := make([]float64, len(text))
	if !anyPositive(category) && !anyPositive(material) && !anyPositive(color) {
		copy(combined, text)
		return combined
	}
	for i := range combined {
		combined[i] = w.Text*text[i] +
			w.Category*category[i] +
			w.Material*material[i] +
			w.Color*color[i]
	}
	return combined
}

func anyPositive(scores []float64) bool {
	for _, s := range scores {
		if s > 0 {
			return true
		}
	}
	return false
}
