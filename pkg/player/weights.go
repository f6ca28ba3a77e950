package player

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Weights bevat de instelbare parameters van de biedheuristiek.
// Kan geladen/opgeslagen worden als weights.yaml voor tuning.
type Weights struct {
	StrongHand       float64 `yaml:"strong_hand"`        // sterkte waarboven altijd gespeeld wordt
	MinStrength      float64 `yaml:"min_strength"`       // minimale sterkte voor een lange troefkleur
	MinTrumpCount    float64 `yaml:"min_trump_count"`    // meer dan zoveel troeven nodig bij MinStrength
	TrumpLengthBonus float64 `yaml:"trump_length_bonus"` // extra sterkte per troefkaart
}

// DefaultWeights geeft de handmatig ingestelde waarden.
func DefaultWeights() Weights {
	return Weights{
		StrongHand:    40,
		MinStrength:   20,
		MinTrumpCount: 3,
	}
}

// WeightParam beschrijft één instelbare parameter met naam, pointer en grenzen.
type WeightParam struct {
	Name string
	Ptr  *float64
	Min  float64
	Max  float64
}

// Params geeft een slice van alle parameters, klaar voor iteratie door de tuner.
func (w *Weights) Params() []WeightParam {
	return []WeightParam{
		{"strong_hand", &w.StrongHand, 20, 80},
		{"min_strength", &w.MinStrength, 0, 40},
		{"min_trump_count", &w.MinTrumpCount, 2, 6},
		{"trump_length_bonus", &w.TrumpLengthBonus, 0, 10},
	}
}

// Clamp zorgt dat een waarde binnen [min, max] blijft.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LoadWeights laadt weights uit een YAML-bestand.
// Geeft DefaultWeights terug als het bestand niet bestaat of ongeldig is.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultWeights(), errors.Wrapf(err, "weights %s lezen", path)
	}
	w := DefaultWeights() // start met defaults zodat ontbrekende velden worden ingevuld
	if err := yaml.Unmarshal(data, &w); err != nil {
		return DefaultWeights(), errors.Wrapf(err, "weights %s parsen", path)
	}
	return w, nil
}

// SaveWeights slaat weights op als YAML.
func SaveWeights(w Weights, path string) error {
	data, err := yaml.Marshal(w)
	if err != nil {
		return errors.Wrap(err, "weights serialiseren")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "weights %s schrijven", path)
}
