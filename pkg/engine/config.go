package engine

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"
)

type Config struct {
	Iterations   int     `yaml:"iterations"`
	ExploreConst float64 `yaml:"explore_const"`
	// NumWorkers is het aantal goroutines dat dezelfde boom doorzoekt.
	// 0 = runtime.NumCPU().
	NumWorkers  int  `yaml:"num_workers"`
	VirtualLoss bool `yaml:"virtual_loss"`
	// Seed voor reproduceerbare zoektochten; 0 = willekeurig.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig: 2500 iteraties, exploratie 0.7, 2 threads.
func DefaultConfig() Config {
	return Config{
		Iterations:   2500,
		ExploreConst: 0.7,
		NumWorkers:   2,
		VirtualLoss:  true,
	}
}

func (c Config) seed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return int64(frand.Uint64n(math.MaxInt64))
}

// LoadConfig leest een YAML-bestand. Ontbrekende velden houden hun
// standaardwaarde.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "config %s lezen", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "config %s parsen", path)
	}
	return cfg, nil
}

// SaveConfig schrijft cfg als YAML.
func SaveConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config serialiseren")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "config %s schrijven", path)
}
