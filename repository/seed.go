package repository

import (
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed seed/grading.yaml
var defaultGradingSeed []byte

type GradingSeed struct {
	Parameters  []GradingParameter `yaml:"parameters"`
	Estimations []Estimation       `yaml:"estimations"`
}

func LoadGradingSeed(r io.Reader) (*GradingSeed, error) {
	seed := &GradingSeed{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(seed); err != nil {
		return nil, fmt.Errorf("invalid grading seed: %w", err)
	}
	for _, estimation := range seed.Estimations {
		if estimation.Score != nil && (*estimation.Score < 1 || *estimation.Score > 5) {
			return nil, fmt.Errorf("invalid grading seed: estimation %q has score %d outside 1-5", estimation.Name, *estimation.Score)
		}
	}
	return seed, nil
}

func DefaultGradingSeed() []byte {
	return defaultGradingSeed
}
