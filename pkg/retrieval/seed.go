package retrieval

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Examples []Example `yaml:"examples"`
}

// LoadSeed reads reference examples from a YAML file of the form
//
//	examples:
//	  - category: wordiness
//	    pattern: in order to
//	    replacement: to
//	    example: "We met in order to plan. -> We met to plan."
//	    guidance: Drop "in order" before an infinitive.
func LoadSeed(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]Example, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, ex := range f.Examples {
		if err := ex.Validate(); err != nil {
			return nil, fmt.Errorf("seed example %d: %w", i, err)
		}
	}
	return f.Examples, nil
}
