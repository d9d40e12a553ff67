package rubric

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Questions []Entry `yaml:"questions"`
}

// LoadFile reads a rubric definition from a YAML file:
//
//	questions:
//	  - id: 1
//	    question: "..."
//	    criteria_text: |
//	      - Score 4 ...
//
// Structural validation (unique positive ids, non-empty texts) happens in
// NewStore.
func LoadFile(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rubric: read %s: %w", path, err)
	}
	var root fileRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("rubric: parse %s: %w", path, err)
	}
	return NewStore(root.Questions)
}
