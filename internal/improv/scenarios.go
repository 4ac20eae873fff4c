package improv

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/scenarios.yaml
var scenariosYAML []byte

// LoadScenarios parses the embedded scenario prompts. Each scenario is a
// short prompt naming a role, a situation, and a hook.
func LoadScenarios() ([]string, error) {
	var doc struct {
		Scenarios []string `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(scenariosYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}
	return doc.Scenarios, nil
}
