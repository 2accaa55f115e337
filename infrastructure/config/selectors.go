package config

import (
	"fmt"
	"os"

	"account_connector/domain/entities"

	"gopkg.in/yaml.v3"
)

// selectorsFile is the YAML layout of a selector override file:
//
//	selectors:
//	  sign_in: {kind: label, name: "Sign in"}
//	  next_button: {kind: role, role: button, name: "Next"}
type selectorsFile struct {
	Selectors map[entities.UIAction]entities.Selector `yaml:"selectors"`
}

// LoadSelectors reads selector overrides from a YAML file
func LoadSelectors(path string) (entities.SelectorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selectors file: %w", err)
	}
	return ParseSelectors(data)
}

// ParseSelectors decodes and validates a YAML selector table
func ParseSelectors(data []byte) (entities.SelectorTable, error) {
	var file selectorsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse selectors: %w", err)
	}

	table := make(entities.SelectorTable, len(file.Selectors))
	for action, sel := range file.Selectors {
		if err := sel.Validate(); err != nil {
			return nil, fmt.Errorf("selector %s: %w", action, err)
		}
		table[action] = sel
	}
	return table, nil
}
