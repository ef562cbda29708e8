package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes YAML bytes into a film list.
func Parse(data []byte) ([]Film, error) {
	if len(data) == 0 {
		return []Film{}, nil
	}
	var films []Film
	if err := yaml.Unmarshal(data, &films); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if films == nil {
		return []Film{}, nil
	}
	return films, nil
}
