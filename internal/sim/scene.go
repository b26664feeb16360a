package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnEntry defines one population the spawner maintains: how many
// entities, which components they carry, and the value ranges used when
// materializing them.
type SpawnEntry struct {
	Name     string  `yaml:"name"`
	Count    int     `yaml:"count"`
	AreaW    float64 `yaml:"area_w"`
	AreaH    float64 `yaml:"area_h"`
	MaxSpeed float64 `yaml:"max_speed"`
	Lifetime float64 `yaml:"lifetime"` // seconds; 0 means immortal
	HP       int     `yaml:"hp"`       // 0 means no Health component
	Disabled bool    `yaml:"disabled"` // spawn with the Disabled tag
}

type sceneFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// Scene is the parsed spawn table for a simulation run.
type Scene struct {
	Spawns []SpawnEntry
}

// LoadScene reads and validates a YAML spawn table.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return ParseScene(data)
}

// ParseScene parses a YAML spawn table from memory.
func ParseScene(data []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	for i := range f.Spawns {
		s := &f.Spawns[i]
		if s.Name == "" {
			return nil, fmt.Errorf("parse scene: spawn %d has no name", i)
		}
		if s.Count < 0 {
			return nil, fmt.Errorf("parse scene: spawn %q has negative count", s.Name)
		}
	}
	return &Scene{Spawns: f.Spawns}, nil
}

// TotalCount returns the summed population target across all entries.
func (s *Scene) TotalCount() int {
	total := 0
	for _, e := range s.Spawns {
		total += e.Count
	}
	return total
}
