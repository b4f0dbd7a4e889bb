package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileCatalog is the on-disk YAML shape of a catalog override.
//
//	tasks:
//	  - name: Read Instructions Aloud
//	    style: meta
//	difficulties:
//	  easy: {total: 900, tasks: [60]}
type fileCatalog struct {
	Tasks []struct {
		Name  string `yaml:"name"`
		Style string `yaml:"style"`
	} `yaml:"tasks"`
	Difficulties map[string]struct {
		Total int   `yaml:"total"`
		Tasks []int `yaml:"tasks"`
	} `yaml:"difficulties"`
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	tasks := make([]Task, 0, len(fc.Tasks))
	for _, t := range fc.Tasks {
		tasks = append(tasks, Task{Name: t.Name, Style: Style(t.Style)})
	}

	profiles := make([]Profile, 0, len(fc.Difficulties))
	for label, d := range fc.Difficulties {
		diff, err := ParseDifficulty(label)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, Profile{
			Difficulty:   diff,
			TotalSeconds: d.Total,
			TaskSeconds:  d.Tasks,
		})
	}

	return New(tasks, profiles)
}

// LoadOrDefault loads path when set, otherwise returns the built-in catalog.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
