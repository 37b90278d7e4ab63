package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/configarray/configarray"
)

// yamlEntry mirrors the on-disk shape of one config entry. files/ignores
// are kept as plain string lists here; predicate patterns and AND-sequences
// have no YAML representation and are a programmatic-only feature of the
// library.
type yamlEntry struct {
	Name    string         `yaml:"name,omitempty"`
	Files   []string       `yaml:"files,omitempty"`
	Ignores []string       `yaml:"ignores,omitempty"`
	Extra   map[string]any `yaml:",inline"`
}

type yamlDocument struct {
	Entries []yamlEntry `yaml:"entries"`
}

// loadEntriesFile reads a YAML document describing an ordered list of
// config entries and converts it into the raw elements New/Push accept.
func loadEntriesFile(path string) ([]configarray.RawConfigElement, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}

	elements := make([]configarray.RawConfigElement, 0, len(doc.Entries))
	for _, ye := range doc.Entries {
		elements = append(elements, yamlEntryToConfigEntry(ye))
	}
	return elements, nil
}

func yamlEntryToConfigEntry(ye yamlEntry) configarray.ConfigEntry {
	e := configarray.ConfigEntry{}
	for k, v := range ye.Extra {
		e[k] = v
	}
	if ye.Name != "" {
		e["name"] = ye.Name
	}
	if ye.Files != nil {
		e["files"] = ye.Files
	}
	if ye.Ignores != nil {
		e["ignores"] = ye.Ignores
	}
	return e
}
