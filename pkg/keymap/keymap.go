// Package keymap loads and validates the declarative mapping configuration
// that drives graph construction: namespace declarations, node templates
// turning export fields into typed entities, and edge templates wiring
// entities together.
package keymap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NodeTemplate is the rule for turning one export field into a typed entity.
type NodeTemplate struct {
	JSONField       string   `yaml:"json_field" validate:"required"`
	SubjectTemplate string   `yaml:"subject_template" validate:"required"`
	Types           []string `yaml:"types"`
}

// Keymap is the parsed mapping configuration. It is loaded once per run and
// read-only afterwards.
type Keymap struct {
	// Namespaces maps every prefix referenced elsewhere in the keymap to its
	// namespace URI.
	Namespaces map[string]string `yaml:"namespaces" validate:"required,min=1"`

	// UnitNamespace is the prefix used to resolve bare unit tokens into IRIs.
	UnitNamespace string `yaml:"unit_namespace" validate:"required"`

	// UnitPredicate and ValuePredicate name the relations attaching a unit
	// node and a literal value to a measurement entity.
	UnitPredicate  string `yaml:"unit_predicate" validate:"required"`
	ValuePredicate string `yaml:"value_predicate" validate:"required"`

	// Nodes maps node-keys to node templates. Iteration order is not
	// significant; the builder sorts keys for deterministic output.
	Nodes map[string]NodeTemplate `yaml:"nodes" validate:"required,min=1,dive"`

	// Edges maps a predicate qname to source node-key to target node-keys.
	Edges map[string]map[string][]string `yaml:"edges" validate:"required"`
}

// Load reads and validates a keymap from a YAML file
func Load(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap %s: %w", path, err)
	}
	km, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load keymap %s: %w", path, err)
	}
	return km, nil
}

// Parse unmarshals and validates a keymap from YAML bytes
func Parse(data []byte) (*Keymap, error) {
	var km Keymap
	if err := yaml.Unmarshal(data, &km); err != nil {
		return nil, configErr("document", "", err)
	}
	if err := km.validate(); err != nil {
		return nil, err
	}
	return &km, nil
}

// ExpandQName resolves a prefix:localName string against the namespace table
// and returns the full IRI. Absolute IRIs pass through unchanged. Returns a
// ConfigError wrapping ErrUnknownPrefix or ErrNotQualified otherwise.
func (km *Keymap) ExpandQName(qname string) (string, error) {
	if isAbsoluteIRI(qname) {
		return qname, nil
	}
	prefix, local, ok := strings.Cut(qname, ":")
	if !ok {
		return "", configErr("namespaces", qname, ErrNotQualified)
	}
	uri, declared := km.Namespaces[prefix]
	if !declared {
		return "", configErr("namespaces", prefix, ErrUnknownPrefix)
	}
	return uri + local, nil
}

// UnitIRI resolves a bare unit token against the unit namespace
func (km *Keymap) UnitIRI(sanitizedToken string) string {
	return km.Namespaces[km.UnitNamespace] + sanitizedToken
}

func isAbsoluteIRI(s string) bool {
	return strings.Contains(s, "://") || strings.HasPrefix(s, "urn:")
}
