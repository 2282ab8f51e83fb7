package uml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/umlsvg/pkg/errors"
)

// Kind is a relation kind.
type Kind string

// Relation kinds.
const (
	Association    Kind = "association"
	Bidirectional  Kind = "bidirectional"
	Aggregation    Kind = "aggregation"
	Composition    Kind = "composition"
	Dependency     Kind = "dependency"
	Generalization Kind = "generalization"
	Realization    Kind = "realization"
)

// Kinds lists every relation kind.
var Kinds = []Kind{Association, Bidirectional, Aggregation, Composition, Dependency, Generalization, Realization}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// Model is a class model.
type Model struct {
	Classes   []Class    `yaml:"classes" json:"classes"`
	Relations []Relation `yaml:"relations,omitempty" json:"relations,omitempty"`
}

// Class is one class box.
type Class struct {
	Name       string   `yaml:"name" json:"name"`
	Package    string   `yaml:"package,omitempty" json:"package,omitempty"`
	Stereotype string   `yaml:"stereotype,omitempty" json:"stereotype,omitempty"`
	Attributes []string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Operations []string `yaml:"operations,omitempty" json:"operations,omitempty"`
}

// Relation connects two classes by name.
type Relation struct {
	From  string `yaml:"from" json:"from"`
	To    string `yaml:"to" json:"to"`
	Kind  Kind   `yaml:"kind" json:"kind"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

// Parse decodes and validates a YAML model. Unknown keys are rejected.
func Parse(data []byte) (*Model, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes and validates a YAML model from r.
func Read(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.New(errs.ErrCodeInvalidModel, "model is empty")
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidModel, err, "parse model")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and validates the model file at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "model %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return Parse(data)
}

// Validate checks class names and relation references.
func (m *Model) Validate() error {
	if len(m.Classes) == 0 {
		return errs.New(errs.ErrCodeInvalidModel, "model has no classes")
	}
	seen := make(map[string]bool, len(m.Classes))
	for i, c := range m.Classes {
		if err := errs.ValidateIdentifier("class", c.Name); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidModel, err, "class %d", i)
		}
		if seen[c.Name] {
			return errs.New(errs.ErrCodeInvalidModel, "duplicate class %q", c.Name)
		}
		seen[c.Name] = true
	}
	for i, r := range m.Relations {
		if !r.Kind.Valid() {
			return errs.New(errs.ErrCodeInvalidModel, "relation %d: unknown kind %q", i, r.Kind)
		}
		for _, end := range []string{r.From, r.To} {
			if !seen[end] {
				return errs.New(errs.ErrCodeInvalidModel, "relation %d: unknown class %q", i, end)
			}
		}
	}
	return nil
}

// Marshal encodes m as YAML.
func (m *Model) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
