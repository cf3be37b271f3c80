package excerpt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FeatureKey identifies an optional capability of the environment that
// generated source targets.
type FeatureKey string

// GeneratedAnnotation is the capability to mark generated code with a
// provenance annotation. Its value is the annotation's type name, e.g.
// javax.annotation.processing.Generated.
const GeneratedAnnotation FeatureKey = "generated-annotation"

// Capability is the optionally-present value of a feature.
type Capability struct {
	value   string
	present bool
}

// Present returns an available capability with the given value.
func Present(value string) Capability {
	return Capability{value: value, present: true}
}

// Absent returns an unavailable capability.
func Absent() Capability {
	return Capability{}
}

// Get returns the capability's value, and whether it is available.
func (c Capability) Get() (string, bool) {
	return c.value, c.present
}

// IfPresent calls fn with the capability's value if it is available. A
// missing capability is not an error.
func (c Capability) IfPresent(fn func(value string) error) error {
	if !c.present {
		return nil
	}
	return fn(c.value)
}

// Environment records which optional features are available in the target
// environment, and their values.
type Environment map[FeatureKey]string

// Feature looks up key in the environment. A nil Environment has no
// features.
func (env Environment) Feature(key FeatureKey) Capability {
	if v, has := env[key]; has {
		return Present(v)
	}
	return Absent()
}

type environmentFile struct {
	Features map[FeatureKey]string `yaml:"features"`
}

// LoadEnvironment reads an Environment from YAML of the form:
//
//	features:
//	  generated-annotation: javax.annotation.processing.Generated
func LoadEnvironment(r io.Reader) (Environment, error) {
	var ef environmentFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ef); err != nil {
		if errors.Is(err, io.EOF) {
			return Environment{}, nil
		}
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	env := make(Environment, len(ef.Features))
	for k, v := range ef.Features {
		if v == "" {
			return nil, fmt.Errorf("invalid environment: feature %q has an empty value", k)
		}
		env[k] = v
	}
	return env, nil
}

// LoadEnvironmentFile is like [LoadEnvironment], reading from the named file.
func LoadEnvironmentFile(path string) (Environment, error) {
	b, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("%s: error reading environment: %w", path, err)
	}
	env, err := LoadEnvironment(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}
