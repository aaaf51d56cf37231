package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type profileFile struct {
	Profiles map[string]yaml.Node `yaml:"profiles"`
}

// RegisterFile registers every profile listed under "profiles:" in the YAML
// file at path. A name that is already registered fails the whole file.
func RegisterFile(r *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles file: %w", err)
	}
	return RegisterYAML(r, data)
}

// RegisterYAML is RegisterFile on an in-memory document.
func RegisterYAML(r *Registry, data []byte) error {
	var doc profileFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode profiles file: %w", err)
	}

	// Every name is checked before anything is registered, so a bad file
	// leaves the registry untouched.
	names := make([]string, 0, len(doc.Profiles))
	keys := make(map[string]string, len(doc.Profiles))
	for raw := range doc.Profiles {
		name := strings.TrimSpace(raw)
		if !ValidName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, raw)
		}
		if _, seen := keys[name]; seen || r.Has(name) {
			return fmt.Errorf("%w: %s", ErrDuplicateProfile, name)
		}
		keys[name] = raw
		names = append(names, name)
	}
	sort.Strings(names)

	parsed := make(map[string]EnvironmentProfile, len(names))
	for _, name := range names {
		node := doc.Profiles[keys[name]]
		raw, err := yaml.Marshal(&node)
		if err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		p, err := Decode(raw, FormatYAML)
		if err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		parsed[name] = p
	}
	for _, name := range names {
		if err := r.Register(name, parsed[name]); err != nil {
			return err
		}
	}
	return nil
}
