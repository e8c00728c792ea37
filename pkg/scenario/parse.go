package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/adventure-engine/pkg/game"
)

// ErrInvalidScenario means a scenario file cannot be turned into a game.
var ErrInvalidScenario = errors.New("invalid scenario")

// Parse decodes a scenario. Files named *.json are read as JSON, anything
// else as YAML. Unknown fields are rejected in both formats.
func Parse(data []byte, name string) (*Scenario, error) {
	var s Scenario
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: %s contains invalid JSON", ErrInvalidScenario, name)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: %s failed strict JSON unmarshaling: %w", ErrInvalidScenario, name, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: %s failed strict YAML unmarshaling: %w", ErrInvalidScenario, name, err)
		}
	}
	if s.Title == "" {
		s.Title = TitleFromName(name)
	}
	return &s, nil
}

// ReadFile parses the scenario file at path.
func ReadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return Parse(data, filepath.Base(path))
}

// TitleFromName turns a file name like "old_garden.yaml" into "Old Garden".
func TitleFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return cases.Title(language.English).String(strings.ReplaceAll(base, "_", " "))
}

// Load parses, validates and builds a scenario. rng drives the NPCs; nil
// uses the global source.
func Load(data []byte, name string, rng *rand.Rand) (*game.Definition, error) {
	s, err := Parse(data, name)
	if err != nil {
		return nil, err
	}
	if _, err := Validate(s); err != nil {
		return nil, err
	}
	return Build(s, rng)
}

// Open loads the scenario file at nameOrPath, or the built-in scenario of
// that name when no such file exists.
func Open(nameOrPath string, rng *rand.Rand) (*game.Definition, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		data, err := os.ReadFile(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario %s: %w", nameOrPath, err)
		}
		return Load(data, filepath.Base(nameOrPath), rng)
	}
	data, err := Builtin(nameOrPath)
	if err != nil {
		return nil, err
	}
	return Load(data, nameOrPath+".yaml", rng)
}
