package service

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named timer configuration, e.g. a 25 minute countdown.
type Preset struct {
	StartAt   time.Duration `yaml:"start_at" json:"start_at_ms"`
	CountDown bool          `yaml:"count_down" json:"count_down"`
}

// Presets maps preset names to their configuration.
type Presets map[string]Preset

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadPresets reads a presets YAML file. An empty path yields no presets.
func LoadPresets(path string) (Presets, error) {
	if path == "" {
		return Presets{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes a YAML mapping of name to {start_at, count_down}.
// Durations use Go syntax ("25m", "-10s").
func ParsePresets(data []byte) (Presets, error) {
	p := Presets{}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	for name := range p {
		if name == "" {
			return nil, errors.New("decode presets: empty preset name")
		}
	}
	return p, nil
}
