package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sectionSetter decodes one top-level overlay node into its Config section.
type sectionSetter func(cfg *Config, node *yaml.Node) error

// overlaySections maps the top-level YAML keys an overlay may replace.
//
//nolint:gochecknoglobals // Fixed lookup table.
var overlaySections = map[string]sectionSetter{
	"api": func(cfg *Config, node *yaml.Node) error {
		return replaceSection(node, &cfg.API)
	},
	"ui": func(cfg *Config, node *yaml.Node) error {
		return replaceSection(node, &cfg.UI)
	},
	"logging": func(cfg *Config, node *yaml.Node) error {
		return replaceSection(node, &cfg.Logging)
	},
}

// replaceSection decodes node into a zero value before storing it, so fields
// the overlay omits end up zeroed rather than inherited.
func replaceSection[S any](node *yaml.Node, dst *S) error {
	var section S
	if err := node.Decode(&section); err != nil {
		return err
	}
	*dst = section
	return nil
}

// ShallowMergeYAML applies the overlay file at overlayPath onto target.
// Each known top-level section present in the overlay replaces the whole
// section in target; unknown keys and absent sections are left alone.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("merge overlay: nil config")
	}

	raw, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay %s: %w", overlayPath, err)
	}

	var doc map[string]yaml.Node
	if err = yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing overlay %s: %w", overlayPath, err)
	}

	for name, node := range doc {
		set, ok := overlaySections[name]
		if !ok {
			continue
		}
		if err = set(target, &node); err != nil {
			return fmt.Errorf("overlay section %q: %w", name, err)
		}
	}
	return nil
}
