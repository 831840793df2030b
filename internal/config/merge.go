package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyBatch   = "batch"
	keyLogging = "logging"
	keyOutput  = "output"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyBatch:   true,
	keyLogging: true,
	keyOutput:  true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// the target Config. Fields set inside a section replace the target's
// fields; fields the section omits keep their current values. Sections
// absent from the file are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// decodeSection decodes node onto a copy of the named section and stores it
// back only when decoding succeeds, so a malformed section leaves target intact.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyBatch:
		v := target.Batch
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Batch = v
	case keyLogging:
		v := target.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyOutput:
		v := target.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
