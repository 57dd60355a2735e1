// Package config loads the optional pipeline tuning file. Fields omitted
// from the JSON keep the stock defaults, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cooperage-labs/visionpipe/internal/vision"
)

// TuningConfig overlays vision.DefaultParams. Every field is optional;
// the JSON schema uses pointer fields so "absent" and "zero" stay
// distinguishable.
type TuningConfig struct {
	BlurRadius        *int     `json:"blur_radius,omitempty"`
	BlurSigma         *float64 `json:"blur_sigma,omitempty"`
	WindowRadius      *int     `json:"window_radius,omitempty"`
	WindowSigma       *float64 `json:"window_sigma,omitempty"`
	HarrisK           *float64 `json:"harris_k,omitempty"`
	ThresholdFraction *float64 `json:"threshold_fraction,omitempty"`
	NMSRadius         *int     `json:"nms_radius,omitempty"`
	MarkerRadius      *int     `json:"marker_radius,omitempty"`
	DefaultSize       *int     `json:"default_size,omitempty"`
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The path must
// carry a .json extension and the file is size-capped for safety.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	const maxFileSize = 1 * 1024 * 1024
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &TuningConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the overlay plus the resulting Params, so a bad tuning
// file fails at load time instead of on the first pipeline run.
func (c *TuningConfig) Validate() error {
	if c.DefaultSize != nil {
		if err := vision.ValidateSize(*c.DefaultSize); err != nil {
			return fmt.Errorf("default_size: %w", err)
		}
	}
	return c.Params().Validate()
}

// Params returns vision.DefaultParams with every set field applied.
func (c *TuningConfig) Params() vision.Params {
	p := vision.DefaultParams()
	if c.BlurRadius != nil {
		p.BlurRadius = *c.BlurRadius
	}
	if c.BlurSigma != nil {
		p.BlurSigma = *c.BlurSigma
	}
	if c.WindowRadius != nil {
		p.WindowRadius = *c.WindowRadius
	}
	if c.WindowSigma != nil {
		p.WindowSigma = *c.WindowSigma
	}
	if c.HarrisK != nil {
		p.HarrisK = *c.HarrisK
	}
	if c.ThresholdFraction != nil {
		p.ThresholdFraction = *c.ThresholdFraction
	}
	if c.NMSRadius != nil {
		p.NMSRadius = *c.NMSRadius
	}
	if c.MarkerRadius != nil {
		p.MarkerRadius = *c.MarkerRadius
	}
	return p
}

// Size returns the configured default scene size.
func (c *TuningConfig) Size() int {
	if c.DefaultSize == nil {
		return vision.DefaultSize
	}
	return *c.DefaultSize
}
