package dfrs

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDisplayConfig reads a YAML document over DefaultDisplayConfig. Keys
// use the yaml tags of DisplayConfig; absent keys keep their defaults.
//
//	max_rows: 20
//	float_precision: 2
//	null_marker: "NaN"
//	table_style: ascii
func LoadDisplayConfig(r io.Reader) (DisplayConfig, error) {
	cfg := DefaultDisplayConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return DisplayConfig{}, fmt.Errorf("failed to parse display config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return DisplayConfig{}, err
	}
	return cfg, nil
}

// LoadDisplayConfigFile reads a YAML display configuration from a file.
func LoadDisplayConfigFile(path string) (DisplayConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return DisplayConfig{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	return LoadDisplayConfig(f)
}

// Validate reports settings the renderer cannot honor.
func (cfg DisplayConfig) Validate() error {
	if _, ok := tableStyles[cfg.TableStyle]; !ok {
		return fmt.Errorf("unknown table style %q", cfg.TableStyle)
	}
	if cfg.MaxColWidth < 4 {
		return fmt.Errorf("max_col_width must be at least 4, got %d", cfg.MaxColWidth)
	}
	if cfg.MinColWidth < 0 || cfg.MinColWidth > cfg.MaxColWidth {
		return fmt.Errorf("min_col_width must be between 0 and max_col_width, got %d", cfg.MinColWidth)
	}
	if cfg.FloatPrecision < -1 {
		return fmt.Errorf("float_precision must be -1 or more, got %d", cfg.FloatPrecision)
	}
	return nil
}

// YAML encodes the configuration in the format LoadDisplayConfig reads.
func (cfg DisplayConfig) YAML() ([]byte, error) {
	return yaml.Marshal(cfg)
}
