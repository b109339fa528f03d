// Package config holds kismap's settings, read from an optional YAML file
// and overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"kismap/internal/export"
	"kismap/internal/filter"
	"kismap/internal/heatmap"
	"kismap/internal/kismet"
	"kismap/internal/wifi"
)

const (
	DefaultOutput   = "kismet_heatmap.html"
	DefaultDebounce = 2 * time.Second
)

// FilterConfig mirrors filter.Criteria with plain strings for YAML.
type FilterConfig struct {
	Bands      []string `yaml:"bands"`
	MinSignal  int      `yaml:"min_signal"`
	Types      []string `yaml:"types"`
	SSIDs      []string `yaml:"essids"`
	MACs       []string `yaml:"macs"`
	AllDevices bool     `yaml:"all_devices"`
}

// ExportConfig selects extra files written next to the map.
type ExportConfig struct {
	CSV     bool `yaml:"csv"`
	GeoJSON bool `yaml:"geojson"`
	WiGLE   bool `yaml:"wigle"`
}

// WatchConfig controls regeneration on capture changes.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig defines runtime logging behavior.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Config is the root configuration.
type Config struct {
	Input   string          `yaml:"input"`
	Output  string          `yaml:"output"`
	Driver  string          `yaml:"driver"`
	Verbose bool            `yaml:"verbose"`
	Filter  FilterConfig    `yaml:"filter"`
	Map     heatmap.Options `yaml:"map"`
	Export  ExportConfig    `yaml:"export"`
	Watch   WatchConfig     `yaml:"watch"`
	Logging LoggingConfig   `yaml:"logging"`
}

func Default() Config {
	return Config{
		Output: DefaultOutput,
		Driver: string(kismet.DefaultDriver),
		Filter: FilterConfig{
			MinSignal: filter.DefaultMinSignal,
		},
		Map: heatmap.DefaultOptions(),
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	// #nosec G304 -- path is chosen by the user on the command line.
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}

		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	cfg.FillMissingDefaults()

	return cfg, nil
}

func (c *Config) FillMissingDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Driver == "" {
		c.Driver = string(kismet.DefaultDriver)
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Encoding == "" {
		c.Logging.Encoding = "console"
	}
	c.Map.FillMissingDefaults()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input file is required (-i/--input)")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output file is required")
	}
	if _, err := kismet.ParseDriver(c.Driver); err != nil {
		return err
	}
	if _, err := c.Criteria(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Encoding) {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log encoding: %q", c.Logging.Encoding)
	}

	return nil
}

// Criteria converts the filter section.
func (c Config) Criteria() (filter.Criteria, error) {
	crit := filter.Criteria{
		MinSignal:  c.Filter.MinSignal,
		Types:      c.Filter.Types,
		SSIDs:      c.Filter.SSIDs,
		MACs:       c.Filter.MACs,
		AllDevices: c.Filter.AllDevices,
	}
	for _, raw := range c.Filter.Bands {
		b, err := wifi.ParseBand(raw)
		if err != nil {
			return filter.Criteria{}, err
		}
		crit.Bands = append(crit.Bands, b)
	}

	return crit, nil
}

// Formats lists the enabled exports in a fixed order.
func (c Config) Formats() []export.Format {
	var formats []export.Format
	if c.Export.CSV {
		formats = append(formats, export.FormatCSV)
	}
	if c.Export.GeoJSON {
		formats = append(formats, export.FormatGeoJSON)
	}
	if c.Export.WiGLE {
		formats = append(formats, export.FormatWiGLE)
	}

	return formats
}
