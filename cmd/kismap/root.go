package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kismap/internal/config"
	"kismap/internal/logging"
	"kismap/internal/runner"
	"kismap/internal/watch"
)

type flags struct {
	configPath string

	input      string
	output     string
	driver     string
	essids     []string
	macs       []string
	types      []string
	bands      []string
	minSignal  int
	allDevices bool
	noHeatmap  bool

	exportCSV     bool
	exportGeoJSON bool
	exportWiGLE   bool

	verbose bool
	watch   bool
}

func newRootCmd() *cobra.Command {
	return newCommand(&flags{})
}

func newCommand(f *flags) *cobra.Command {
	logger := zap.NewNop()

	cmd := &cobra.Command{
		Use:   "kismap -i capture.kismet [flags]",
		Short: "Generate WiFi heatmaps from Kismet .kismet files",
		Long: `kismap reads a Kismet SQLite capture, filters the GPS-tagged packets by
band, signal, SSID, MAC and device type, and writes an interactive Leaflet
heatmap with one layer per band and a cluster of access point markers.`,
		Example: `  kismap -i capture.kismet                    # Basic heatmap
  kismap -i capture.kismet -b 5 -b 6          # 5GHz and 6GHz only
  kismap -i capture.kismet -e "MyWiFi"        # Specific SSID
  kismap -i capture.kismet --export-csv -v    # Verbose + CSV export
  kismap -i live.kismet --watch               # Regenerate while Kismet runs`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			logger, err = logging.New(cfg.Logging, cfg.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return run(cmd, cfg, logger)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVarP(&f.input, "input", "i", "", "Input .kismet file")
	fs.StringVarP(&f.output, "output", "o", config.DefaultOutput, "Output HTML file")
	fs.StringVar(&f.driver, "driver", "sqlite3", "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	fs.StringArrayVarP(&f.essids, "essid", "e", nil, "Filter by ESSID (can repeat)")
	fs.StringArrayVarP(&f.macs, "mac", "m", nil, "Filter by MAC (can repeat)")
	fs.StringArrayVarP(&f.types, "type", "t", nil, "Filter by device type (can repeat)")
	fs.StringArrayVarP(&f.bands, "band", "b", nil, "Filter by band: 2.4, 5, or 6 GHz (can repeat)")
	fs.IntVar(&f.minSignal, "min-signal", -100, "Min signal in dBm")
	fs.BoolVar(&f.allDevices, "all-devices", false, "Show all devices, not just APs")
	fs.BoolVar(&f.noHeatmap, "no-heatmap", false, "Disable heatmap layer")
	fs.BoolVar(&f.exportCSV, "export-csv", false, "Also export to CSV")
	fs.BoolVar(&f.exportGeoJSON, "export-geojson", false, "Also export to GeoJSON")
	fs.BoolVar(&f.exportWiGLE, "export-wigle", false, "Also export a WiGLE upload CSV")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.watch, "watch", false, "Regenerate whenever the capture changes")

	return cmd
}

// resolve layers explicitly set flags over the config file over defaults.
func (f *flags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Input = f.input
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("driver") {
		cfg.Driver = f.driver
	}
	if changed("essid") {
		cfg.Filter.SSIDs = f.essids
	}
	if changed("mac") {
		cfg.Filter.MACs = f.macs
	}
	if changed("type") {
		cfg.Filter.Types = f.types
	}
	if changed("band") {
		cfg.Filter.Bands = f.bands
	}
	if changed("min-signal") {
		cfg.Filter.MinSignal = f.minSignal
	}
	if changed("all-devices") {
		cfg.Filter.AllDevices = f.allDevices
	}
	if changed("no-heatmap") {
		cfg.Map.NoHeatmap = f.noHeatmap
	}
	if changed("export-csv") {
		cfg.Export.CSV = f.exportCSV
	}
	if changed("export-geojson") {
		cfg.Export.GeoJSON = f.exportGeoJSON
	}
	if changed("export-wigle") {
		cfg.Export.WiGLE = f.exportWiGLE
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("watch") {
		cfg.Watch.Enabled = f.watch
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func run(cmd *cobra.Command, cfg config.Config, logger *zap.Logger) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if _, err := runner.Run(ctx, cfg, out, logger); err != nil {
		return err
	}
	if !cfg.Watch.Enabled {
		return nil
	}

	w, err := watch.New(cfg.Input, cfg.Watch.Debounce, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)...\n", cfg.Input)
	logger.Info("watching capture", zap.String("input", cfg.Input), zap.Duration("debounce", cfg.Watch.Debounce))

	return w.Run(ctx, func(ctx context.Context) error {
		fmt.Fprintln(out)
		_, err := runner.Run(ctx, cfg, out, logger)

		return err
	})
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
