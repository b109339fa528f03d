// Package runner performs one load, filter, render and export pass.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kismap/internal/config"
	"kismap/internal/export"
	"kismap/internal/heatmap"
	"kismap/internal/kismet"
	"kismap/internal/report"
)

// ErrInputNotFound is returned when the capture file does not exist.
var ErrInputNotFound = errors.New("input file not found")

var exportLabels = map[export.Format]string{
	export.FormatCSV:     "CSV",
	export.FormatGeoJSON: "GeoJSON",
	export.FormatWiGLE:   "WiGLE CSV",
}

// Result describes what a pass produced.
type Result struct {
	RunID   string
	Devices int
	Packets int
	// MapPath is empty when no packet matched the filters.
	MapPath string
	Exports []string
}

// Run executes one pass with cfg, printing progress to out.
func Run(ctx context.Context, cfg config.Config, out io.Writer, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	res := &Result{RunID: uuid.NewString()}
	logger = logger.With(zap.String("run_id", res.RunID))

	crit, err := cfg.Criteria()
	if err != nil {
		return nil, err
	}
	driver, err := kismet.ParseDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.Input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, cfg.Input)
		}

		return nil, fmt.Errorf("stat input: %w", err)
	}

	fmt.Fprintf(out, "Loading data from %s...\n", cfg.Input)
	capture, err := kismet.Open(ctx, cfg.Input, driver, logger)
	if err != nil {
		return nil, err
	}
	defer capture.Close()

	ds, err := kismet.Load(ctx, capture)
	if err != nil {
		return nil, err
	}
	ds.Packets = crit.Apply(ds.Packets)
	res.Devices, res.Packets = len(ds.Devices), len(ds.Packets)

	fmt.Fprintf(out, "Found %d packets and %d devices\n", res.Packets, res.Devices)
	logger.Info("capture filtered",
		zap.String("input", cfg.Input),
		zap.Int("packets", res.Packets),
		zap.Int("devices", res.Devices),
	)

	if cfg.Verbose {
		report.Summarize(ds.Packets).Print(out)
	}

	fmt.Fprintln(out, "\nGenerating heatmap...")
	opts := cfg.Map
	opts.RunID = res.RunID
	m, err := heatmap.Build(ds.Packets, ds.Devices, opts)
	if errors.Is(err, heatmap.ErrNoPackets) {
		fmt.Fprintln(out, "No packets match the filter criteria!")

		return res, nil
	}
	if err != nil {
		return nil, err
	}

	if err := m.Save(cfg.Output); err != nil {
		return nil, err
	}
	res.MapPath = cfg.Output
	success := color.New(color.FgGreen)
	success.Fprintf(out, "✓ Heatmap saved to: %s\n", cfg.Output)

	formats := cfg.Formats()
	if len(formats) > 0 {
		paths, err := export.WriteAll(ctx, cfg.Output, formats, ds)
		if err != nil {
			return nil, err
		}
		res.Exports = paths
		for i, p := range paths {
			success.Fprintf(out, "✓ %s exported to: %s\n", exportLabels[formats[i]], p)
		}
	}

	fmt.Fprintf(out, "\nOpen %s in a web browser to view the heatmap!\n", cfg.Output)
	logger.Debug("pass complete", zap.String("map", res.MapPath), zap.Strings("exports", res.Exports))

	return res, nil
}
