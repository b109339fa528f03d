// Package export writes filtered packets to files next to the HTML map.
package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"kismap/internal/kismet"
)

// Format is an export file type.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatGeoJSON Format = "geojson"
	FormatWiGLE   Format = "wigle"
)

var extensions = map[Format]string{
	FormatCSV:     ".csv",
	FormatGeoJSON: ".geojson",
	FormatWiGLE:   ".wigle.csv",
}

// Path derives an export path from the map's path by swapping ".html" for the
// format's extension. Paths without ".html" get the extension appended so the
// map is never overwritten.
func Path(htmlPath string, f Format) string {
	ext := extensions[f]
	if strings.Contains(htmlPath, ".html") {
		return strings.ReplaceAll(htmlPath, ".html", ext)
	}

	return htmlPath + ext
}

// CSVPath is Path(htmlPath, FormatCSV).
func CSVPath(htmlPath string) string {
	return Path(htmlPath, FormatCSV)
}

// WriteAll writes every requested format concurrently and returns the written
// paths in request order.
func WriteAll(ctx context.Context, htmlPath string, formats []Format, ds *kismet.Dataset) ([]string, error) {
	paths := make([]string, len(formats))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		write, err := writerFor(f, ds)
		if err != nil {
			return nil, err
		}
		path := Path(htmlPath, f)
		paths[i] = path

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return writeFile(path, write)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func writerFor(f Format, ds *kismet.Dataset) (func(io.Writer) error, error) {
	switch f {
	case FormatCSV:
		return func(w io.Writer) error { return WriteCSV(w, ds.Packets) }, nil
	case FormatGeoJSON:
		return func(w io.Writer) error { return WriteGeoJSON(w, ds.Packets) }, nil
	case FormatWiGLE:
		return func(w io.Writer) error { return WriteWiGLE(w, ds.Packets, ds.Devices) }, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		_ = f.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()

		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Close()
}
