package heatmap

import (
	"bufio"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

type heatOptions struct {
	Radius     int     `json:"radius"`
	Blur       int     `json:"blur"`
	MinOpacity float64 `json:"minOpacity"`
	MaxZoom    int     `json:"maxZoom"`
}

type pageData struct {
	Center       [2]float64
	Zoom         int
	Tiles        []TileLayer
	Heat         []HeatLayer
	HeatOptions  heatOptions
	AccessPoints any
	PacketCount  int
	RunID        string
}

// Render writes the complete HTML page.
func (m *Map) Render(w io.Writer) error {
	heat := m.Heat
	if heat == nil {
		heat = []HeatLayer{}
	}

	data := pageData{
		Center: m.Center,
		Zoom:   m.Zoom,
		Tiles:  m.Tiles,
		Heat:   heat,
		HeatOptions: heatOptions{
			Radius:     m.Options.Radius,
			Blur:       m.Options.Blur,
			MinOpacity: m.Options.MinOpacity,
			MaxZoom:    18,
		},
		AccessPoints: m.AccessPoints,
		PacketCount:  m.PacketCount,
		RunID:        m.Options.RunID,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render map: %w", err)
	}

	return nil
}

// Save renders into path, replacing any previous file only once the new one
// is complete.
func (m *Map) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp map: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := m.Render(bw); err != nil {
		_ = tmp.Close()

		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write map: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp map: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod map: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp map: %w", err)
	}

	return nil
}
