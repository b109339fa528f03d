package heatmap

// TileLayer is a base map selectable in the layer control.
type TileLayer struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Attribution string `yaml:"attribution" json:"attribution"`
	MaxZoom     int    `yaml:"max_zoom" json:"maxZoom"`
}

// Options tune the rendered page.
type Options struct {
	Zoom       int         `yaml:"zoom"`
	NoHeatmap  bool        `yaml:"no_heatmap"`
	Radius     int         `yaml:"radius"`
	Blur       int         `yaml:"blur"`
	MinOpacity float64     `yaml:"min_opacity"`
	Tiles      []TileLayer `yaml:"tiles"`

	// RunID is printed in the page footer.
	RunID string `yaml:"-"`
}

// DefaultTiles are OpenStreetMap plus CartoDB's dark and light styles.
func DefaultTiles() []TileLayer {
	return []TileLayer{
		{
			Name:        "OpenStreetMap",
			URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
			MaxZoom:     19,
		},
		{
			Name:        "Dark Mode",
			URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
			MaxZoom:     20,
		},
		{
			Name:        "Light Mode",
			URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
			MaxZoom:     20,
		},
	}
}

func DefaultOptions() Options {
	return Options{
		Zoom:       18,
		Radius:     20,
		Blur:       15,
		MinOpacity: 0.4,
		Tiles:      DefaultTiles(),
	}
}

// FillMissingDefaults replaces zero values with defaults.
func (o *Options) FillMissingDefaults() {
	d := DefaultOptions()
	if o.Zoom <= 0 {
		o.Zoom = d.Zoom
	}
	if o.Zoom > 20 {
		o.Zoom = 20
	}
	if o.Radius <= 0 {
		o.Radius = d.Radius
	}
	if o.Blur <= 0 {
		o.Blur = d.Blur
	}
	if o.MinOpacity <= 0 || o.MinOpacity > 1 {
		o.MinOpacity = d.MinOpacity
	}
	if len(o.Tiles) == 0 {
		o.Tiles = d.Tiles
	}
}
