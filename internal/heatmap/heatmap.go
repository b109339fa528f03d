// Package heatmap turns filtered packets into an interactive Leaflet page.
package heatmap

import (
	"errors"
	"fmt"
	"html"
	"sort"

	geojson "github.com/paulmach/go.geojson"

	"kismap/internal/kismet"
	"kismap/internal/wifi"
)

// ErrNoPackets is returned by Build when there is nothing to draw.
var ErrNoPackets = errors.New("no packets match the filter criteria")

// HeatLayer is one band's weighted points.
type HeatLayer struct {
	Band   wifi.Band    `json:"band"`
	Name   string       `json:"name"`
	Points [][3]float64 `json:"points"`
}

// Map is the model behind the rendered page.
type Map struct {
	Center       [2]float64
	Zoom         int
	Tiles        []TileLayer
	Heat         []HeatLayer
	AccessPoints *geojson.FeatureCollection
	Options      Options
	PacketCount  int
}

// Build lays out the map for packets. Access point markers come from devices
// and ignore the packet filters.
func Build(packets []kismet.Packet, devices map[string]kismet.Device, opts Options) (*Map, error) {
	if len(packets) == 0 {
		return nil, ErrNoPackets
	}
	opts.FillMissingDefaults()

	m := &Map{
		Center:       center(packets),
		Zoom:         opts.Zoom,
		Tiles:        opts.Tiles,
		AccessPoints: accessPointMarkers(devices),
		Options:      opts,
		PacketCount:  len(packets),
	}
	if !opts.NoHeatmap {
		m.Heat = heatLayers(packets)
	}

	return m, nil
}

func center(packets []kismet.Packet) [2]float64 {
	var lat, lon float64
	for _, p := range packets {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(packets))

	return [2]float64{lat / n, lon / n}
}

func heatLayers(packets []kismet.Packet) []HeatLayer {
	byBand := make(map[wifi.Band][][3]float64)
	for _, p := range packets {
		byBand[p.Band] = append(byBand[p.Band], [3]float64{p.Lat, p.Lon, p.Weight()})
	}

	order := append(append([]wifi.Band{}, wifi.Bands...), wifi.BandUnknown)
	layers := make([]HeatLayer, 0, len(byBand))
	for _, band := range order {
		points := byBand[band]
		if len(points) == 0 {
			continue
		}
		layers = append(layers, HeatLayer{
			Band:   band,
			Name:   fmt.Sprintf("Heatmap %s GHz (%d pts)", band, len(points)),
			Points: points,
		})
	}

	return layers
}

func accessPointMarkers(devices map[string]kismet.Device) *geojson.FeatureCollection {
	macs := make([]string, 0, len(devices))
	for mac, dev := range devices {
		if !dev.HasPosition() || !dev.IsAccessPoint() {
			continue
		}
		macs = append(macs, mac)
	}
	sort.Strings(macs)

	fc := geojson.NewFeatureCollection()
	for _, mac := range macs {
		dev := devices[mac]
		ssid := dev.SSID
		if ssid == "" {
			ssid = "Hidden"
		}

		f := geojson.NewPointFeature([]float64{dev.Lon, dev.Lat})
		f.SetProperty("mac", mac)
		f.SetProperty("tooltip", html.EscapeString(ssid))
		f.SetProperty("popup", popupHTML(ssid, mac, dev))
		fc.AddFeature(f)
	}

	return fc
}

func popupHTML(ssid, mac string, dev kismet.Device) string {
	devType := dev.Type
	if devType == "" {
		devType = "Unknown"
	}

	return fmt.Sprintf(
		"<b>SSID:</b> %s<br><b>MAC:</b> %s<br><b>Signal:</b> %d dBm<br><b>Type:</b> %s<br><b>Encryption:</b> %s",
		html.EscapeString(ssid),
		html.EscapeString(mac),
		dev.StrongestSignal,
		html.EscapeString(devType),
		html.EscapeString(dev.Crypt.String()),
	)
}
