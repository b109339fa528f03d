package export

import (
	"io"

	geojson "github.com/paulmach/go.geojson"

	"kismap/internal/kismet"
)

// FeatureCollection turns packets into GeoJSON points.
func FeatureCollection(packets []kismet.Packet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range packets {
		f := geojson.NewPointFeature([]float64{p.Lon, p.Lat})
		f.SetProperty("timestamp", p.Timestamp)
		f.SetProperty("signal", p.Signal)
		f.SetProperty("frequency_khz", p.Frequency)
		f.SetProperty("band", string(p.Band))
		f.SetProperty("mac", p.MAC)
		f.SetProperty("ssid", p.SSID)
		f.SetProperty("type", p.Type)
		f.SetProperty("weight", p.Weight())
		fc.AddFeature(f)
	}

	return fc
}

func WriteGeoJSON(w io.Writer, packets []kismet.Packet) error {
	raw, err := FeatureCollection(packets).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(raw)

	return err
}
