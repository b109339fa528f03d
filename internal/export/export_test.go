package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kismap/internal/kismet"
	"kismap/internal/wifi"
)

func testDataset() *kismet.Dataset {
	return &kismet.Dataset{
		Devices: map[string]kismet.Device{
			"AP:01": {
				MAC: "AP:01", Type: "Wi-Fi AP", SSID: "Cafe, \"Free\"",
				Crypt:     kismet.CryptWPA | kismet.CryptPSK | kismet.CryptAESCCM | kismet.CryptVersionWPA2,
				FirstSeen: time.Unix(1700000000, 0),
			},
			"CL:01": {MAC: "CL:01", Type: "Wi-Fi Client"},
		},
		Packets: []kismet.Packet{
			{Timestamp: 1700000001, Lat: 51.5, Lon: -0.125, Alt: 12.5, Signal: -42, Frequency: 2437000, MAC: "AP:01", Band: wifi.Band24, SSID: "Cafe, \"Free\"", Type: "Wi-Fi AP"},
			{Timestamp: 1700000002, Lat: 51.6, Lon: -0.126, Signal: -80, Frequency: 5180000, MAC: "CL:01", Band: wifi.Band5, Type: "Wi-Fi Client"},
			{Timestamp: 1700000003, Lat: 51.7, Lon: -0.127, Signal: -90, Frequency: 0, MAC: "XX:01", Band: wifi.BandUnknown},
		},
	}
}

func TestPath(t *testing.T) {
	assert.Equal(t, "out/map.csv", Path("out/map.html", FormatCSV))
	assert.Equal(t, "out/map.geojson", Path("out/map.html", FormatGeoJSON))
	assert.Equal(t, "out/map.wigle.csv", Path("out/map.html", FormatWiGLE))
	assert.Equal(t, "a.csv.d/b.csv", CSVPath("a.html.d/b.html"))
	assert.Equal(t, "map.htm.csv", CSVPath("map.htm"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testDataset().Packets))

	want := strings.Join([]string{
		"timestamp,lat,lon,signal,frequency_khz,band,mac,ssid,type",
		`1700000001,51.5,-0.125,-42,2437000,2.4,AP:01,"Cafe; 'Free'",Wi-Fi AP`,
		`1700000002,51.6,-0.126,-80,5180000,5,CL:01,"",Wi-Fi Client`,
		`1700000003,51.7,-0.127,-90,0,unknown,XX:01,"",`,
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, testDataset().Packets))

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 3)
	first := doc.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{-0.125, 51.5}, first.Geometry.Coordinates)
	assert.Equal(t, "2.4", first.Properties["band"])
	assert.Equal(t, "AP:01", first.Properties["mac"])
	assert.EqualValues(t, -42, first.Properties["signal"])
	assert.InDelta(t, 53.0/65.0, first.Properties["weight"], 1e-9)
}

func TestWriteWiGLE(t *testing.T) {
	ds := testDataset()

	var buf bytes.Buffer
	require.NoError(t, WriteWiGLE(&buf, ds.Packets, ds.Devices))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "WigleWifi-1.4,"))
	assert.Equal(t, wigleHeader, lines[1])
	assert.Equal(t, `AP:01,"Cafe, ""Free""",[WPA2-PSK-CCMP][ESS],2023-11-14 22:13:20,6,-42,51.5,-0.125,12.5,0,WIFI`, lines[2])
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "heat.html")

	paths, err := WriteAll(context.Background(), htmlPath, []Format{FormatCSV, FormatGeoJSON, FormatWiGLE}, testDataset())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "heat.csv"),
		filepath.Join(dir, "heat.geojson"),
		filepath.Join(dir, "heat.wigle.csv"),
	}, paths)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestWriteAllUnknownFormat(t *testing.T) {
	_, err := WriteAll(context.Background(), filepath.Join(t.TempDir(), "x.html"), []Format{"kml"}, testDataset())
	assert.Error(t, err)
}

func TestWriteAllUnwritableDir(t *testing.T) {
	htmlPath := filepath.Join(t.TempDir(), "missing", "x.html")
	_, err := WriteAll(context.Background(), htmlPath, []Format{FormatCSV}, testDataset())
	assert.Error(t, err)
}
