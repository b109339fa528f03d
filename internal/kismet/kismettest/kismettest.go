// Package kismettest builds small Kismet capture databases for tests.
package kismettest

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Device is a devices table row.
type Device struct {
	MAC             string
	Type            string
	StrongestSignal int
	Lat, Lon        float64
	FirstTime       int64
	JSON            string
}

// Packet is a packets table row.
type Packet struct {
	TS        int64
	MAC       string
	DestMAC   string
	Lat, Lon  float64
	Alt       float64
	Signal    int
	Frequency float64
}

const schema = `
CREATE TABLE devices (
	first_time INT, last_time INT, devkey TEXT, phyname TEXT, devmac TEXT,
	strongest_signal INT, min_lat REAL, min_lon REAL, max_lat REAL, max_lon REAL,
	avg_lat REAL, avg_lon REAL, bytes_data INT, type TEXT, device BLOB
);
CREATE TABLE packets (
	ts_sec INT, ts_usec INT, phyname TEXT, sourcemac TEXT, destmac TEXT,
	transmac TEXT, frequency REAL, devkey TEXT, lat REAL, lon REAL, alt REAL,
	speed REAL, heading REAL, packet_len INT, signal INT, datasource TEXT,
	dlt INT, packet BLOB, error INT, tags TEXT
);
`

// NewCapture writes a capture into a temp dir and returns its path.
func NewCapture(t testing.TB, devices []Device, packets []Packet) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "capture.kismet")
	Write(t, path, devices, packets)

	return path
}

// Write creates the schema at path if needed and appends the given rows.
func Write(t testing.TB, path string, devices []Device, packets []Packet) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer db.Close()

	var tables int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'packets'`).Scan(&tables); err != nil {
		t.Fatalf("inspect fixture: %v", err)
	}
	if tables == 0 {
		if _, err := db.Exec(schema); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	for _, d := range devices {
		var blob any
		if d.JSON != "" {
			blob = []byte(d.JSON)
		}
		_, err := db.Exec(`INSERT INTO devices (first_time, last_time, phyname, devmac, strongest_signal, avg_lat, avg_lon, type, device)
			VALUES (?, ?, 'IEEE802.11', ?, ?, ?, ?, ?, ?)`,
			d.FirstTime, d.FirstTime, d.MAC, d.StrongestSignal, d.Lat, d.Lon, d.Type, blob)
		if err != nil {
			t.Fatalf("insert device %s: %v", d.MAC, err)
		}
	}

	for _, p := range packets {
		_, err := db.Exec(`INSERT INTO packets (ts_sec, ts_usec, phyname, sourcemac, destmac, frequency, lat, lon, alt, signal)
			VALUES (?, 0, 'IEEE802.11', ?, ?, ?, ?, ?, ?, ?)`,
			p.TS, p.MAC, p.DestMAC, p.Frequency, p.Lat, p.Lon, p.Alt, p.Signal)
		if err != nil {
			t.Fatalf("insert packet %s: %v", p.MAC, err)
		}
	}
}

// AccessPointJSON renders the dot11 part of a device record the way Kismet
// does for a beaconing AP.
func AccessPointJSON(ssid string, cryptSet uint64) string {
	doc := map[string]any{
		"kismet.device.base.macaddr": "",
		"dot11.device": map[string]any{
			"dot11.device.last_beaconed_ssid_record": map[string]any{
				"dot11.advertisedssid.ssid":      ssid,
				"dot11.advertisedssid.crypt_set": cryptSet,
			},
		},
	}
	raw, _ := json.Marshal(doc)

	return string(raw)
}
