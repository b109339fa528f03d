package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"kismap/internal/kismet"
	"kismap/internal/wifi"
)

const (
	wiglePreHeader = `WigleWifi-1.4,appRelease=1.0,model=kismap,release=1.0,device=kismap,display=,board=,brand=kismap`
	wigleHeader    = `MAC,SSID,AuthMode,FirstSeen,Channel,RSSI,CurrentLatitude,CurrentLongitude,AltitudeMeters,AccuracyMeters,Type`
)

// WriteWiGLE writes packets from known access points in WiGLE's CSV upload
// format. Packets from clients or unknown transmitters are skipped.
func WriteWiGLE(w io.Writer, packets []kismet.Packet, devices map[string]kismet.Device) error {
	if _, err := fmt.Fprintln(w, wiglePreHeader); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, wigleHeader); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	for _, p := range packets {
		dev, ok := devices[p.MAC]
		if !ok || dev.Type == "" || !dev.IsAccessPoint() {
			continue
		}

		err := cw.Write([]string{
			p.MAC,
			dev.SSID,
			dev.Crypt.Capabilities(),
			dev.FirstSeen.UTC().Format("2006-01-02 15:04:05"),
			fmt.Sprint(wifi.Channel(p.Frequency)),
			fmt.Sprint(p.Signal),
			formatFloat(p.Lat),
			formatFloat(p.Lon),
			formatFloat(p.Alt),
			"0",
			"WIFI",
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
