package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"kismap/internal/kismet"
)

const csvHeader = "timestamp,lat,lon,signal,frequency_khz,band,mac,ssid,type\n"

var ssidSanitizer = strings.NewReplacer(",", ";", `"`, "'")

// WriteCSV writes one line per packet. The SSID is always quoted, with commas
// turned into semicolons and double quotes into single ones.
func WriteCSV(w io.Writer, packets []kismet.Packet) error {
	if _, err := io.WriteString(w, csvHeader); err != nil {
		return err
	}

	for _, p := range packets {
		_, err := fmt.Fprintf(w, "%d,%s,%s,%d,%s,%s,%s,\"%s\",%s\n",
			p.Timestamp,
			formatFloat(p.Lat),
			formatFloat(p.Lon),
			p.Signal,
			formatFloat(p.Frequency),
			p.Band,
			p.MAC,
			ssidSanitizer.Replace(p.SSID),
			p.Type,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
