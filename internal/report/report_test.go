package report

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"kismap/internal/kismet"
	"kismap/internal/wifi"
)

func TestSummarize(t *testing.T) {
	var packets []kismet.Packet
	add := func(n int, p kismet.Packet) {
		for i := 0; i < n; i++ {
			packets = append(packets, p)
		}
	}
	add(3, kismet.Packet{Band: wifi.Band5, Type: "Wi-Fi AP", SSID: "B"})
	add(3, kismet.Packet{Band: wifi.Band24, Type: "Wi-Fi AP", SSID: "A"})
	add(1, kismet.Packet{Band: wifi.BandUnknown})
	add(2, kismet.Packet{Band: wifi.Band24, Type: "Wi-Fi Client"})

	s := Summarize(packets)

	assert.Equal(t, []Count{
		{Label: "2.4", Count: 5},
		{Label: "5", Count: 3},
		{Label: "unknown", Count: 1},
	}, s.Bands)
	assert.Equal(t, []Count{
		{Label: "Wi-Fi AP", Count: 6},
		{Label: "Wi-Fi Client", Count: 2},
	}, s.Types)
	assert.Equal(t, []Count{
		{Label: "A", Count: 3},
		{Label: "B", Count: 3},
	}, s.SSIDs)
}

func TestSummarizeTopN(t *testing.T) {
	var packets []kismet.Packet
	for i := 0; i < TopN+5; i++ {
		for j := 0; j <= i; j++ {
			packets = append(packets, kismet.Packet{Band: wifi.Band24, SSID: fmt.Sprintf("net-%02d", i)})
		}
	}

	s := Summarize(packets)
	assert.Len(t, s.SSIDs, TopN)
	assert.Equal(t, "net-14", s.SSIDs[0].Label)
	assert.Equal(t, 15, s.SSIDs[0].Count)
}

func TestPrint(t *testing.T) {
	color.NoColor = true

	s := Summary{
		Bands: []Count{{Label: "2.4", Count: 12345}},
		Types: []Count{{Label: "Wi-Fi AP", Count: 7}},
		SSIDs: []Count{{Label: "HomeNet", Count: 1000}},
	}

	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "Packets by band:")
	assert.Contains(t, out, "2.4 GHz")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "Packets by device type:")
	assert.Contains(t, out, "Top 10 SSIDs:")
	assert.Contains(t, out, "HomeNet")
	assert.Contains(t, out, "1,000")
}
