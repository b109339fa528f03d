package kismet

import (
	"context"
	"database/sql"
	"fmt"

	"kismap/internal/wifi"
)

// Packet is a GPS-tagged observation joined with what is known about its
// transmitter. SSID and Type stay empty for transmitters without a device row.
type Packet struct {
	Timestamp int64
	Lat       float64
	Lon       float64
	Alt       float64
	Signal    int
	Frequency float64
	MAC       string
	Band      wifi.Band
	SSID      string
	Type      string
}

// Weight is the packet's heatmap intensity.
func (p Packet) Weight() float64 {
	return wifi.SignalWeight(p.Signal)
}

// Packets streams packets that carry a position and a signal reading, oldest
// first. Returning an error from fn stops the scan and is passed through.
func (c *Capture) Packets(ctx context.Context, fn func(Packet) error) error {
	rows, err := c.db.QueryContext(ctx, `
		select lat, lon, alt, signal, frequency, sourcemac, ts_sec
		from packets
		where lat != 0
			  and lon != 0
			  and signal != 0
		order by ts_sec
	`)
	if err != nil {
		return fmt.Errorf("query packets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p         Packet
			alt       sql.NullFloat64
			sourceMac sql.NullString
			frequency sql.NullFloat64
		)
		if err := rows.Scan(&p.Lat, &p.Lon, &alt, &p.Signal, &frequency, &sourceMac, &p.Timestamp); err != nil {
			return fmt.Errorf("scan packet: %w", err)
		}
		p.Alt = alt.Float64
		p.MAC = sourceMac.String
		p.Frequency = frequency.Float64
		p.Band = wifi.BandOf(p.Frequency)

		if err := fn(p); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read packets: %w", err)
	}

	return nil
}
