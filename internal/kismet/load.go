package kismet

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dataset is everything a map is drawn from.
type Dataset struct {
	Devices map[string]Device
	Packets []Packet
}

// Load reads devices and packets concurrently and attaches each packet's
// SSID and device type.
func Load(ctx context.Context, c *Capture) (*Dataset, error) {
	var (
		devices map[string]Device
		packets []Packet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		devices, err = c.Devices(gctx)

		return err
	})
	g.Go(func() error {
		return c.Packets(gctx, func(p Packet) error {
			packets = append(packets, p)

			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range packets {
		if dev, ok := devices[packets[i].MAC]; ok {
			packets[i].SSID = dev.SSID
			packets[i].Type = dev.Type
		}
	}

	c.logger.Debug("capture loaded",
		zap.Int("devices", len(devices)),
		zap.Int("packets", len(packets)),
	)

	return &Dataset{Devices: devices, Packets: packets}, nil
}
