package kismet

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Device is one row of the devices table with the fields the map needs.
type Device struct {
	MAC             string
	Type            string
	StrongestSignal int
	Lat             float64
	Lon             float64
	SSID            string
	Crypt           Crypt
	FirstSeen       time.Time
}

// IsAccessPoint reports whether the device may be an AP. Devices without a
// type are given the benefit of the doubt.
func (d Device) IsAccessPoint() bool {
	return d.Type == "" || strings.Contains(d.Type, "AP")
}

func (d Device) HasPosition() bool {
	return d.Lat != 0 && d.Lon != 0
}

// Devices loads every device with an average position, keyed by MAC.
func (c *Capture) Devices(ctx context.Context) (map[string]Device, error) {
	rows, err := c.db.QueryContext(ctx, `
		select devmac, type, strongest_signal, avg_lat, avg_lon, first_time, device
		from devices
		where avg_lat != 0
			  and avg_lon != 0
	`)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	m := make(map[string]Device)
	for rows.Next() {
		var (
			devMac         string
			devType        sql.NullString
			strongest      sql.NullInt64
			avgLat, avgLon float64
			firstSeen      sql.NullInt64
			blob           []byte
		)
		if err := rows.Scan(&devMac, &devType, &strongest, &avgLat, &avgLon, &firstSeen, &blob); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}

		dev := Device{
			MAC:             devMac,
			Type:            devType.String,
			StrongestSignal: int(strongest.Int64),
			Lat:             avgLat,
			Lon:             avgLon,
			FirstSeen:       time.Unix(firstSeen.Int64, 0).UTC(),
		}

		ssid, crypt, err := parseDot11(blob)
		if err != nil {
			c.logger.Debug("unreadable device record", zap.String("mac", devMac), zap.Error(err))
		}
		dev.SSID, dev.Crypt = ssid, crypt

		m[devMac] = dev
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read devices: %w", err)
	}

	return m, nil
}

type ssidRecord struct {
	AdvertisedSSID     string `json:"dot11.advertisedssid.ssid"`
	AdvertisedCryptSet uint64 `json:"dot11.advertisedssid.crypt_set"`
	AdvertisedBitfield uint64 `json:"dot11.advertisedssid.crypt_bitfield"`
	RespondedSSID      string `json:"dot11.respondedssid.ssid"`
	RespondedCryptSet  uint64 `json:"dot11.respondedssid.crypt_set"`
	RespondedBitfield  uint64 `json:"dot11.respondedssid.crypt_bitfield"`
}

func (r ssidRecord) ssid() string {
	if r.AdvertisedSSID != "" {
		return r.AdvertisedSSID
	}

	return r.RespondedSSID
}

func (r ssidRecord) crypt() Crypt {
	for _, v := range []uint64{r.AdvertisedCryptSet, r.AdvertisedBitfield, r.RespondedCryptSet, r.RespondedBitfield} {
		if v != 0 {
			return Crypt(v)
		}
	}

	return CryptNone
}

// parseDot11 pulls the SSID and crypt set out of a device JSON blob. Sources
// are tried in order: last beaconed record, last beaconed name, advertised
// SSIDs, responded SSIDs. Each part is decoded on its own so one odd field
// does not hide the others.
func parseDot11(blob []byte) (string, Crypt, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return "", CryptNone, nil
	}

	var dev struct {
		Dot11 map[string]json.RawMessage `json:"dot11.device"`
	}
	if err := json.Unmarshal(blob, &dev); err != nil {
		return "", CryptNone, fmt.Errorf("decode device json: %w", err)
	}
	if dev.Dot11 == nil {
		return "", CryptNone, nil
	}

	var last ssidRecord
	_ = json.Unmarshal(dev.Dot11["dot11.device.last_beaconed_ssid_record"], &last)
	if s := last.ssid(); s != "" {
		return s, last.crypt(), nil
	}

	var lastName string
	_ = json.Unmarshal(dev.Dot11["dot11.device.last_beaconed_ssid"], &lastName)
	if lastName != "" {
		return lastName, last.crypt(), nil
	}

	for _, key := range []string{"dot11.device.advertised_ssid_map", "dot11.device.responded_ssid_map"} {
		for _, r := range ssidRecords(dev.Dot11[key]) {
			if s := r.ssid(); s != "" {
				return s, r.crypt(), nil
			}
		}
	}

	return "", last.crypt(), nil
}

// ssidRecords accepts both layouts Kismet has used for SSID maps: a JSON
// array, and an object keyed by SSID hash.
func ssidRecords(raw json.RawMessage) []ssidRecord {
	if len(raw) == 0 {
		return nil
	}

	var list []ssidRecord
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var keyed map[string]ssidRecord
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list = make([]ssidRecord, 0, len(keys))
	for _, k := range keys {
		list = append(list, keyed[k])
	}

	return list
}
