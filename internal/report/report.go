// Package report prints capture summaries to the terminal.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"

	"kismap/internal/kismet"
	"kismap/internal/wifi"
)

// TopN bounds the type and SSID rankings.
const TopN = 10

// Count is one row of a ranking.
type Count struct {
	Label string
	Count int
}

// Summary aggregates the packets that made it through the filters.
type Summary struct {
	Bands []Count
	Types []Count
	SSIDs []Count
}

// Summarize counts packets per band (ordered by label) and per device type
// and SSID (top TopN, most frequent first). Packets without a type or SSID
// are left out of those rankings.
func Summarize(packets []kismet.Packet) Summary {
	bands := make(map[string]int)
	types := make(map[string]int)
	ssids := make(map[string]int)

	for _, p := range packets {
		bands[string(p.Band)]++
		if p.Type != "" {
			types[p.Type]++
		}
		if p.SSID != "" {
			ssids[p.SSID]++
		}
	}

	byLabel := toCounts(bands)
	sort.Slice(byLabel, func(i, j int) bool { return byLabel[i].Label < byLabel[j].Label })

	return Summary{
		Bands: byLabel,
		Types: top(types, TopN),
		SSIDs: top(ssids, TopN),
	}
}

func toCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, n := range m {
		out = append(out, Count{Label: label, Count: n})
	}

	return out
}

func top(m map[string]int, n int) []Count {
	out := toCounts(m)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}

	return out
}

// Print renders the three rankings as tables.
func (s Summary) Print(w io.Writer) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	section := func(title, column string, rows []Count, label func(string) string) {
		fmt.Fprintf(w, "\n%s\n", title)
		tbl := table.New(column, "Packets").
			WithWriter(w).
			WithHeaderFormatter(headerFmt).
			WithFirstColumnFormatter(columnFmt)
		for _, r := range rows {
			tbl.AddRow(label(r.Label), humanize.Comma(int64(r.Count)))
		}
		tbl.Print()
	}

	same := func(v string) string { return v }

	section("Packets by band:", "Band", s.Bands, func(b string) string {
		return fmt.Sprintf("%s GHz", wifi.Band(b))
	})
	section("Packets by device type:", "Type", s.Types, same)
	section(fmt.Sprintf("Top %d SSIDs:", TopN), "SSID", s.SSIDs, same)
}
