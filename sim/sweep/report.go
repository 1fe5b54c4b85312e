package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVHeader is the header line of the throughput table.
var CSVHeader = []string{"ports", "avg_packets_per_slot", "avg_throughput_percent"}

// WriteCSV writes rows as the throughput table, floats with 8 decimals.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Ports),
			strconv.FormatFloat(r.Result.AvgPacketsPerSlot, 'f', 8, 64),
			strconv.FormatFloat(r.Result.AvgPercent, 'f', 8, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row for ports=%d: %w", r.Ports, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
