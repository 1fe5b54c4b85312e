// Tracks run-wide throughput statistics of a switch:
// a histogram of packets sent per slot, their total, and the derived averages.

package sim

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Metrics accumulates the per-slot outcome of one Run call in O(ports) space.
// TotalSent is int64: a run never overflows while ports*slots < 2^63.
type Metrics struct {
	Ports     int   // port count of the switch
	Slots     int64 // slots recorded so far
	TotalSent int64 // packets sent across all recorded slots
	// SentHistogram[k] is the number of slots in which exactly k packets were sent.
	SentHistogram []int64
}

// NewMetrics returns empty Metrics for a switch with the given port count.
func NewMetrics(ports int) *Metrics {
	return &Metrics{
		Ports:         ports,
		SentHistogram: make([]int64, ports+1),
	}
}

// Record accounts for one slot in which sent packets left the switch.
// sent must lie in [0, Ports].
func (m *Metrics) Record(sent int) {
	m.Slots++
	m.TotalSent += int64(sent)
	m.SentHistogram[sent]++
}

// Distribution captures the statistical summary of per-slot throughput (percent).
type Distribution struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
	P50    float64 `yaml:"p50"`
	P95    float64 `yaml:"p95"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// NewDistribution computes a Distribution from values and their frequency
// weights. A nil weights slice counts every value once; values with a
// non-positive weight are ignored. Neither input is modified.
// Returns zero-value Distribution when nothing is left to summarize.
func NewDistribution(values, weights []float64) Distribution {
	if weights != nil && len(weights) != len(values) {
		panic(fmt.Sprintf("NewDistribution: %d values but %d weights", len(values), len(weights)))
	}
	x := make([]float64, 0, len(values))
	var w []float64
	if weights != nil {
		w = make([]float64, 0, len(values))
	}
	for i, v := range values {
		if weights != nil {
			if weights[i] <= 0 {
				continue
			}
			w = append(w, weights[i])
		}
		x = append(x, v)
	}
	if len(x) == 0 {
		return Distribution{}
	}
	stat.SortWeighted(x, w)

	total := float64(len(x))
	if w != nil {
		total = floats.Sum(w)
	}
	d := Distribution{
		P50: stat.Quantile(0.50, stat.Empirical, x, w),
		P95: stat.Quantile(0.95, stat.Empirical, x, w),
		Min: x[0],
		Max: x[len(x)-1],
	}
	if total <= 1 {
		d.Mean = stat.Mean(x, w)
		return d
	}
	d.Mean, d.StdDev = stat.MeanStdDev(x, w)
	return d
}

// Result is the aggregate outcome of a run.
type Result struct {
	Ports             int          `yaml:"ports"`
	Slots             int64        `yaml:"slots"`
	TotalSent         int64        `yaml:"total_sent"`
	AvgPacketsPerSlot float64      `yaml:"avg_packets_per_slot"`
	AvgPercent        float64      `yaml:"avg_throughput_percent"`
	Backlog           int          `yaml:"backlog"` // packets still queued after the last slot
	Throughput        Distribution `yaml:"slot_throughput_percent"`
}

// Result derives the run averages. backlog is the switch occupancy after the last slot.
func (m *Metrics) Result(backlog int) Result {
	res := Result{
		Ports:     m.Ports,
		Slots:     m.Slots,
		TotalSent: m.TotalSent,
		Backlog:   backlog,
	}
	if m.Slots == 0 {
		return res
	}
	res.AvgPacketsPerSlot = float64(m.TotalSent) / float64(m.Slots)
	res.AvgPercent = res.AvgPacketsPerSlot / float64(m.Ports) * 100

	percents := make([]float64, len(m.SentHistogram))
	counts := make([]float64, len(m.SentHistogram))
	for k, c := range m.SentHistogram {
		percents[k] = float64(k) / float64(m.Ports) * 100
		counts[k] = float64(c)
	}
	res.Throughput = NewDistribution(percents, counts)
	return res
}

// Print writes the human-readable run report.
func (r Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Switch Throughput ===")
	fmt.Fprintf(w, "Ports                : %d\n", r.Ports)
	fmt.Fprintf(w, "Time Slots           : %d\n", r.Slots)
	fmt.Fprintf(w, "Packets Sent         : %d\n", r.TotalSent)
	fmt.Fprintf(w, "Average Throughput   : %.6f packets/slot\n", r.AvgPacketsPerSlot)
	fmt.Fprintf(w, "                       %.6f %%\n", r.AvgPercent)
	fmt.Fprintf(w, "Slot Throughput      : p50=%.2f%% p95=%.2f%% stddev=%.2f\n",
		r.Throughput.P50, r.Throughput.P95, r.Throughput.StdDev)
	fmt.Fprintf(w, "Final Backlog        : %d packets\n", r.Backlog)
}

// WriteYAML writes r as a YAML document.
func (r Result) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return enc.Close()
}
