// Package sweep runs one independently seeded switch per port count and
// collects the results into a throughput table.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/switch-sim/sim"
)

// Config describes a port-count sweep.
type Config struct {
	MinPorts int    `yaml:"min_ports"`
	MaxPorts int    `yaml:"max_ports"`
	Slots    int64  `yaml:"slots"`
	BaseSeed uint64 `yaml:"seed"`    // switch with p ports is seeded with BaseSeed + p
	Workers  int    `yaml:"workers"` // 0 = one worker per port count
}

// Validate returns a wrapped sim.ErrInvalidArgument for an unusable Config.
func (c Config) Validate() error {
	switch {
	case c.MinPorts < 1:
		return fmt.Errorf("%w: min ports must be >= 1, got %d", sim.ErrInvalidArgument, c.MinPorts)
	case c.MaxPorts < c.MinPorts:
		return fmt.Errorf("%w: max ports (%d) must be >= min ports (%d)", sim.ErrInvalidArgument, c.MaxPorts, c.MinPorts)
	case c.Slots < 1:
		return fmt.Errorf("%w: time slots must be >= 1, got %d", sim.ErrInvalidArgument, c.Slots)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0, got %d", sim.ErrInvalidArgument, c.Workers)
	}
	return nil
}

// Row is one line of the throughput table.
type Row struct {
	Ports  int
	Seed   uint64
	Result sim.Result
}

// Run simulates every port count in [MinPorts, MaxPorts] on a bounded pool of
// goroutines. Each switch is owned by exactly one goroutine. Rows are returned
// in ascending port order. Cancelling ctx stops dispatching new port counts.
func Run(ctx context.Context, cfg Config) ([]Row, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	count := cfg.MaxPorts - cfg.MinPorts + 1
	workers := cfg.Workers
	if workers == 0 || workers > count {
		workers = count
	}
	logrus.Infof("sweep starting: ports=%d..%d slots=%d workers=%d", cfg.MinPorts, cfg.MaxPorts, cfg.Slots, workers)

	rows := make([]Row, count)
	errs := make([]error, count)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rows[idx], errs[idx] = runOne(cfg.MinPorts+idx, cfg)
			}
		}()
	}

	var ctxErr error
dispatch:
	for idx := 0; idx < count; idx++ {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func runOne(ports int, cfg Config) (Row, error) {
	seed := cfg.BaseSeed + uint64(ports)
	sw, err := sim.NewSwitch(ports, seed)
	if err != nil {
		return Row{}, err
	}
	res, err := sw.Run(sim.RunConfig{Slots: cfg.Slots})
	if err != nil {
		return Row{}, fmt.Errorf("ports=%d: %w", ports, err)
	}
	logrus.Infof("ports=%d avg=%.6f (%.4f%%)", ports, res.AvgPacketsPerSlot, res.AvgPercent)
	return Row{Ports: ports, Seed: seed, Result: res}, nil
}
