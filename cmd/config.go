package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/switch-sim/sim/sweep"
)

// SweepFile is the YAML layout accepted by `sweep --config`.
//
//	sweep:
//	  min_ports: 4
//	  max_ports: 8
//	  slots: 131913
//	  seed: 20260206
//	  workers: 0
//	output: throughput_vs_ports.csv
type SweepFile struct {
	Sweep  sweep.Config `yaml:"sweep"`
	Output string       `yaml:"output"`
}

// loadSweepFile decodes path on top of base, so keys absent from the file keep
// their base values. Uses strict field checking: typos must cause errors.
func loadSweepFile(path string, base SweepFile) (SweepFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepFile{}, fmt.Errorf("read sweep config %s: %w", path, err)
	}
	cfg := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return SweepFile{}, fmt.Errorf("parse sweep config %s: %w", path, err)
	}
	return cfg, nil
}
