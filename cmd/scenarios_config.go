package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/wifi-study/wifi-study/sim"
)

// Define struct for YAML
type ScenarioPresets struct {
	Presets map[string]ScenarioPreset `yaml:"presets"`
}

// ScenarioPreset overrides the sweep shape. Zero-valued fields keep the
// values already in the experiment config.
type ScenarioPreset struct {
	DistancesM   []float64 `yaml:"distances_m"`
	StationCount uint      `yaml:"stations"`
	AppStartS    float64   `yaml:"app_start_s"`
	AppStopS     float64   `yaml:"app_stop_s"`
	SimStopS     float64   `yaml:"sim_stop_s"`
	StaggerS     float64   `yaml:"stagger_s"`
}

// LoadScenarioPresets reads and parses the presets YAML.
func LoadScenarioPresets(path string) (*ScenarioPresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios file: %w", err)
	}
	var presets ScenarioPresets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse scenarios file: %w", err)
	}
	return &presets, nil
}

// ApplyScenarioPreset overlays the named preset onto cfg.
func ApplyScenarioPreset(cfg *sim.ExperimentConfig, path, name string) error {
	presets, err := LoadScenarioPresets(path)
	if err != nil {
		return err
	}
	p, ok := presets.Presets[name]
	if !ok {
		return fmt.Errorf("preset %q not found in %s", name, path)
	}
	logrus.Infof("Using scenario preset %v", name)

	if len(p.DistancesM) > 0 {
		cfg.DistancesM = p.DistancesM
	}
	if p.StationCount > 0 {
		cfg.StationCount = p.StationCount
	}
	if p.AppStartS > 0 {
		cfg.AppStartS = p.AppStartS
	}
	if p.AppStopS > 0 {
		cfg.AppStopS = p.AppStopS
	}
	if p.SimStopS > 0 {
		cfg.SimStopS = p.SimStopS
	}
	if p.StaggerS > 0 {
		cfg.StaggerS = p.StaggerS
	}
	return nil
}
