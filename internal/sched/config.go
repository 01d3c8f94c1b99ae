package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config mirrors schedsim.yml
type Config struct {
	RoundRobin RoundRobinConfig `yaml:"round_robin"`
	MLFQ       MLFQConfig       `yaml:"mlfq"`
	CFS        CFSConfig        `yaml:"cfs"`
}

type RoundRobinConfig struct {
	Quantum int `yaml:"quantum"` // 4 (by default)
}

type MLFQConfig struct {
	Quantums []int `yaml:"quantums"` // [4, 16, 24] (by default)
}

// DefaultConfig is used when no config file is given.
func DefaultConfig() Config {
	return Config{
		RoundRobin: RoundRobinConfig{Quantum: DefaultQuantum},
		MLFQ:       MLFQConfig{Quantums: append([]int(nil), DefaultLevelQuantums...)},
		CFS:        DefaultCFSConfig(),
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// A missing file falls back to the defaults, a malformed one is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Warnf("config %s not readable, using defaults: %v", path, err)
		return DefaultConfig(), nil
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and applies sanity clamps.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.sanitize()
	return cfg, nil
}

// sanity clamps
func (c *Config) sanitize() {
	if c.RoundRobin.Quantum <= 0 {
		c.RoundRobin.Quantum = DefaultQuantum
	}
	if len(c.MLFQ.Quantums) == 0 {
		c.MLFQ.Quantums = append([]int(nil), DefaultLevelQuantums...)
	}
	for _, q := range c.MLFQ.Quantums {
		if q <= 0 {
			logrus.Warnf("mlfq quantums %v contain a non-positive value, using defaults", c.MLFQ.Quantums)
			c.MLFQ.Quantums = append([]int(nil), DefaultLevelQuantums...)
			break
		}
	}
	if c.CFS.TargetLatency <= 0 {
		c.CFS.TargetLatency = DefaultTargetLatency
	}
	if c.CFS.Nice0Load <= 0 {
		c.CFS.Nice0Load = DefaultNice0Load
	}
	if c.CFS.FallbackSlice <= 0 {
		c.CFS.FallbackSlice = DefaultFallbackSlice
	}
}
