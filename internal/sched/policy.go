package sched

import (
	"strings"

	"github.com/pkg/errors"
)

// Canonical policy names.
const (
	PolicyFCFS       = "fcfs"
	PolicySJF        = "sjf"
	PolicyPriority   = "priority"
	PolicyRoundRobin = "rr"
	PolicyMLFQ       = "mlfq"
	PolicyCFS        = "cfs"
)

// Policy simulates one scheduling discipline over a complete workload.
type Policy interface {
	Name() string
	Schedule(processes []Process) (*Schedule, error)
}

var policyNames = []string{PolicyFCFS, PolicySJF, PolicyPriority, PolicyRoundRobin, PolicyMLFQ, PolicyCFS}

var aliases = map[string]string{
	"first-come-first-served": PolicyFCFS,
	"shortest-job-first":      PolicySJF,
	"prio":                    PolicyPriority,
	"round-robin":             PolicyRoundRobin,
	"roundrobin":              PolicyRoundRobin,
	"multilevel-feedback":     PolicyMLFQ,
	"completely-fair":         PolicyCFS,
}

var titles = map[string]string{
	PolicyFCFS:       "FCFS",
	PolicySJF:        "SJF",
	PolicyPriority:   "Priority",
	PolicyRoundRobin: "Round Robin",
	PolicyMLFQ:       "MLFQ",
	PolicyCFS:        "CFS",
}

// Names lists the canonical policy names in presentation order.
func Names() []string {
	return append([]string(nil), policyNames...)
}

// Title returns the display name of a policy.
func Title(name string) string {
	if t, ok := titles[name]; ok {
		return t
	}
	return name
}

// Canonical resolves a policy name or alias.
func Canonical(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := titles[n]; ok {
		return n, nil
	}
	if c, ok := aliases[n]; ok {
		return c, nil
	}
	return "", errors.Wrapf(ErrUnknownPolicy, "%q", name)
}

// New builds the named policy with parameters taken from cfg.
func New(name string, cfg Config) (Policy, error) {
	n, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	switch n {
	case PolicyFCFS:
		return NewFCFS(), nil
	case PolicySJF:
		return NewSJF(), nil
	case PolicyPriority:
		return NewPriority(), nil
	case PolicyRoundRobin:
		return NewRoundRobin(cfg.RoundRobin.Quantum), nil
	case PolicyMLFQ:
		return NewMLFQ(cfg.MLFQ.Quantums...), nil
	default:
		return NewCFS(cfg.CFS), nil
	}
}
