package job

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"schedsim/internal/sched"
)

// MaxProcesses caps the size of a loaded or generated workload.
const MaxProcesses = 100

var csvHeader = []string{"Process ID", "Burst Time", "Priority", "Arrival Time"}

// Workload is the YAML document layout:
//
//	processes:
//	  - {id: P1, arrival_time: 0, burst_time: 6, priority: 1}
type Workload struct {
	Processes []sched.Process `yaml:"processes" json:"processes"`
}

// Load reads a workload file, choosing the format by extension:
// .csv is CSV, everything else is YAML.
func Load(path string) ([]sched.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workload")
	}
	defer f.Close()

	var ps []sched.Process
	if isCSV(path) {
		ps, err = LoadCSV(f)
	} else {
		ps, err = LoadYAML(f)
	}
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	logrus.Debugf("loaded %d processes from %s", len(ps), path)
	return ps, nil
}

// LoadYAML decodes a Workload document.
func LoadYAML(r io.Reader) ([]sched.Process, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read workload")
	}
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "decode workload")
	}
	return limit(w.Processes)
}

// LoadCSV reads rows of "Process ID,Burst Time,Priority,Arrival Time". The
// first row is the header and is skipped.
func LoadCSV(r io.Reader) ([]sched.Process, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(sched.ErrInvalidInput, "csv workload is empty")
		}
		return nil, errors.Wrap(err, "read csv header")
	}

	var ps []sched.Process
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}
		line, _ := cr.FieldPos(0)

		var nums [3]int
		for i, field := range rec[1:] {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, errors.Wrapf(sched.ErrInvalidInput, "line %d: %s %q is not a number", line, csvHeader[i+1], field)
			}
			nums[i] = n
		}
		ps = append(ps, sched.Process{
			ID:          strings.TrimSpace(rec[0]),
			BurstTime:   nums[0],
			Priority:    nums[1],
			ArrivalTime: nums[2],
		})
	}
	return limit(ps)
}

func limit(ps []sched.Process) ([]sched.Process, error) {
	if len(ps) == 0 {
		return nil, errors.Wrap(sched.ErrInvalidInput, "workload has no processes")
	}
	if len(ps) > MaxProcesses {
		logrus.Warnf("workload has %d processes, keeping the first %d", len(ps), MaxProcesses)
		ps = ps[:MaxProcesses]
	}
	return ps, nil
}

// Save writes ps to path, CSV or YAML by extension.
func Save(path string, ps []sched.Process) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create workload")
	}
	if isCSV(path) {
		err = SaveCSV(f, ps)
	} else {
		err = SaveYAML(f, ps)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// SaveCSV writes ps in the same layout LoadCSV reads.
func SaveCSV(w io.Writer, ps []sched.Process) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, p := range ps {
		rec := []string{
			p.ID,
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.Priority),
			strconv.Itoa(p.ArrivalTime),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "write process %s", p.ID)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// SaveYAML writes ps as a Workload document.
func SaveYAML(w io.Writer, ps []sched.Process) error {
	data, err := yaml.Marshal(Workload{Processes: ps})
	if err != nil {
		return errors.Wrap(err, "encode workload")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "write workload")
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
