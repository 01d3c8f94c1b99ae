package cli

import (
	"encoding/json"
	"io"
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schedsim/internal/api"
	"schedsim/internal/job"
	"schedsim/internal/metrics"
	"schedsim/internal/report"
	"schedsim/internal/sched"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one scheduling policy over a workload",
		Example: `  schedsim run --policy rr --quantum 2 --input workload.csv
  schedsim run --policy cfs --input workload.yml --trace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ps, err := loadWorkload(v)
			if err != nil {
				return err
			}
			policy, err := sched.New(v.GetString("policy"), cfg)
			if err != nil {
				return err
			}
			s, err := policy.Schedule(ps)
			if err != nil {
				return err
			}
			rep := metrics.Summarize(s)

			if path := v.GetString("trace-csv"); path != "" {
				if err := writeFile(path, func(w io.Writer) error { return report.WriteTraceCSV(w, s.Events) }); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch v.GetString("format") {
			case "table":
				report.RenderSchedule(out, rep, s)
				if v.GetBool("trace") {
					report.WriteTrace(out, s.Events)
				}
				return nil
			case "json", "yaml":
				resp := api.ScheduleResponse{Success: true, Summary: s.Summary, Results: s.Results, Metrics: rep}
				if v.GetBool("trace") {
					resp.Events = s.Events
				}
				return encode(out, v.GetString("format"), resp)
			default:
				return errors.Errorf("unknown output format %q", v.GetString("format"))
			}
		},
	}
	cmd.Flags().String("policy", sched.PolicyFCFS, "Policy: fcfs, sjf, priority, rr, mlfq, cfs")
	cmd.Flags().String("input", "", "Workload file (.csv or .yml)")
	cmd.Flags().Bool("trace", false, "Print the dispatch trace")
	cmd.Flags().String("trace-csv", "", "Write the dispatch trace to this CSV file")
	cmd.Flags().String("format", "table", "Output format: table, json, yaml")
	addPolicyFlags(cmd)
	return cmd
}

func loadWorkload(v *viper.Viper) ([]sched.Process, error) {
	path := v.GetString("input")
	if path == "" {
		return nil, errors.New("no workload given, set --input")
	}
	return job.Load(path)
}

func encode(w io.Writer, format string, value any) error {
	if format == "yaml" {
		data, err := yaml.Marshal(value)
		if err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		_, err = w.Write(data)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(value), "encode json")
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
