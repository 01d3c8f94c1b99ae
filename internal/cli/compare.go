package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schedsim/internal/metrics"
	"schedsim/internal/report"
	"schedsim/internal/sched"
)

func newCompareCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Simulate every policy over the same workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ps, err := loadWorkload(v)
			if err != nil {
				return err
			}
			outcomes, err := sched.Compare(ps, cfg)
			if err != nil {
				return err
			}
			for _, o := range outcomes {
				if o.Err != nil {
					logrus.Warnf("%s failed: %v", sched.Title(o.Policy), o.Err)
				}
			}
			reports := metrics.SummarizeAll(outcomes)

			if path := v.GetString("csv"); path != "" {
				if err := writeFile(path, func(w io.Writer) error { return report.WriteComparisonCSV(w, reports) }); err != nil {
					return err
				}
				logrus.Infof("comparison written to %s", path)
			}
			report.RenderComparison(cmd.OutOrStdout(), reports)
			return nil
		},
	}
	cmd.Flags().String("input", "", "Workload file (.csv or .yml)")
	cmd.Flags().String("csv", "", "Also export the comparison to this CSV file")
	addPolicyFlags(cmd)
	return cmd
}
