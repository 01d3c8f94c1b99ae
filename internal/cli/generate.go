package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schedsim/internal/job"
)

func newGenerateCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a workload from a preset",
		Long:  fmt.Sprintf("Generate a workload from a preset (%s).", strings.Join(job.Presets(), ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := v.GetInt64("seed")
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			ps, err := job.Generate(v.GetString("preset"), v.GetInt("count"), seed)
			if err != nil {
				return err
			}
			if path := v.GetString("out"); path != "" {
				return job.Save(path, ps)
			}
			return job.SaveCSV(cmd.OutOrStdout(), ps)
		},
	}
	cmd.Flags().String("preset", job.PresetDefault, "Workload preset")
	cmd.Flags().Int("count", 5, "Number of processes")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = time based)")
	cmd.Flags().String("out", "", "Output file, CSV or YAML by extension (default CSV on stdout)")
	return cmd
}
