package cli

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schedsim/internal/sched"
)

const envPrefix = "SCHEDSIM"

// Execute runs the schedsim command line and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. Every flag is bound to a viper key
// of the same name, so SCHEDSIM_<FLAG> environment variables fill in flags
// that were not given on the command line.
func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "schedsim",
		Short:         "Discrete-event CPU scheduling simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return errors.Wrap(err, "bind flags")
			}
			level, err := logrus.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return errors.Wrapf(err, "invalid log level %q", v.GetString("log-level"))
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "YAML config file (round_robin, mlfq, cfs sections)")
	root.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(
		newRunCommand(v),
		newCompareCommand(v),
		newGenerateCommand(v),
		newServeCommand(v),
	)
	return root
}

// loadConfig reads --config and applies the flag overrides on top.
func loadConfig(v *viper.Viper) (sched.Config, error) {
	cfg, err := sched.Load(v.GetString("config"))
	if err != nil {
		return cfg, err
	}
	if q := v.GetInt("quantum"); q > 0 {
		cfg.RoundRobin.Quantum = q
	}
	if levels := v.GetIntSlice("levels"); len(levels) > 0 {
		cfg.MLFQ.Quantums = levels
	}
	if v.GetBool("cfs-filter-weight") {
		cfg.CFS.ArrivalFilteredWeight = true
	}
	return cfg, nil
}

// addPolicyFlags registers the policy parameter overrides shared by run and
// compare.
func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().Int("quantum", 0, "Round-robin quantum (0 = from config)")
	cmd.Flags().IntSlice("levels", nil, "MLFQ level quantums, highest priority first (empty = from config)")
	cmd.Flags().Bool("cfs-filter-weight", false, "CFS: size slices by the weight of arrived processes only")
}
