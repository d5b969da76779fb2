package main

import (
	"github.com/spf13/cobra"

	"github.com/sartorproj/godemand/internal/config"
	"github.com/sartorproj/godemand/outlier"
	"github.com/sartorproj/godemand/pipeline"
	"github.com/sartorproj/godemand/segmentation"
)

var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "godemand",
		Short: "Demand segmentation and outlier cleansing",
		Long: `godemand classifies a demand time series into a segmentation rule and
detects and corrects its outliers before forecasting.

Examples:
  godemand analyze --file sales.csv
  godemand analyze --file sales.csv --correction interpolation --threshold cov=0.7
  godemand serve --config godemand.yaml
  godemand config > godemand.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// buildRunner wires an engine and cleanser seeded from cfg.
func buildRunner(cfg config.Config) (*pipeline.Runner, error) {
	engine := segmentation.NewEngine()
	if err := engine.SetDefaults(cfg.Segmentation.Thresholds); err != nil {
		return nil, err
	}
	cleanser := outlier.NewCleanser()
	if err := cleanser.SetDefaults(cfg.Outlier); err != nil {
		return nil, err
	}
	return pipeline.NewRunner(engine, cleanser, pipeline.WithHistoryWindow(cfg.Segmentation.HistoryWindow)), nil
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
