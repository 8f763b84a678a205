package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	telemetry "github.com/picool/telemetry"
)

var (
	// set on build:
	// go build -ldflags="-X main.version=$(git describe --always --long --dirty --tag)" ./cmd/picool-telemetry
	version string
)

const defaultOutputFile = "-"

var (
	configPath string
	logLevel   string
	outputFile string
)

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	configPath = telemetry.DefaultCfgPath
	logLevel = ""
	outputFile = defaultOutputFile

	cmd := &cobra.Command{
		Use:   "picool-telemetry",
		Short: "Report refrigerator temperatures as metric lines",
		Long: `picool-telemetry reads the ambient, freezer and refrigerator temperature
sensors once, converts them to Fahrenheit and prints them as metric lines:

  temperature ambient=68.000,freezer=-0.400,refrigerator=39.200
  compensation low=3.600,high=9.000

The compensation line is only printed when the compressor controller has
recorded a calibration for the refrigerator sensor. It is meant to be run
periodically by a metrics agent.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := newTelemetry()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			err = t.RunOnceTo(func() (io.Writer, func(), error) {
				return openOutput(stdout, outputFile)
			})
			if err != nil {
				logrus.WithError(err).Error("run failed")
			}
			return err
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&configPath, "config", "c", telemetry.DefaultCfgPath, "config file path")
	globalFlags.StringVarP(&logLevel, "log-level", "v", "", `log level, overrides the level in config file (values "error","info","debug")`)
	cmd.Flags().StringVarP(&outputFile, "output", "o", defaultOutputFile, `file to write the metric lines to, "-" for stdout`)

	cmd.AddCommand(
		NewCheckCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)

	return cmd
}

func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that all sensors and the compensation record can be read",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			t, err := newTelemetry()
			if err != nil {
				return err
			}

			if logrus.GetLevel() < logrus.InfoLevel {
				t.SetLogLevel(telemetry.LogLevelInfo)
			}

			err = t.Check()
			if err != nil {
				logrus.WithError(err).Error("check failed")
			}
			return err
		},
	}
}

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "print",
			Short: "Print the active configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := telemetry.HandleAllConfigSetup(configPath)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), cfg.DumpToml())
				return nil
			},
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write a default config file, seeded from the environment",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := configPath
				if len(args) == 1 {
					path = args[0]
				}

				err := telemetry.GenerateDefaultConfigFile(telemetry.NewConfigFromEnv(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Config file written to %s\n", path)
				return nil
			},
		},
	)

	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "picool-telemetry v%s\n", version)
		},
	}
}

func newTelemetry() (*telemetry.Telemetry, error) {
	cfg, err := telemetry.HandleAllConfigSetup(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to handle configuration")
	}

	// log level set in flag has a precedence
	lvl := telemetry.LogLevel(logLevel)
	if lvl.IsValid() {
		cfg.LogLevel = lvl
	} else if logLevel != "" {
		logrus.Warnf("Invalid log level: %q. Keeping %q", logLevel, cfg.LogLevel)
	}

	return telemetry.New(cfg, configPath, version)
}

// openOutput returns stdout for "-" or an empty path, otherwise the file at
// path truncated for this run.
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create the output file directory %s", dir)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open the output file %s", path)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warnf("failed to close %s", path)
		}
	}, nil
}
