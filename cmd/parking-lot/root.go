package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Animesh-Ghosh/parking-lot/internal/config"
	"github.com/Animesh-Ghosh/parking-lot/internal/dispatch"
	"github.com/Animesh-Ghosh/parking-lot/internal/logging"
	"github.com/Animesh-Ghosh/parking-lot/internal/parking"
	"github.com/Animesh-Ghosh/parking-lot/internal/telemetry"
)

type app struct {
	configPath string
	verbose    bool
	jsonOutput bool

	cfg       *config.Config
	telemetry *telemetry.TelemetryProvider
	ready     bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "parking-lot [file]",
		Short: "Fixed-capacity parking lot driven by text commands",
		Long: `parking-lot allocates slots to arriving cars and frees them when they leave.

Commands are read one per line from the given file, or from standard input
when no file is given. Processing stops at "exit", at end of input, or at the
first unrecognised or failing command.

Commands:
  ` + strings.Join(dispatch.Commands(), "\n  "),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd, args)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output logs in JSON format")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newServeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.jsonOutput {
		cfg.Log.Format = "json"
	}
	a.cfg = cfg

	tp, err := telemetry.NewTelemetryProvider(cmd.Context(), cfg.OTel)
	if err != nil {
		return err
	}
	a.telemetry = tp

	logging.Init(cmd.ErrOrStderr(), cfg.OTel.ServiceName, cfg.Environment, cfg.Log)
	a.ready = true
	return nil
}

func (a *app) newParkingLot() (*parking.InstrumentedParkingLot, error) {
	return parking.NewInstrumentedParkingLot(a.telemetry.Tracer(), a.telemetry.Meter())
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var src dispatch.LineSource = dispatch.NewReaderSource(cmd.InOrStdin())
	if len(args) == 1 {
		fileSource, err := dispatch.OpenFileSource(args[0])
		if err != nil {
			return err
		}
		defer fileSource.Close()
		src = fileSource
		logging.Debug(ctx, "reading commands from file", "path", args[0])
	}

	lot, err := a.newParkingLot()
	if err != nil {
		return err
	}

	d := dispatch.New(lot, cmd.OutOrStdout(), dispatch.WithTracer(a.telemetry.Tracer()))
	return d.Process(ctx, src)
}
