package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/michelson/internal/config"
	"github.com/wippyai/michelson/micheline"
	"github.com/wippyai/michelson/michelson"
)

const programName = "michelson"

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	tr     *michelson.Transcoder
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type globalFlags struct {
	configFile string
	debug      bool
	maxDepth   int
	pretty     bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Encode, decode and inspect Michelson expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().
		StringVar(&flags.configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		BoolVarP(&flags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		IntVar(&flags.maxDepth, "max-depth", 0, "nesting limit (overrides config)")
	rootCmd.PersistentFlags().
		BoolVar(&flags.pretty, "pretty", false, "indent JSON output (overrides config)")

	rootCmd.AddCommand(
		encodeCommand(a),
		decodeCommand(a),
		hashCommand(a),
		primsCommand(a),
		inspectCommand(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = flags.maxDepth
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Pretty = flags.pretty
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, flags.debug, a.stderr)
	if err != nil {
		return err
	}
	michelson.SetLogger(logger.Named("michelson"))
	micheline.SetLogger(logger.Named("micheline"))

	a.cfg = cfg
	a.logger = logger
	a.tr = michelson.NewTranscoder(
		michelson.WithMaxDepth(cfg.MaxDepth),
		michelson.WithLogger(logger.Named("transcoder")),
	)
	logger.Debug("configured",
		zap.String("command", cmd.Name()),
		zap.Int("maxDepth", cfg.MaxDepth),
		zap.String("output", cfg.Output))
	return nil
}

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
