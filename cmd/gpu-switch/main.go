package main

import (
	"fmt"
	"io"
	"os"

	"github.com/foxboron/gpu-switch/efivar"
	"github.com/foxboron/gpu-switch/efivarfs"
	"github.com/foxboron/gpu-switch/gpuswitch"
	"github.com/foxboron/gpu-switch/internal/config"
	"github.com/foxboron/gpu-switch/internal/logging"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitSuccess          = 0
	exitNotFound         = 1 // a variable was missing or could not be updated
	exitInvalidParameter = 2 // bad flags or configuration
)

type options struct {
	verbose   int
	internal  bool
	dedicated bool
	print     bool
	config    string
	efivars   string
}

type app struct {
	stdout   io.Writer
	stderr   io.Writer
	openHost func(config.Config) efivarfs.Host
}

func main() {
	a := &app{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		openHost: openEfivarfs,
	}
	os.Exit(a.run(os.Args[1:]))
}

func openEfivarfs(cfg config.Config) efivarfs.Host {
	efifs := efivarfs.NewFS(cfg.Efivars).CheckImmutable()
	if cfg.UnsetImmutable {
		efifs.UnsetImmutable()
	}
	return efifs
}

func (a *app) run(args []string) int {
	var opts options
	code := exitSuccess
	cmd := &cobra.Command{
		Use:   "gpu-switch [-v]... (-i | -d | -p)",
		Short: "Select the GPU a dual-GPU MacBook Pro powers on next boot",
		Long: `gpu-switch edits the gpu-power-prefs and gpu-policy firmware variables
Apple firmware reads to decide which GPU to power on at boot.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code = a.execute(cmd, opts)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase verbosity, may be repeated")
	flags.BoolVarP(&opts.internal, "internal", "i", false, "use the internal (integrated) GPU on next boot")
	flags.BoolVarP(&opts.dedicated, "dedicated", "d", false, "use the dedicated (external) GPU on next boot")
	flags.BoolVarP(&opts.print, "print", "p", false, "print the GPU related firmware variables")
	flags.StringVar(&opts.config, "config", "", "TOML configuration file")
	flags.StringVar(&opts.efivars, "efivars", "", "efivarfs mount point")
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		a.usage(cmd)
		return exitInvalidParameter
	}
	return code
}

func (a *app) usage(cmd *cobra.Command) {
	if err := cmd.Usage(); err != nil {
		fmt.Fprintf(a.stderr, "Error: could not print usage: %s\n", err)
	}
}

func (a *app) execute(cmd *cobra.Command, opts options) int {
	if (opts.internal && opts.dedicated) || (!opts.internal && !opts.dedicated && !opts.print) {
		a.usage(cmd)
		return exitInvalidParameter
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return exitInvalidParameter
	}
	if opts.efivars != "" {
		cfg.Efivars = opts.efivars
	}
	cfg.Verbosity += opts.verbose
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return exitInvalidParameter
	}

	log := logging.New(a.stderr, logging.Options{
		Verbosity: cfg.Verbosity,
		Level:     cfg.LogLevel,
		Timestamp: cfg.LogTimestamp,
		NoColor:   cfg.LogNoColor,
	})
	acc := gpuswitch.NewAccessor(a.openHost(cfg), gpuswitch.Config{
		Verbosity: cfg.Verbosity,
		Logger:    &log,
	})

	code := exitSuccess
	if opts.internal || opts.dedicated {
		gpu := gpuswitch.Dedicated
		if opts.internal {
			gpu = gpuswitch.Internal
		}
		if err := acc.SetNextBootGPU(gpu, efivar.GPUVariables(cfg.Legacy)); err != nil {
			log.Info().Err(err).Msg("switching GPU failed")
			fmt.Fprintln(a.stdout, "Failed to update GPU preference.")
			code = exitNotFound
		} else {
			fmt.Fprintf(a.stdout, "GPU preference updated, next boot uses the %s GPU.\n", gpu)
		}
	}
	if opts.print {
		found, err := acc.Dump(a.stdout, efivar.DumpVariables(), gpuswitch.DumpOptions{
			Attributes: cfg.Verbosity >= gpuswitch.VerboseTrace,
		})
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %s\n", err)
		}
		if !found || err != nil {
			code = exitNotFound
		}
	}
	return code
}
