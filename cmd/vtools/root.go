package main

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/vision-tools/internal/config"
	"github.com/ironsheep/vision-tools/internal/imaging"
	"github.com/ironsheep/vision-tools/internal/logger"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config

	diag  *log.Logger
	out   logger.Printer
	file  *logger.File
	cache *imaging.ImageCache
}

func newApp(diag *log.Logger) *app {
	return &app{
		v:     config.New(),
		diag:  diag,
		cache: imaging.NewImageCache(),
	}
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vtools",
		Short: "Image comparison, plotting and text utilities",
		Long: `vtools compares images with MSE, PSNR, SSIM and IOU, renders arrays as
figures, lists image directories, extracts numbers from text and filters
string lists.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Read settings from this file (YAML, TOML or JSON)")
	flags.String("log-level", "info", "Diagnostic log level (debug|info|warn|error)")
	flags.String("log-file", "", "Also write command output to this file")
	flags.Bool("verbose", true, "Print command output to stdout")

	a.bindFlags(flags, map[string]string{
		config.KeyLogLevel: "log-level",
		config.KeyLogFile:  "log-file",
		config.KeyVerbose:  "verbose",
	})

	root.AddCommand(
		a.newListCmd(),
		a.newInfoCmd(),
		a.newCompareCmd(),
		a.newIOUCmd(),
		a.newPlotCmd(),
		a.newNumbersCmd(),
		a.newSeparatorCmd(),
		a.newFilterCmd(),
		newVersionCmd(),
	)
	return root
}

// bindFlags binds each config key to the named flag of flags. Flags only
// take precedence when set on the command line.
func (a *app) bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// setup resolves the configuration and opens the output printer.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.v, a.configPath); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.diag.SetLevel(cfg.LogLevel)

	opts := []logger.Option{logger.WithWriter(cmd.OutOrStdout())}
	if cfg.LogFile == "" {
		a.out = logger.NewConsole(cfg.Verbose, opts...)
		return nil
	}
	f, err := logger.NewFile(cfg.LogFile, cfg.Verbose, opts...)
	if err != nil {
		return err
	}
	a.file = f
	a.out = f
	a.diag.Debug("writing output to file", "path", cfg.LogFile)
	return nil
}

func (a *app) close() {
	if a.file == nil {
		return
	}
	if err := a.file.Close(); err != nil && !errors.Is(err, logger.ErrClosed) {
		a.diag.Warn("failed to close log file", "err", err)
	}
	a.file = nil
}
