// Package config resolves vtools settings from defaults, an optional config
// file, VTOOLS_* environment variables and command-line flags.
//
// Precedence follows viper: flags bound with BindPFlag win over environment
// variables, which win over the config file, which wins over defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/ironsheep/vision-tools/internal/imaging"
)

// EnvPrefix is prepended to environment variable names. The key
// "plot.fig-width" is read from VTOOLS_PLOT_FIG_WIDTH.
const EnvPrefix = "VTOOLS"

// Configuration keys.
const (
	KeyLogLevel       = "log-level"
	KeyLogFile        = "log-file"
	KeyVerbose        = "verbose"
	KeyImageFileTypes = "image-file-types"
	KeyPlotColormap   = "plot.colormap"
	KeyPlotDark       = "plot.dark"
	KeyPlotFigWidth   = "plot.fig-width"
	KeyPlotFigHeight  = "plot.fig-height"
	KeyPlotDPI        = "plot.dpi"
)

// ErrInvalid is wrapped by every validation error Load returns.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	LogLevel       log.Level
	LogFile        string
	Verbose        bool
	ImageFileTypes []string
	Plot           Plot
}

// Plot holds figure defaults for the plot command.
type Plot struct {
	Colormap string
	Dark     bool
	FigSize  imaging.FigSize
	DPI      float64
}

// PlotOptions converts the plot defaults into imaging.PlotOptions.
func (p Plot) PlotOptions() imaging.PlotOptions {
	return imaging.PlotOptions{
		Colormap: p.Colormap,
		Dark:     p.Dark,
		FigSize:  p.FigSize,
		DPI:      p.DPI,
	}
}

// New returns a viper instance with defaults registered and environment
// lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyVerbose, true)
	v.SetDefault(KeyImageFileTypes, imaging.DefaultImageFileTypes())
	v.SetDefault(KeyPlotColormap, imaging.DefaultColormap)
	v.SetDefault(KeyPlotDark, true)
	v.SetDefault(KeyPlotFigWidth, imaging.DefaultFigWidth)
	v.SetDefault(KeyPlotFigHeight, imaging.DefaultFigHeight)
	v.SetDefault(KeyPlotDPI, imaging.DefaultDPI)
}

// ReadFile merges the config file at path into v. The format is taken from
// the file extension. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load resolves and validates the configuration held by v.
//
// Image file types are lowercased and stripped of a leading dot. The
// colormap must be registered with the imaging package.
func Load(v *viper.Viper) (*Config, error) {
	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, KeyLogLevel, err)
	}

	var fileTypes []string
	for _, ft := range v.GetStringSlice(KeyImageFileTypes) {
		ft = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ft), "."))
		if ft != "" {
			fileTypes = append(fileTypes, ft)
		}
	}
	if len(fileTypes) == 0 {
		return nil, fmt.Errorf("%w: %s must name at least one extension", ErrInvalid, KeyImageFileTypes)
	}

	cfg := &Config{
		LogLevel:       level,
		LogFile:        v.GetString(KeyLogFile),
		Verbose:        v.GetBool(KeyVerbose),
		ImageFileTypes: fileTypes,
		Plot: Plot{
			Colormap: v.GetString(KeyPlotColormap),
			Dark:     v.GetBool(KeyPlotDark),
			FigSize: imaging.FigSize{
				Width:  v.GetFloat64(KeyPlotFigWidth),
				Height: v.GetFloat64(KeyPlotFigHeight),
			},
			DPI: v.GetFloat64(KeyPlotDPI),
		},
	}

	if cfg.Plot.DPI <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, KeyPlotDPI, cfg.Plot.DPI)
	}
	if cfg.Plot.FigSize.Width <= 0 || cfg.Plot.FigSize.Height <= 0 {
		return nil, fmt.Errorf("%w: figure size must be positive, got %vx%v",
			ErrInvalid, cfg.Plot.FigSize.Width, cfg.Plot.FigSize.Height)
	}
	if _, err := imaging.LookupColormap(cfg.Plot.Colormap); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, KeyPlotColormap, err)
	}
	return cfg, nil
}
