package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/vision-tools/internal/config"
	"github.com/ironsheep/vision-tools/internal/imaging"
	"github.com/ironsheep/vision-tools/internal/logger"
)

// Metric names accepted by compare --metric.
const (
	metricMSE  = "mse"
	metricPSNR = "psnr"
	metricSSIM = "ssim"
	metricAll  = "all"
)

func (a *app) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List the image files in a directory",
		Long: `List the files directly inside dir (default ".") whose extension is one of
the configured image file types. Matching is case-insensitive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			paths, err := imaging.ListImages(dir, a.cfg.ImageFileTypes)
			if err != nil {
				return err
			}
			a.diag.Debug("listed images", "dir", dir, "count", len(paths), "types", a.cfg.ImageFileTypes)
			for _, p := range paths {
				if err := a.out.Print(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("types", imaging.DefaultImageFileTypes(), "Accepted file extensions")
	a.bindFlags(cmd.Flags(), map[string]string{config.KeyImageFileTypes: "types"})
	return cmd
}

func (a *app) newInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info <image>...",
		Short: "Describe image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				info, err := imaging.LoadImageInfo(a.cache, path)
				if err != nil {
					return err
				}
				if asJSON {
					b, err := json.MarshalIndent(info, "", "  ")
					if err != nil {
						return err
					}
					if err := a.out.Print(string(b)); err != nil {
						return err
					}
					continue
				}
				if err := a.out.PrintTitle(path); err != nil {
					return err
				}
				err = a.out.PrintFields(
					logger.F("width", info.Width),
					logger.F("height", info.Height),
					logger.F("format", info.Format),
					logger.F("byte depth", info.ByteDepth),
					logger.F("channels", info.Channels),
					logger.F("alpha", info.HasAlpha),
					logger.F("file size", info.FileSizeBytes),
				)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print each description as JSON")
	return cmd
}

// loadPair loads two images as arrays and returns the larger of their byte
// depths.
func (a *app) loadPair(pathA, pathB string) (*imaging.Array, *imaging.Array, int, error) {
	arrA, depthA, err := imaging.LoadArray(a.cache, pathA)
	if err != nil {
		return nil, nil, 0, err
	}
	arrB, depthB, err := imaging.LoadArray(a.cache, pathB)
	if err != nil {
		return nil, nil, 0, err
	}
	a.diag.Debug("loaded images", "a", arrA, "b", arrB, "depth", max(depthA, depthB))
	return arrA, arrB, max(depthA, depthB), nil
}

func (a *app) newCompareCmd() *cobra.Command {
	var (
		metric    string
		byteDepth int
		winSize   int
	)
	cmd := &cobra.Command{
		Use:   "compare <image-a> <image-b>",
		Short: "Compare two images with MSE, PSNR and SSIM",
		Long: `Compare two images of the same shape.

PSNR and SSIM need the bit depth of the pixel values. By default it is taken
from the images: 16 when either is a 16-bit image, otherwise 8. Color images
are compared channel by channel for SSIM and the results averaged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			switch metric {
			case metricMSE, metricPSNR, metricSSIM, metricAll:
			default:
				return fmt.Errorf("unknown metric %q", metric)
			}

			arrA, arrB, depth, err := a.loadPair(args[0], args[1])
			if err != nil {
				return err
			}
			if byteDepth > 0 {
				depth = byteDepth
			}

			fields := []logger.Field{
				logger.F("a", args[0]),
				logger.F("b", args[1]),
				logger.F("byte depth", depth),
			}
			if metric == metricMSE || metric == metricAll {
				mse, err := imaging.MSE(arrA, arrB)
				if err != nil {
					return err
				}
				fields = append(fields, logger.F(metricMSE, mse))
			}
			if metric == metricPSNR || metric == metricAll {
				psnr, err := imaging.PSNR(arrA, arrB, depth)
				if err != nil {
					return err
				}
				fields = append(fields, logger.F(metricPSNR, psnr))
			}
			if metric == metricSSIM || metric == metricAll {
				ssim, err := imaging.SSIM(arrA, arrB, imaging.SSIMOptions{
					ByteDepth:    depth,
					WinSize:      winSize,
					Multichannel: arrA.Ndim() == 3,
				})
				if err != nil {
					return err
				}
				fields = append(fields, logger.F(metricSSIM, ssim))
			}

			if err := a.out.PrintTitle("compare"); err != nil {
				return err
			}
			return a.out.PrintFields(fields...)
		},
	}
	cmd.Flags().StringVar(&metric, "metric", metricAll, "Metric to compute (mse|psnr|ssim|all)")
	cmd.Flags().IntVar(&byteDepth, "byte-depth", 0, "Bits per channel for PSNR and SSIM (0 detects it from the images)")
	cmd.Flags().IntVar(&winSize, "win-size", 0, "SSIM window side length, odd and at least 3 (0 selects 7)")
	return cmd
}

func (a *app) newIOUCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "iou <mask-a> <mask-b>",
		Short: "Intersection over union of two mask images",
		Long: `Compute the intersection over union of two mask images of the same shape.
Every non-zero pixel value counts as set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			arrA, arrB, _, err := a.loadPair(args[0], args[1])
			if err != nil {
				return err
			}
			iou, err := imaging.IOU(arrA, arrB)
			if err != nil {
				return err
			}
			return a.out.PrintFields(logger.F("iou", iou))
		},
	}
}

func (a *app) newPlotCmd() *cobra.Command {
	var (
		output string
		title  string
		cols   int
	)
	cmd := &cobra.Command{
		Use:   "plot <image>...",
		Short: "Render images into a PNG figure",
		Long: `Render one or more images into a PNG figure.

A single image fills the whole figure and is titled with --title. Several
images are tiled in a grid of --cols columns, each titled with its file name;
the figure grows by one figure size per row and column.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cols < 1 {
				return fmt.Errorf("--cols must be at least 1, got %d", cols)
			}
			opts := a.cfg.Plot.PlotOptions()

			var axes []*imaging.Axes
			if len(args) > 1 {
				c := min(cols, len(args))
				r := (len(args) + c - 1) / c
				size := imaging.FigSize{
					Width:  opts.FigSize.Width * float64(c),
					Height: opts.FigSize.Height * float64(r),
				}
				_, grid, err := imaging.NewSubplots(r, c, size, opts.DPI)
				if err != nil {
					return err
				}
				axes = grid
			}

			var fig *imaging.Figure
			for i, path := range args {
				arr, _, err := imaging.LoadArray(a.cache, path)
				if err != nil {
					return err
				}
				o := opts
				o.Title = title
				if axes != nil {
					o.Axes = axes[i]
					o.Title = filepath.Base(path)
				}
				ax, err := imaging.PlotImage(arr, o)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fig = ax.Figure()
			}

			if err := fig.Save(output); err != nil {
				return err
			}
			b := fig.Bounds()
			a.diag.Debug("saved figure", "path", output, "width", b.Dx(), "height", b.Dy())
			return a.out.Print("saved", output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "figure.png", "PNG file to write")
	cmd.Flags().StringVar(&title, "title", "", "Title of a single-image figure")
	cmd.Flags().IntVar(&cols, "cols", 2, "Grid columns when plotting several images")
	cmd.Flags().String("colormap", imaging.DefaultColormap, "Colormap for single-channel images")
	cmd.Flags().Bool("dark", true, "Black background with white titles")
	cmd.Flags().Float64("dpi", imaging.DefaultDPI, "Pixels per inch")
	cmd.Flags().Float64("fig-width", imaging.DefaultFigWidth, "Figure width in inches")
	cmd.Flags().Float64("fig-height", imaging.DefaultFigHeight, "Figure height in inches")
	a.bindFlags(cmd.Flags(), map[string]string{
		config.KeyPlotColormap:  "colormap",
		config.KeyPlotDark:      "dark",
		config.KeyPlotDPI:       "dpi",
		config.KeyPlotFigWidth:  "fig-width",
		config.KeyPlotFigHeight: "fig-height",
	})
	return cmd
}
