package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPlotOptions(t *testing.T) {
	opts := DefaultPlotOptions()
	if !opts.Dark {
		t.Error("Dark should default to true")
	}
	if opts.Colormap != "viridis" {
		t.Errorf("Colormap: got %s, want viridis", opts.Colormap)
	}
	if opts.FigSize.Width != 2.66 || opts.FigSize.Height != 1.7 || opts.DPI != 200 {
		t.Errorf("geometry: got %+v at %v dpi", opts.FigSize, opts.DPI)
	}
	if opts.Axes != nil {
		t.Error("Axes should default to nil")
	}
}

func TestNewFigure(t *testing.T) {
	fig, err := NewFigure(FigSize{Width: DefaultFigWidth, Height: DefaultFigHeight}, DefaultDPI)
	if err != nil {
		t.Fatalf("NewFigure failed: %v", err)
	}
	if fig.Bounds() != image.Rect(0, 0, 532, 340) {
		t.Errorf("bounds: got %v, want 532x340", fig.Bounds())
	}

	for _, bad := range []struct {
		size FigSize
		dpi  float64
	}{
		{FigSize{0, 1}, 100},
		{FigSize{1, 1}, 0},
		{FigSize{0.001, 0.001}, 10},
	} {
		if _, err := NewFigure(bad.size, bad.dpi); err == nil {
			t.Errorf("NewFigure(%+v, %v) should fail", bad.size, bad.dpi)
		}
	}
}

func TestPlotImage_NewFigureDark(t *testing.T) {
	img := rampArray(10, 10)
	opts := DefaultPlotOptions()
	opts.FigSize = FigSize{Width: 2, Height: 1}
	opts.DPI = 50
	opts.Title = "ramp"

	ax, err := PlotImage(img, opts)
	if err != nil {
		t.Fatalf("PlotImage failed: %v", err)
	}
	fig := ax.Figure()
	if fig.Bounds() != image.Rect(0, 0, 100, 50) {
		t.Fatalf("figure bounds: got %v", fig.Bounds())
	}
	if ax.Bounds() != fig.Bounds() {
		t.Errorf("single axes should fill the figure: got %v", ax.Bounds())
	}
	if ax.Title() != "ramp" {
		t.Errorf("Title: got %q", ax.Title())
	}

	out := fig.Image()
	// A square image in a 2:1 figure is centered and leaves side bands.
	if got := color.RGBAModel.Convert(out.At(2, 25)).(color.RGBA); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("dark background: got %v", got)
	}
	if got := out.At(50, 40); got == (color.RGBA{0, 0, 0, 255}) {
		t.Error("image content missing at figure center")
	}

	// The title is white on black.
	if !hasPixel(out, image.Rect(0, 0, 100, 14), color.RGBA{255, 255, 255, 255}) {
		t.Error("no white title pixels found")
	}
}

func TestPlotImage_Light(t *testing.T) {
	opts := DefaultPlotOptions()
	opts.Dark = false
	opts.Title = "light"
	opts.FigSize = FigSize{Width: 2, Height: 1}
	opts.DPI = 50

	ax, err := PlotImage(rampArray(10, 10), opts)
	if err != nil {
		t.Fatalf("PlotImage failed: %v", err)
	}
	out := ax.Figure().Image()
	if got := out.At(2, 25); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("light background: got %v", got)
	}
	if !hasPixel(out, image.Rect(0, 0, 100, 14), color.RGBA{0, 0, 0, 255}) {
		t.Error("no black title pixels found")
	}
}

func TestPlotImage_ReusesAxes(t *testing.T) {
	fig, axes, err := NewSubplots(1, 2, FigSize{Width: 4, Height: 1}, 50)
	if err != nil {
		t.Fatalf("NewSubplots failed: %v", err)
	}
	if len(axes) != 2 || len(fig.Axes()) != 2 {
		t.Fatalf("got %d axes", len(axes))
	}
	if axes[0].Bounds() != image.Rect(0, 0, 100, 50) || axes[1].Bounds() != image.Rect(100, 0, 200, 50) {
		t.Fatalf("axes do not tile the figure: %v %v", axes[0].Bounds(), axes[1].Bounds())
	}

	left := NewArray(5, 5)
	right := NewArray(5, 5)
	for i := range right.Data {
		right.Data[i] = float64(i)
	}

	opts := DefaultPlotOptions()
	opts.Dark = false
	opts.Colormap = "gray"
	opts.Axes = axes[0]
	ax, err := PlotImage(left, opts)
	if err != nil {
		t.Fatalf("PlotImage failed: %v", err)
	}
	if ax != axes[0] || ax.Figure() != fig {
		t.Error("PlotImage did not draw into the supplied axes")
	}

	opts.Axes = axes[1]
	if _, err := PlotImage(right, opts); err != nil {
		t.Fatalf("PlotImage failed: %v", err)
	}

	out := fig.Image()
	// A constant array normalizes to the bottom of the colormap.
	if got := out.At(50, 25); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("constant image: got %v, want black", got)
	}
	if got := out.At(174, 49); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("maximum of ramp: got %v, want white", got)
	}
}

func TestPlotImage_RGB(t *testing.T) {
	img := NewArray(2, 2, 3)
	for i := 0; i < 4; i++ {
		img.Data[i*3] = 255
	}
	opts := DefaultPlotOptions()
	opts.FigSize = FigSize{Width: 1, Height: 1}
	opts.DPI = 20

	ax, err := PlotImage(img, opts)
	if err != nil {
		t.Fatalf("PlotImage failed: %v", err)
	}
	if got := ax.Figure().Image().At(10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("RGB pixel: got %v, want red", got)
	}
}

func TestPlotImage_Errors(t *testing.T) {
	opts := DefaultPlotOptions()

	opts.Colormap = "nope"
	if _, err := PlotImage(rampArray(4, 4), opts); err == nil {
		t.Error("expected an unknown colormap error")
	}

	opts = DefaultPlotOptions()
	if _, err := PlotImage(rampArray(4, 4, 2), opts); err == nil {
		t.Error("expected an error for a 2-channel array")
	}
	if _, err := PlotImage(rampArray(4), opts); err == nil {
		t.Error("expected an error for a 1-D array")
	}
	if _, err := PlotImage(NewArray(0, 4), opts); err == nil {
		t.Error("expected an error for an empty array")
	}
}

func TestFigure_Save(t *testing.T) {
	ax, err := PlotImage(rampArray(8, 8), DefaultPlotOptions())
	if err != nil {
		t.Fatalf("PlotImage failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "figure.png")
	if err := ax.Figure().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open saved figure: %v", err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("failed to decode saved figure: %v", err)
	}
	if format != "png" || cfg.Width != 532 || cfg.Height != 340 {
		t.Errorf("saved figure: %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func hasPixel(img *image.RGBA, r image.Rectangle, want color.RGBA) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == want {
				return true
			}
		}
	}
	return false
}
