package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FigSize is a figure size in inches.
type FigSize struct {
	Width  float64
	Height float64
}

// Default figure geometry: 2.66x1.7 inches at 200 dpi, i.e. 532x340 pixels.
const (
	DefaultFigWidth  = 2.66
	DefaultFigHeight = 1.7
	DefaultDPI       = 200.0
)

// PlotOptions configures PlotImage.
type PlotOptions struct {
	// Title is drawn at the top of the axes when non-empty.
	Title string

	// Dark paints the figure background black and the title white.
	Dark bool

	// Colormap names the colormap used for single-channel arrays.
	Colormap string

	// FigSize and DPI size a newly created figure. They are ignored when
	// Axes is set.
	FigSize FigSize
	DPI     float64

	// Axes selects an existing drawing surface. When nil a new figure with a
	// single axes is created.
	Axes *Axes
}

// DefaultPlotOptions returns dark styling with the viridis colormap on a
// 2.66x1.7 inch figure at 200 dpi.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Dark:     true,
		Colormap: DefaultColormap,
		FigSize:  FigSize{Width: DefaultFigWidth, Height: DefaultFigHeight},
		DPI:      DefaultDPI,
	}
}

// Figure is a raster drawing surface holding one or more Axes.
//
// Drawing is deferred: the figure records its facecolor and the content of
// its axes, and rasterizes them on Image or Save.
type Figure struct {
	bounds    image.Rectangle
	facecolor color.Color
	axes      []*Axes
}

// NewFigure creates an empty figure of size*dpi pixels with a white
// facecolor.
func NewFigure(size FigSize, dpi float64) (*Figure, error) {
	if size.Width <= 0 || size.Height <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("invalid figure size %vx%v at %v dpi", size.Width, size.Height, dpi)
	}
	w := int(math.Round(size.Width * dpi))
	h := int(math.Round(size.Height * dpi))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("figure %vx%v at %v dpi is smaller than one pixel", size.Width, size.Height, dpi)
	}
	return &Figure{
		bounds:    image.Rect(0, 0, w, h),
		facecolor: color.White,
	}, nil
}

// NewSubplots creates a figure tiled edge-to-edge with rows*cols axes, listed
// row by row.
func NewSubplots(rows, cols int, size FigSize, dpi float64) (*Figure, []*Axes, error) {
	if rows < 1 || cols < 1 {
		return nil, nil, fmt.Errorf("invalid subplot grid %dx%d", rows, cols)
	}
	fig, err := NewFigure(size, dpi)
	if err != nil {
		return nil, nil, err
	}
	w, h := fig.bounds.Dx(), fig.bounds.Dy()
	axes := make([]*Axes, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rect := image.Rect(c*w/cols, r*h/rows, (c+1)*w/cols, (r+1)*h/rows)
			axes = append(axes, fig.addAxes(rect))
		}
	}
	return fig, axes, nil
}

func (f *Figure) addAxes(rect image.Rectangle) *Axes {
	ax := &Axes{figure: f, rect: rect}
	f.axes = append(f.axes, ax)
	return ax
}

// Bounds returns the pixel rectangle of the figure.
func (f *Figure) Bounds() image.Rectangle {
	return f.bounds
}

// Facecolor returns the background color.
func (f *Figure) Facecolor() color.Color {
	return f.facecolor
}

// SetFacecolor changes the background color.
func (f *Figure) SetFacecolor(c color.Color) {
	f.facecolor = c
}

// Axes returns the axes of the figure in creation order.
func (f *Figure) Axes() []*Axes {
	return f.axes
}

// Image rasterizes the figure.
func (f *Figure) Image() *image.RGBA {
	canvas := image.NewRGBA(f.bounds)
	draw.Draw(canvas, f.bounds, image.NewUniform(f.facecolor), image.Point{}, draw.Src)
	for _, ax := range f.axes {
		ax.render(canvas)
	}
	return canvas
}

// Save writes the rasterized figure to path as PNG.
func (f *Figure) Save(path string) error {
	if err := imgio.Save(path, f.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save figure: %w", err)
	}
	return nil
}

// Axes is a rectangular region of a Figure that shows one image.
//
// Axes never draw ticks, labels or frames.
type Axes struct {
	figure     *Figure
	rect       image.Rectangle
	content    image.Image
	origin     image.Point
	title      string
	titleColor color.Color
}

// Figure returns the parent figure.
func (a *Axes) Figure() *Figure {
	return a.figure
}

// Bounds returns the pixel rectangle of the axes inside its figure.
func (a *Axes) Bounds() image.Rectangle {
	return a.rect
}

// Title returns the title set by the last PlotImage call, if any.
func (a *Axes) Title() string {
	return a.title
}

func (a *Axes) render(canvas *image.RGBA) {
	if a.content != nil {
		r := a.content.Bounds().Sub(a.content.Bounds().Min).Add(a.origin)
		draw.Draw(canvas, r, a.content, a.content.Bounds().Min, draw.Over)
	}
	if a.title == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(a.titleColor),
		Face: face,
	}
	width := d.MeasureString(a.title).Ceil()
	x := a.rect.Min.X + (a.rect.Dx()-width)/2
	y := a.rect.Min.Y + face.Ascent + 1
	d.Dot = fixed.P(x, y)
	d.DrawString(a.title)
}

// PlotImage draws img onto an axes.
//
// Single-channel arrays, of shape (H, W) or (H, W, 1), are normalized to
// their own minimum and maximum and mapped through opts.Colormap. Arrays of
// shape (H, W, 3) or (H, W, 4) are shown as RGB or RGBA: values above 255 are
// read as 16-bit, values above 1 as 8-bit, anything else as fractions.
//
// The image keeps its aspect ratio, is centered in the axes and fills it
// edge-to-edge along the limiting dimension. When opts.Dark is set the whole
// figure background becomes black. The returned Axes belongs to the figure
// that was created or reused.
func PlotImage(img *Array, opts PlotOptions) (*Axes, error) {
	name := opts.Colormap
	if name == "" {
		name = DefaultColormap
	}
	cm, err := LookupColormap(name)
	if err != nil {
		return nil, err
	}

	src, err := arrayToImage(img, cm)
	if err != nil {
		return nil, err
	}

	ax := opts.Axes
	if ax == nil {
		fig, err := NewFigure(opts.FigSize, opts.DPI)
		if err != nil {
			return nil, err
		}
		ax = fig.addAxes(fig.Bounds())
	}

	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	scale := math.Min(float64(ax.rect.Dx())/float64(sw), float64(ax.rect.Dy())/float64(sh))
	w := max(1, int(math.Round(float64(sw)*scale)))
	h := max(1, int(math.Round(float64(sh)*scale)))

	ax.content = imaging.Resize(src, w, h, imaging.NearestNeighbor)
	ax.origin = image.Pt(
		ax.rect.Min.X+(ax.rect.Dx()-w)/2,
		ax.rect.Min.Y+(ax.rect.Dy()-h)/2,
	)

	if opts.Title != "" {
		ax.title = opts.Title
		ax.titleColor = color.Black
		if opts.Dark {
			ax.titleColor = color.White
		}
	}
	if opts.Dark {
		ax.figure.SetFacecolor(color.Black)
	}
	return ax, nil
}

func arrayToImage(a *Array, cm *Colormap) (*image.NRGBA, error) {
	channels := 1
	switch {
	case a.Ndim() == 2:
	case a.Ndim() == 3 && (a.Shape[2] == 1 || a.Shape[2] == 3 || a.Shape[2] == 4):
		channels = a.Shape[2]
	default:
		return nil, fmt.Errorf("cannot plot array of shape %v", a.Shape)
	}
	h, w := a.Shape[0], a.Shape[1]
	if h == 0 || w == 0 {
		return nil, fmt.Errorf("cannot plot empty array of shape %v", a.Shape)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	lo, hi := a.MinMax()

	if channels == 1 {
		for i, v := range a.Data {
			t := 0.0
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			out.SetNRGBA(i%w, i/w, cm.At(t))
		}
		return out, nil
	}

	peak := 1.0
	switch {
	case hi > 255:
		peak = 65535
	case hi > 1:
		peak = 255
	}
	for i := 0; i < w*h; i++ {
		px := a.Data[i*channels : (i+1)*channels]
		c := color.NRGBA{
			R: unitToByte(px[0] / peak),
			G: unitToByte(px[1] / peak),
			B: unitToByte(px[2] / peak),
			A: 255,
		}
		if channels == 4 {
			c.A = unitToByte(px[3] / peak)
		}
		out.SetNRGBA(i%w, i/w, c)
	}
	return out, nil
}

func unitToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
