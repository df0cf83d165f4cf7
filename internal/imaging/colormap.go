package imaging

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultColormap is the colormap PlotImage uses when none is given.
const DefaultColormap = "viridis"

// colormapSize is the number of lookup table entries per colormap.
const colormapSize = 256

// ErrUnknownColormap is returned for colormap names that are not registered.
var ErrUnknownColormap = errors.New("unknown colormap")

// colormapAnchors holds evenly spaced sample colors of each colormap. The
// lookup tables are interpolated between them.
var colormapAnchors = map[string][]string{
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"inferno": {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	"magma":   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"cividis": {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fee838"},
	"gray":    {"#000000", "#ffffff"},
}

var colormapAliases = map[string]string{
	"grey": "gray",
}

// Colormap maps normalized scalars in [0, 1] to colors.
type Colormap struct {
	name string
	lut  [colormapSize]color.NRGBA
}

// ColormapNames returns the registered colormap names in sorted order.
func ColormapNames() []string {
	names := make([]string, 0, len(colormapAnchors)+len(colormapAliases))
	for name := range colormapAnchors {
		names = append(names, name)
	}
	for alias := range colormapAliases {
		names = append(names, alias)
	}
	slices.Sort(names)
	return names
}

// LookupColormap returns the colormap registered under name. Lookup is
// case-insensitive.
func LookupColormap(name string) (*Colormap, error) {
	key := strings.ToLower(name)
	if alias, ok := colormapAliases[key]; ok {
		key = alias
	}
	anchors, ok := colormapAnchors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
	}

	stops := make([]colorful.Color, len(anchors))
	for i, hex := range anchors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("colormap %s: %w", key, err)
		}
		stops[i] = c
	}

	cm := &Colormap{name: key}
	segments := float64(len(stops) - 1)
	for i := range cm.lut {
		pos := float64(i) / (colormapSize - 1) * segments
		seg := min(int(pos), len(stops)-2)
		c := stops[seg].BlendRgb(stops[seg+1], pos-float64(seg)).Clamped()
		r, g, b := c.RGB255()
		cm.lut[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return cm, nil
}

// Name returns the canonical colormap name.
func (c *Colormap) Name() string {
	return c.name
}

// At maps v to a color. Values outside [0, 1] are clipped and NaN maps to
// transparent.
func (c *Colormap) At(v float64) color.NRGBA {
	if math.IsNaN(v) {
		return color.NRGBA{}
	}
	idx := int(v * colormapSize)
	if idx < 0 {
		idx = 0
	}
	if idx > colormapSize-1 {
		idx = colormapSize - 1
	}
	return c.lut[idx]
}
