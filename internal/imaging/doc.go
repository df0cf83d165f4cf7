// Package imaging provides image comparison metrics, image file discovery and
// a small raster plotting helper.
//
// Images are handled as Arrays: row-major float64 n-dimensional arrays that
// play the role numeric arrays play in scientific tooling. Decoded images
// become Arrays of shape (H, W) for grayscale sources and (H, W, 3) for color
// sources, with values in the native range of the source (0-255 for 8-bit,
// 0-65535 for 16-bit).
//
// # Metrics
//
// MSE, PSNR, SSIM and IOU compare two Arrays of identical shape. Shapes are
// checked explicitly; a mismatch returns an error wrapping ErrShapeMismatch.
//
//   - MSE: mean of the squared elementwise difference.
//   - PSNR: 20*log10(maxPixel/sqrt(MSE)) in dB with maxPixel = 2^depth - 1,
//     +Inf for identical inputs.
//   - SSIM: mean structural similarity over a uniform sliding window, with a
//     data range of 2^depth.
//   - IOU: intersection over union of two masks, where any non-zero element
//     counts as set. Two empty masks return ErrEmptyUnion.
//
// The SSIM data range (2^depth) and the PSNR peak value (2^depth - 1) differ
// by one.
//
// # Plotting
//
// PlotImage renders an Array onto an Axes of a Figure. Figures are composed
// lazily: the facecolor, the image content of each Axes and the titles are
// recorded and only rasterized by Figure.Image or Figure.Save, so a later
// PlotImage call may change the facecolor of a figure that already holds
// images.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Metric functions are
// stateless. Figures and Axes are not synchronized.
package imaging
