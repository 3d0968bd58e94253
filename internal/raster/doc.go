// Package raster turns encoded map tiles into in-memory pixel buffers and
// reduces them to per-cell averages.
//
// The sampling pipeline is:
//
//	bytes ──Decode──▶ PixelBuffer ──Sample──▶ []SampleCell
//
// Sampling windows are integer rectangles computed by SampleWindow. For
// output cell (x, y) of a W×H grid over an IW×IH image:
//
//	x0 = x*IW/W          (integer division, i.e. floor)
//	x1 = (x+1)*IW/W
//	if x1 <= x0 { x1 = x0 + 1 }
//	clamp x0 to [0, IW-1] and x1 to [x0+1, IW]
//
// and likewise for y. When the image is at least as large as the grid the
// windows tile the image exactly with no overlap. When it is smaller,
// neighbouring cells share a source pixel. A window is never empty.
package raster
