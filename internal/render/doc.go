// Package render composes the teletext pipelines.
//
// Raster path:
//
//	PixelBuffer ──raster.Sample──▶ SampleCell ─┬─terrain.Classify──▶ Color ─┐
//	                                           └─glyph.Ramp.Map────▶ Glyph ─┴─▶ Cell
//
// Vector path:
//
//	geo.Graph ──geo.Normalizer──▶ grid coords ──vector.DrawLine──▶ vector.Grid
//
// A Renderer is configured once and is safe for concurrent use: it holds
// only read-only configuration and every call allocates its own output.
package render
