// Package msdf generates single- and multi-channel signed distance
// fields from vector glyph outlines.
//
// A Shape is a set of closed contours built from line, quadratic and
// cubic Bezier segments. After edge coloring (ColorEdges), the shape can
// be rasterized into a float Bitmap as a plain SDF, a three-channel MSDF
// or a four-channel MTSDF (GenerateSDF, GenerateMSDF, GenerateMTSDF).
// The median of the three MSDF channels reconstructs sharp corners when
// sampled in a shader.
//
// The atlas subpackage builds packed font atlases on top of this
// package: it extracts outlines from TrueType/OpenType fonts, generates
// a distance field per glyph and packs the results into a single
// texture with per-glyph placement records.
//
// msdf produces no log output by default. Call SetLogger to enable
// structured logging via log/slog.
package msdf
