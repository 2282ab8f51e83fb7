// Package render draws class diagram layouts.
//
// # Overview
//
// Rendering is split into small packages that each own one step:
//
//   - [label]: class box text and its em-based size
//   - [style]: node, edge and package styles from layout attributes
//   - [clip]: trimming relation polylines to the class box outlines
//   - [curve]: straight, rounded and Bezier relation paths
//   - [arrow]: arrowhead triangles at relation ends
//   - [scene]: the format-neutral document the steps write into
//   - [diagram]: the driver that turns a layout into a scene
//   - [sink]: SVG, PNG, PDF and JSON encoders
//
// This package itself holds the SVG conversions shared by the sinks.
// [ToPDF] and [ToPNG] call rsvg-convert (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// The PNG sink rasterizes in process and only the PDF sink needs the
// external tool. Use [HasRSVG] to check for it.
package render
