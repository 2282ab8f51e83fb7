// Package geom provides the plane geometry shared by the diagram renderer.
//
// # Types
//
//   - [Point]: an immutable real-valued coordinate with vector helpers
//   - [Rect]: an axis-aligned rectangle with inclusive containment
//   - [Path]: an ordered list of move/line/cubic/arc commands that serializes
//     to SVG path data and can be replayed onto a raster context
//
// All values use a y-down coordinate system, matching SVG user space.
package geom
