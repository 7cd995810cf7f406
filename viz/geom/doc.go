// Package geom holds the small value types shared by the plot pipeline:
// world-space vectors, straight-alpha colours, coloured vertices, the visible
// viewport rectangle and drawable meshes.
//
// Everything here is plain data. Builders (grid, trace) produce meshes in world
// coordinates; the presentation layer maps them to pixels with a Viewport.
package geom
