// Package render turns escape-time fields into packed pixel buffers.
//
// A render is a data-parallel fan-out: the pixel index range is split into
// contiguous chunks, one per worker, and every worker writes only its own
// slots. The output is row-major regardless of completion order.
//
// # Julia symmetry
//
// The filled Julia set of z² + c is symmetric under z -> -z. When the view is
// centred at the origin the grid realises this as a 180° rotation about the
// image centre, so only the first half of the pixels is computed and the rest
// is mirrored after all workers have joined.
//
//	buf := render.JuliaField(escape.Point{Re: -0.8, Im: 0.156}, 100, palette.Default(), 800, 600)
package render
