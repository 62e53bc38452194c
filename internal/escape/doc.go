// Package escape implements the escape-time evaluator shared by the Mandelbrot
// and Julia fields.
//
// Both fields iterate the same recurrence z = z² + c; only the roles of the
// arguments differ:
//
//   - Mandelbrot: z0 = 0, c varies per pixel
//   - Julia: z0 varies per pixel, c is fixed
//
// # Colouring
//
// [Value] returns the plain iteration count. [Smooth] returns a continuous
// value for escaping orbits, which avoids banding in continuous palettes.
// [Renormalized] is an alternative smoothing formula kept as a preset.
package escape
