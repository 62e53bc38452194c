// Package analysis summarises escape-time data.
//
//   - [Summarize]: interior fraction, mean escape value and a histogram
//   - [Orbit]: the sequence z0, z1, ... for one starting point
//   - [BifurcationDiagram]: attractor of x -> x² + c along the real axis
//
// The histogram feeds the CLI's stats plot:
//
//	values, _ := r.Escapes(ctx, job)
//	s := analysis.Summarize(values, job.MaxIterations, 40)
package analysis
