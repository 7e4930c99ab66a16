// Package correlogram computes auto- and cross-correlograms of spike trains.
//
// A correlogram is the histogram of lags t_b - t_a between every spike of a
// reference train A and every spike of a target train B, restricted to a
// window symmetric around zero lag. [Compute] evaluates it for every ordered
// pair of units of a [train.Sorting] and sums the contributions of all
// recording segments into a [Tensor] of shape (units, units, bins).
//
// # Bin Geometry
//
// [PlanBins] converts a window and bin width in milliseconds into integer
// sample units. The bin count is always floor(window/bin) + 1; the edges are
// symmetric around zero, so an odd count has a center bin straddling zero
// and an even count has a center bin starting at zero. A lag is counted when
// |2*lag| is below the window span. A negative lag lands in the mirror of the
// bin of its absolute value, which keeps auto-correlograms symmetric even
// when edges fall on whole samples:
//
//	g, err := correlogram.PlanBins(30000, 43.57, 1.6421)
//	// g.NumBins == 27, len(g.Edges) == 28, g.Edges[k] == -g.Edges[27-k]
//
// # Methods
//
// Two kernels implement the pair histogram:
//
//   - [MethodVectorized]: a batch scan over the merged, time-ordered spikes
//     of both trains by increasing shift. Its cost grows with the number of
//     pairs inside the window.
//   - [MethodCompiled]: a windowed nested loop that increments counters
//     directly. Builds with the purego tag leave it out.
//
// Both kernels produce identical counts.
//
// [MethodAuto] picks the compiled kernel when [CompiledAvailable] reports it
// and otherwise falls back to the vectorized kernel, logging a warning.
//
// # Usage
//
//	counts, edges, err := correlogram.Compute(sorting, 50, 1, correlogram.MethodAuto)
//	acg := counts.Pair(0, 0)
//	ccg := counts.Pair(0, 1) // reversed equals counts.Pair(1, 0)
//
// Unit pairs and segments are processed by a worker pool; see [WithWorkers].
package correlogram
