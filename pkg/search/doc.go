// Package search computes single-pair shortest paths on a [graph.Graph].
//
// Two algorithms are provided and share a [Result] type so their outputs can
// be compared directly:
//
//   - [AStar] expands vertices in order of f = g + h, where g is the best known
//     cost from the source and h is the graph's heuristic D(u, t, k).
//   - [BellmanFord] relaxes every edge in both directions for up to N-1 passes
//     and checks for negative cycles with one extra pass.
//
// [Run] dispatches on an [Algorithm]; [AlgorithmAuto] picks A* when the
// heuristic is consistent for the graph's exponent and Bellman-Ford otherwise.
//
// # A* details
//
// The open set is a binary heap of (f, vertex) entries. Improving a vertex
// pushes a new entry instead of updating the old one (lazy deletion); stale
// entries are skipped when popped and are not counted. Result.Visited counts
// each vertex once, at its first pop. Entries with equal f pop in the order
// they were pushed, so results are deterministic for a given edge order.
//
// For 0 < k < 1 the heuristic may overestimate and A* may return a distance
// larger than the true shortest one. Pass [WithStrictHeuristic] to refuse such
// graphs with [errors.ErrCodeInconsistentHeuristic].
//
// Complexity:
//
//   - AStar:       O((V + E) log E) time, O(V + E) space.
//   - BellmanFord: O(V * E) time, O(V) space.
//
// # Cancellation and budgets
//
// A* checks the context every 1024 pops and Bellman-Ford once per pass.
// [WithMaxExpansions] and [WithMaxPasses] bound the work done. Cancellation
// and an exhausted budget both return [errors.ErrCodeSearchAborted], which is
// distinct from an unreachable target: unreachable is a Result with infinite
// Distance and an empty Path, never an error.
//
// # Concurrency
//
// Every call allocates its own working state. A Graph and its Index may be
// shared by any number of concurrent searches.
//
// Example usage:
//
//	idx := graph.NewIndex(g)
//	res, err := search.AStar(ctx, g, idx)
//	if err != nil {
//	    return err
//	}
//	if res.Reachable() {
//	    fmt.Println(res.Distance, res.Path, res.Visited)
//	}
package search
