// Package io reads and writes grid instances and search results.
//
// # Instance Format
//
// An instance is a whitespace-separated text file:
//
//	n m k s t
//	id x y        (n vertex lines)
//	u v           (m edge lines)
//
// n and m are non-negative integers, k is a float (inf and -inf are
// accepted), s and t are vertex ids. Ids are opaque tokens without
// whitespace. Blank lines and lines starting with # are ignored anywhere.
//
//	# 2x1 strip, Euclidean weights
//	2 1 2 a b
//	a 0 0
//	b 3 4
//	a b
//
// # Import
//
// Use [ImportInstance] to read an instance from a file path, or
// [ReadInstance] to read from any io.Reader:
//
//	g, err := io.ImportInstance("100.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Structural problems (wrong field count, unparsable number, missing or
// trailing lines, duplicate ids, self-loops) are reported as
// [errors.ErrCodeMalformedInput] and name the offending line. References to
// undeclared ids are reported as [errors.ErrCodeUndefinedVertex].
//
// # Export
//
// [WriteInstance] and [ExportInstance] write the same format, so an imported
// instance re-imports to an identical graph.
//
// # Results
//
// [MarshalResult] encodes a search result as JSON:
//
//	{
//	  "algorithm": "astar",
//	  "reachable": true,
//	  "distance": 4,
//	  "path": ["0", "1", "4", "5", "8"],
//	  "visited": 7
//	}
//
// distance is omitted when the target is unreachable, since JSON has no
// infinity. [UnmarshalResult] restores it as +Inf.
package io
