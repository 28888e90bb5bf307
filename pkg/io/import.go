package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/metric"
)

const maxLineSize = 1 << 20

// lineReader yields the fields of significant lines together with their
// 1-based line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{sc: sc}
}

// next returns the fields of the next non-blank, non-comment line.
// ok is false at end of input.
func (lr *lineReader) next() (fields []string, ok bool, err error) {
	for lr.sc.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return strings.Fields(text), true, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeMalformedInput, err, "read after line %d", lr.line)
	}
	return nil, false, nil
}

// expect reads the next significant line and checks its field count.
func (lr *lineReader) expect(what string, n int) ([]string, error) {
	fields, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Malformed(lr.line+1, "unexpected end of input, want %s", what)
	}
	if len(fields) != n {
		return nil, errors.Malformed(lr.line, "%s: expected %d fields, got %d", what, n, len(fields))
	}
	return fields, nil
}

// maxPrealloc bounds the capacity reserved from the header counts, which are
// untrusted until the matching lines have been read.
const maxPrealloc = 1 << 16

// ReadInstance decodes an instance from r. ReadInstance does not close r.
func ReadInstance(r io.Reader) (*graph.Graph[string], error) {
	lr := newLineReader(r)

	head, err := lr.expect("header", 5)
	if err != nil {
		return nil, err
	}
	n, err := parseCount(lr.line, "n", head[0])
	if err != nil {
		return nil, err
	}
	m, err := parseCount(lr.line, "m", head[1])
	if err != nil {
		return nil, err
	}
	k, err := metric.ParseExponent(head[2])
	if err != nil {
		return nil, errors.Malformed(lr.line, "k: %s", errors.UserMessage(err))
	}
	source, target := head[3], head[4]

	vertices := make([]graph.Vertex[string], 0, min(n, maxPrealloc))
	seen := make(map[string]bool, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		f, err := lr.expect(fmt.Sprintf("vertex %d of %d", i+1, n), 3)
		if err != nil {
			return nil, err
		}
		if seen[f[0]] {
			return nil, errors.Malformed(lr.line, "duplicate vertex id %q", f[0])
		}
		x, err := parseCoord(lr.line, "x", f[1])
		if err != nil {
			return nil, err
		}
		y, err := parseCoord(lr.line, "y", f[2])
		if err != nil {
			return nil, err
		}
		seen[f[0]] = true
		vertices = append(vertices, graph.Vertex[string]{ID: f[0], Point: graph.Point{X: x, Y: y}})
	}

	edges := make([]graph.Edge[string], 0, min(m, maxPrealloc))
	for i := 0; i < m; i++ {
		f, err := lr.expect(fmt.Sprintf("edge %d of %d", i+1, m), 2)
		if err != nil {
			return nil, err
		}
		where := fmt.Sprintf("line %d", lr.line)
		for _, id := range f {
			if !seen[id] {
				return nil, errors.UndefinedVertex(id, where)
			}
		}
		if f[0] == f[1] {
			return nil, errors.Malformed(lr.line, "self-loop on %q", f[0])
		}
		edges = append(edges, graph.Edge[string]{U: f[0], V: f[1]})
	}

	if _, more, err := lr.next(); err != nil {
		return nil, err
	} else if more {
		return nil, errors.Malformed(lr.line, "unexpected content after %d vertices and %d edges", n, m)
	}

	return graph.Build(k, source, target, vertices, edges)
}

// ImportInstance reads the instance file at path.
func ImportInstance(path string) (*graph.Graph[string], error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadInstance(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func parseCount(line int, name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errors.Malformed(line, "%s: want a non-negative integer, got %q", name, s)
	}
	return v, nil
}

func parseCoord(line int, name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Malformed(line, "%s: want a finite number, got %q", name, s)
	}
	return v, nil
}
