package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/metric"
)

// WriteInstance encodes g in the instance format and writes it to w.
// Ids are written with fmt's %v and must not be empty or contain whitespace.
func WriteInstance[ID comparable](w io.Writer, g *graph.Graph[ID]) error {
	bw := bufio.NewWriter(w)

	token := func(id ID) (string, error) {
		s := fmt.Sprint(id)
		if s == "" || strings.ContainsAny(s, " \t\r\n") || strings.HasPrefix(s, "#") {
			return "", errors.New(errors.ErrCodeInvalidInput, "vertex id %q cannot be written as a token", s)
		}
		return s, nil
	}

	s, err := token(g.Source())
	if err != nil {
		return err
	}
	t, err := token(g.Target())
	if err != nil {
		return err
	}
	fmt.Fprintf(bw, "%d %d %s %s %s\n", g.N(), g.M(), metric.FormatExponent(g.K()), s, t)

	for _, id := range g.Vertices() {
		tok, err := token(id)
		if err != nil {
			return err
		}
		p, _ := g.Point(id)
		fmt.Fprintf(bw, "%s %s %s\n", tok, formatCoord(p.X), formatCoord(p.Y))
	}

	// Edge endpoints are vertices, so their tokens were checked above.
	g.EachEdge(func(_ int, e graph.Edge[ID]) {
		fmt.Fprintf(bw, "%v %v\n", e.U, e.V)
	})

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportInstance writes g to a file at path.
func ExportInstance[ID comparable](g *graph.Graph[ID], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteInstance(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
