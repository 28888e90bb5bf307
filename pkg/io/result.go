package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/matzehuels/gridpath/pkg/search"
)

type result[ID comparable] struct {
	Algorithm search.Algorithm `json:"algorithm"`
	Reachable bool             `json:"reachable"`
	Distance  *float64         `json:"distance,omitempty"`
	Path      []ID             `json:"path"`
	Visited   int              `json:"visited"`
}

// MarshalResult encodes r as indented JSON.
func MarshalResult[ID comparable](r *search.Result[ID]) ([]byte, error) {
	out := result[ID]{
		Algorithm: r.Algorithm,
		Reachable: r.Reachable(),
		Path:      r.Path,
		Visited:   r.Visited,
	}
	if out.Reachable {
		d := r.Distance
		out.Distance = &d
	}
	if out.Path == nil {
		out.Path = []ID{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return data, nil
}

// UnmarshalResult decodes a result produced by MarshalResult.
func UnmarshalResult[ID comparable](data []byte) (*search.Result[ID], error) {
	var in result[ID]
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	r := &search.Result[ID]{
		Distance:  math.Inf(1),
		Path:      in.Path,
		Visited:   in.Visited,
		Algorithm: in.Algorithm,
	}
	if in.Reachable && in.Distance != nil {
		r.Distance = *in.Distance
	}
	if r.Path == nil {
		r.Path = []ID{}
	}
	return r, nil
}

// WriteResultJSON writes r to w as JSON followed by a newline.
func WriteResultJSON[ID comparable](w io.Writer, r *search.Result[ID]) error {
	data, err := MarshalResult(r)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
