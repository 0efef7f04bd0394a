package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yyyoichi/lowrank"
)

// channelSVD is one channel of the SVD service response.
// U is height rows, Vt is one row per singular value.
type channelSVD struct {
	U  [][]float32 `json:"U"`
	S  []float32   `json:"S"`
	Vt [][]float32 `json:"Vt"`
}

type svdResponse struct {
	Red   *channelSVD `json:"red"`
	Green *channelSVD `json:"green"`
	Blue  *channelSVD `json:"blue"`
}

// decodeFactors reads an SVD service response and flattens every channel
// into the row-major layout used by the reconstruction kernel.
func decodeFactors(r io.Reader, width, height int) ([3]lowrank.Factors, error) {
	var (
		res     svdResponse
		factors [3]lowrank.Factors
	)
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return factors, fmt.Errorf("failed to decode factors: %w", err)
	}
	for i, ch := range []struct {
		name string
		svd  *channelSVD
	}{{"red", res.Red}, {"green", res.Green}, {"blue", res.Blue}} {
		if ch.svd == nil {
			return factors, fmt.Errorf("missing channel %q", ch.name)
		}
		f, err := ch.svd.flatten(width, height)
		if err != nil {
			return factors, fmt.Errorf("channel %q: %w", ch.name, err)
		}
		factors[i] = f
	}
	return factors, nil
}

func (c *channelSVD) flatten(width, height int) (lowrank.Factors, error) {
	if len(c.U) != height {
		return lowrank.Factors{}, fmt.Errorf("%w: U has %d rows, want %d", lowrank.ErrFactorLayout, len(c.U), height)
	}
	if len(c.Vt) != len(c.S) {
		return lowrank.Factors{}, fmt.Errorf("%w: Vt has %d rows, want %d", lowrank.ErrFactorLayout, len(c.Vt), len(c.S))
	}
	fullRank := min(width, height)
	f := lowrank.Factors{
		U:      make([]float32, 0, height*fullRank),
		S:      c.S,
		Vt:     make([]float32, 0, len(c.Vt)*width),
		Width:  width,
		Height: height,
	}
	for i, row := range c.U {
		// the service may return fewer columns than the full rank
		if len(row) != len(c.S) {
			return lowrank.Factors{}, fmt.Errorf("%w: U row %d has %d columns, want %d", lowrank.ErrFactorLayout, i, len(row), len(c.S))
		}
		f.U = append(f.U, row...)
		f.U = append(f.U, make([]float32, fullRank-min(len(row), fullRank))...)
	}
	for i, row := range c.Vt {
		if len(row) != width {
			return lowrank.Factors{}, fmt.Errorf("%w: Vt row %d has %d columns, want %d", lowrank.ErrFactorLayout, i, len(row), width)
		}
		f.Vt = append(f.Vt, row...)
	}
	return f, f.Validate()
}
