package lowrank

import (
	"fmt"

	"github.com/yyyoichi/lowrank/internal/svd"
	"gonum.org/v1/gonum/floats"
)

// Factors is the truncated SVD of one channel plane in the layout expected by
// ReconstructChannel.
type Factors struct {
	// U is Height rows of FullRank() columns, row-major.
	U []float32
	// S holds the singular values, largest first.
	S []float32
	// Vt is at least len(S) rows of Width columns, row-major.
	Vt []float32

	Width, Height int
}

// Factorize computes the SVD of a row-major plane of width*height intensities.
func Factorize(plane []float32, width, height int) (Factors, error) {
	if width < 1 || height < 1 {
		return Factors{}, ErrEmptyImage
	}
	u, s, vt, err := svd.New(width, height).Exec(plane)
	if err != nil {
		return Factors{}, err
	}
	return Factors{U: u, S: s, Vt: vt, Width: width, Height: height}, nil
}

// FullRank returns min(Width, Height).
func (f Factors) FullRank() int {
	return min(f.Width, f.Height)
}

// Validate reports whether the buffers are long enough for every rank up to len(S).
func (f Factors) Validate() error {
	fullRank := f.FullRank()
	switch {
	case f.Width < 1 || f.Height < 1:
		return fmt.Errorf("%w: shape %dx%d", ErrFactorLayout, f.Width, f.Height)
	case len(f.S) > fullRank:
		return fmt.Errorf("%w: %d singular values > full rank %d", ErrFactorLayout, len(f.S), fullRank)
	case len(f.U) < f.Height*fullRank:
		return fmt.Errorf("%w: len(U)=%d < %dx%d", ErrFactorLayout, len(f.U), f.Height, fullRank)
	case len(f.Vt) < len(f.S)*f.Width:
		return fmt.Errorf("%w: len(Vt)=%d < %dx%d", ErrFactorLayout, len(f.Vt), len(f.S), f.Width)
	}
	for i := 1; i < len(f.S); i++ {
		if f.S[i-1] < f.S[i] {
			return fmt.Errorf("%w: singular values not descending at %d", ErrFactorLayout, i)
		}
	}
	return nil
}

// Reconstruct returns the rank-k approximation of the channel.
// It panics under the same conditions as ReconstructChannel.
func (f Factors) Reconstruct(rank int) []float32 {
	return ReconstructChannel(f.U, f.S, f.Vt, uint32(f.Width), uint32(f.Height), uint32(rank))
}

// TailEnergy returns the sum of the squared singular values dropped by a
// rank-k truncation, i.e. the squared Frobenius norm of the residual.
func (f Factors) TailEnergy(rank int) float64 {
	if rank >= len(f.S) {
		return 0
	}
	tail := make([]float64, len(f.S)-max(rank, 0))
	for i := range tail {
		tail[i] = float64(f.S[len(f.S)-len(tail)+i])
	}
	return floats.Dot(tail, tail)
}
