package svd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSVD_Exec(t *testing.T) {
	testCases := []struct {
		name   string
		width  int
		height int
		data   []float32
	}{
		{
			name:   "2x2_simple",
			width:  2,
			height: 2,
			data:   []float32{3, 1, 1, 3},
		},
		{
			name:   "3x3_identity",
			width:  3,
			height: 3,
			data:   []float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
		},
		{
			name:   "3x2_rectangular",
			width:  2,
			height: 3,
			data:   []float32{1, 2, 3, 4, 5, 6},
		},
		{
			name:   "2x3_rectangular",
			width:  3,
			height: 2,
			data:   []float32{1, 2, 3, 4, 5, 6},
		},
		{
			name:   "1x4_column",
			width:  1,
			height: 4,
			data:   []float32{10, 20, 30, 40},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, s, vt, err := New(tc.width, tc.height).Exec(tc.data)
			require.NoError(t, err)

			fullRank := min(tc.width, tc.height)
			require.Len(t, s, fullRank)
			require.Len(t, u, tc.height*fullRank)
			require.Len(t, vt, fullRank*tc.width)

			// Reconstruct A = U * Σ * V^T with gonum and compare to the input.
			um := mat.NewDense(tc.height, fullRank, toFloat64(u))
			vtm := mat.NewDense(fullRank, tc.width, toFloat64(vt))
			sigma := mat.NewDiagDense(fullRank, toFloat64(s))
			var us, res mat.Dense
			us.Mul(um, sigma)
			res.Mul(&us, vtm)

			for i := range tc.height {
				for j := range tc.width {
					assert.InDelta(t, float64(tc.data[i*tc.width+j]), res.At(i, j), 1e-4,
						"round-trip error at (%d,%d)", i, j)
				}
			}
		})
	}
}

func TestSVD_Properties(t *testing.T) {
	t.Run("singular_values_descending", func(t *testing.T) {
		data := []float32{4, 2, 1, 3, 5, 6, 7, 8, 9}
		_, s, _, err := New(3, 3).Exec(data)
		require.NoError(t, err)

		for i, v := range s {
			assert.GreaterOrEqual(t, v, float32(0), "s[%d] should be non-negative", i)
		}
		for i := 1; i < len(s); i++ {
			assert.GreaterOrEqual(t, s[i-1], s[i], "s[%d] >= s[%d]", i-1, i)
		}
	})

	t.Run("rank_deficient_matrix", func(t *testing.T) {
		// rows are multiples of [1, 2, 3]
		data := []float32{
			1, 2, 3,
			2, 4, 6,
			3, 6, 9,
		}
		_, s, _, err := New(3, 3).Exec(data)
		require.NoError(t, err)

		assert.Greater(t, s[0], float32(1))
		assert.Less(t, s[1], float32(1e-4))
		assert.Less(t, s[2], float32(1e-4))
	})
}

func TestSVD_InvalidInput(t *testing.T) {
	_, _, _, err := New(3, 2).Exec([]float32{1, 2, 3})
	assert.Error(t, err)

	_, _, _, err = New(0, 2).Exec(nil)
	assert.Error(t, err)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = float64(v[i])
	}
	return out
}
