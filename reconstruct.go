package lowrank

import "fmt"

// MaxIntensity is the alpha value written for every pixel by Reconstruct.
// It is an 8-bit intensity expressed as a float, not normalized to [0,1].
const MaxIntensity float32 = 255.0

// ReconstructChannel multiplies the truncated SVD factors of one color channel
// back into a dense row-major plane of width*height intensities.
//
// Layout:
//   - u holds height rows of min(width, height) columns.
//   - s holds the singular values in descending order.
//   - vt holds rows of width columns.
//
// Only the first rank columns of u, rank values of s and rank rows of vt are read.
// The caller guarantees rank <= min(width, height) and long enough inputs.
// A rank above the full rank or len(s) panics before anything is allocated;
// short u or vt panic with an index out of range.
func ReconstructChannel(u, s, vt []float32, width, height, rank uint32) []float32 {
	var (
		m        = int(height)
		n        = int(width)
		k        = int(rank)
		fullRank = min(m, n)
	)
	if k > fullRank {
		panic(fmt.Sprintf("lowrank: rank %d exceeds full rank %d", k, fullRank))
	}
	s = s[:k]

	result := make([]float32, m*n)
	if k == 0 {
		return result
	}

	// us[t] = U[i][t] * S[t] for the current row.
	us := make([]float64, k)
	for i := range m {
		uRow := u[i*fullRank : i*fullRank+k]
		for t := range k {
			us[t] = float64(uRow[t]) * float64(s[t])
		}
		out := result[i*n : (i+1)*n : (i+1)*n]
		for j := range n {
			sum := 0.0
			for t := range k {
				sum += us[t] * float64(vt[t*n+j])
			}
			out[j] = float32(sum)
		}
	}
	return result
}

// Reconstruct interleaves three channel planes into an RGBA buffer of
// width*height*4 floats with alpha fixed at MaxIntensity.
// Planes shorter than width*height panic.
func Reconstruct(r, g, b []float32, width, height uint32) []float32 {
	total := int(width) * int(height)
	r, g, b = r[:total], g[:total], b[:total]

	pixels := make([]float32, total*4)
	for i := range total {
		idx := i * 4
		pixels[idx] = r[i]
		pixels[idx+1] = g[i]
		pixels[idx+2] = b[i]
		pixels[idx+3] = MaxIntensity
	}
	return pixels
}
