package svd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type SVD struct {
	w, h int
}

func New(w, h int) *SVD {
	return &SVD{w: w, h: h}
}

// Exec factorizes a row-major plane of h rows x w columns.
//
// u is h x min(w, h) row-major, s holds min(w, h) singular values in
// descending order and vt is min(w, h) x w row-major.
func (svd *SVD) Exec(data []float32) (u, s, vt []float32, err error) {
	w := svd.w
	h := svd.h
	if w < 1 || h < 1 {
		return nil, nil, nil, fmt.Errorf("invalid shape %dx%d", w, h)
	}
	if len(data) != w*h {
		return nil, nil, nil, fmt.Errorf("plane length %d != %dx%d", len(data), w, h)
	}

	a := mat.NewDense(h, w, nil)
	for i := range h {
		for j := range w {
			a.Set(i, j, float64(data[i*w+j]))
		}
	}
	var result mat.SVD
	if ok := result.Factorize(a, mat.SVDThin); !ok {
		return nil, nil, nil, fmt.Errorf("cannot factorize")
	}

	fullRank := min(w, h)
	values := result.Values(nil)
	s = make([]float32, fullRank)
	for i := range fullRank {
		s[i] = float32(values[i])
	}

	// Thin U is h x fullRank, thin V is w x fullRank.
	var uu, vv mat.Dense
	result.UTo(&uu)
	result.VTo(&vv)

	u = make([]float32, h*fullRank)
	for i := range h {
		for t := range fullRank {
			u[i*fullRank+t] = float32(uu.At(i, t))
		}
	}
	vt = make([]float32, fullRank*w)
	for t := range fullRank {
		for j := range w {
			vt[t*w+j] = float32(vv.At(j, t))
		}
	}
	return u, s, vt, nil
}
