package lowrank_test

import (
	"fmt"

	"github.com/yyyoichi/lowrank"
)

func ExampleReconstructChannel() {
	// A 2x1 image whose red channel has a single singular value.
	u := []float32{1, 1}
	s := []float32{2}
	vt := []float32{3, 4}

	r := lowrank.ReconstructChannel(u, s, vt, 2, 1, 1)
	zero := make([]float32, 2)
	fmt.Println(r)
	fmt.Println(lowrank.Reconstruct(r, zero, zero, 2, 1))
	// Output:
	// [6 8]
	// [6 0 0 255 8 0 0 255]
}
