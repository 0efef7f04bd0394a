package rgb

import (
	"image"
	"image/color"
	"math"
)

// ImageToPlanes splits src into R, G and B planes of straight (non-premultiplied)
// 8-bit intensities stored as float32, row-major over src.Bounds().
// Alpha is dropped.
func ImageToPlanes(src image.Image) (r, g, b []float32) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	area := width * height
	r = make([]float32, area)
	g = make([]float32, area)
	b = make([]float32, area)

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			r[idx] = float32(c.R)
			g[idx] = float32(c.G)
			b[idx] = float32(c.B)
			idx++
		}
	}
	return
}

// PixelsToRGBA builds an image from an interleaved RGBA float buffer laid out
// row-major over rect. Components are rounded and clipped to [0, 255].
func PixelsToRGBA(pixels []float32, rect image.Rectangle) *image.RGBA {
	dist := image.NewRGBA(rect)
	width, height := rect.Dx(), rect.Dy()
	idx := 0
	for y := range height {
		for x := range width {
			dist.SetRGBA(rect.Min.X+x, rect.Min.Y+y, color.RGBA{
				R: clip8(pixels[idx]),
				G: clip8(pixels[idx+1]),
				B: clip8(pixels[idx+2]),
				A: clip8(pixels[idx+3]),
			})
			idx += 4
		}
	}
	return dist
}

func clip8(v float32) uint8 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(float64(v)))
}
