package lowrank

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/yyyoichi/lowrank/internal/rgb"
	"golang.org/x/image/draw"
)

// Batch holds the SVD factors of the R, G and B channels of one image so that
// approximations at many ranks can be rendered without refactorizing.
type Batch struct {
	bounds   image.Rectangle
	channels [3]Factors
}

// NewBatch factorizes each color channel of src.
// The channels are processed concurrently. ctx is checked before and after
// factorization; gonum's factorization itself cannot be interrupted.
func NewBatch(ctx context.Context, src image.Image, opts ...Option) (*Batch, error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.maxDimension > 0 {
		src = downsize(src, c.maxDimension)
	}

	b := &Batch{bounds: src.Bounds()}
	width, height := b.bounds.Dx(), b.bounds.Dy()
	planes := [3][]float32{}
	planes[0], planes[1], planes[2] = rgb.ImageToPlanes(src)

	var (
		wg   sync.WaitGroup
		errs [3]error
	)
	wg.Add(3)
	for ch := range 3 {
		go func(ch int) {
			defer wg.Done()
			b.channels[ch], errs[ch] = Factorize(planes[ch], width, height)
		}(ch)
	}
	wg.Wait()
	for ch, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBatchFromFactors builds a Batch from precomputed R, G and B factors,
// e.g. those returned by a remote SVD service. All channels must share the
// same geometry and pass Factors.Validate.
func NewBatchFromFactors(r, g, b Factors) (*Batch, error) {
	channels := [3]Factors{r, g, b}
	for ch, f := range channels {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		if f.Width != r.Width || f.Height != r.Height {
			return nil, fmt.Errorf("%w: channel %d is %dx%d, want %dx%d",
				ErrFactorLayout, ch, f.Width, f.Height, r.Width, r.Height)
		}
	}
	return &Batch{
		bounds:   image.Rect(0, 0, r.Width, r.Height),
		channels: channels,
	}, nil
}

// Bounds returns the bounds of the factorized image.
func (b *Batch) Bounds() image.Rectangle { return b.bounds }

// Channels returns the R, G and B factors.
func (b *Batch) Channels() [3]Factors { return b.channels }

// FullRank returns the largest rank every channel can be rendered at.
func (b *Batch) FullRank() int {
	rank := b.channels[0].FullRank()
	for _, f := range b.channels {
		rank = min(rank, len(f.S))
	}
	return rank
}

// Pixels returns the interleaved RGBA buffer of the rank-k approximation.
// Values are not clipped; see Render for a displayable image.
func (b *Batch) Pixels(ctx context.Context, rank int) ([]float32, error) {
	if rank < 0 || rank > b.FullRank() {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrRankOutOfRange, rank, b.FullRank())
	}
	var planes [3][]float32
	for ch, f := range b.channels {
		// The kernels cannot be interrupted; a superseded request stops between channels.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		planes[ch] = f.Reconstruct(rank)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := uint32(b.bounds.Dx()), uint32(b.bounds.Dy())
	return Reconstruct(planes[0], planes[1], planes[2], w, h), nil
}

// Render returns the rank-k approximation as an image with components
// clipped to the displayable range.
func (b *Batch) Render(ctx context.Context, rank int) (image.Image, error) {
	pixels, err := b.Pixels(ctx, rank)
	if err != nil {
		return nil, err
	}
	return rgb.PixelsToRGBA(pixels, b.bounds), nil
}

// FrobeniusError returns the Frobenius norm of the difference between the
// image and its rank-k approximation, summed over the three channels.
func (b *Batch) FrobeniusError(rank int) float64 {
	var energy float64
	for _, f := range b.channels {
		energy += f.TailEnergy(rank)
	}
	return math.Sqrt(energy)
}

func downsize(src image.Image, maxDimension int) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDimension && height <= maxDimension {
		return src
	}
	scale := float64(maxDimension) / float64(max(width, height))
	w := max(1, int(math.Floor(float64(width)*scale)))
	h := max(1, int(math.Floor(float64(height)*scale)))

	dist := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dist, dist.Bounds(), src, bounds, draw.Over, nil)
	return dist
}
