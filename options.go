package lowrank

import "fmt"

type Option func(*config) error

type config struct {
	maxDimension int
}

// WithMaxDimension downsizes the source image before factorization so that
// its longer side is at most n pixels. The aspect ratio is kept and images
// already within the limit are left untouched.
//
// Factorization cost grows with the cube of the image side, so interactive
// viewers should keep n in the hundreds.
func WithMaxDimension(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("max dimension must be positive: %d", n)
		}
		c.maxDimension = n
		return nil
	}
}

func newConfig(opts ...Option) (config, error) {
	var c config
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return c, err
		}
	}
	return c, nil
}
