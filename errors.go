package lowrank

import "errors"

var (
	ErrEmptyImage     = errors.New("image has no pixels")
	ErrRankOutOfRange = errors.New("rank is out of range")
	ErrFactorLayout   = errors.New("inconsistent factor layout")
)
