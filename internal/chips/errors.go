package chips

import "errors"

var (
	// ErrEmptyWindow is returned when the window selector yields no bars.
	ErrEmptyWindow = errors.New("chips: empty window")

	// ErrInvalidArgument is returned for out-of-range parameters such as a
	// percentile outside (0, 1] or fewer than two price buckets.
	ErrInvalidArgument = errors.New("chips: invalid argument")
)
