package window

import (
	"fortio.org/safecast"

	"github.com/Faultbox/shaderkit/internal/diag"
)

// toInt32Size converts a window size for SDL. Both dimensions must be positive.
func toInt32Size(width, height int) (int32, int32, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, diag.New(diag.ErrInvalidArgument, "invalid window size %dx%d", width, height)
	}
	return toInt32Pair(width, height)
}

func toInt32Pair(a, b int) (int32, int32, error) {
	a32, err := safecast.Conv[int32](a)
	if err != nil {
		return 0, 0, diag.New(diag.ErrInvalidArgument, "%d out of range: %v", a, err)
	}
	b32, err := safecast.Conv[int32](b)
	if err != nil {
		return 0, 0, diag.New(diag.ErrInvalidArgument, "%d out of range: %v", b, err)
	}
	return a32, b32, nil
}
