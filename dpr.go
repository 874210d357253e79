package sgview

import (
	"math"
	"sync/atomic"
)

// platformDPR holds the platform device pixel ratio as float64 bits.
var platformDPR atomic.Uint64

func init() {
	platformDPR.Store(math.Float64bits(1))
}

// PlatformDevicePixelRatio returns the device pixel ratio used by drawables
// that are not attached to a window. The default is 1.
func PlatformDevicePixelRatio() float64 {
	return math.Float64frombits(platformDPR.Load())
}

// SetPlatformDevicePixelRatio sets the fallback device pixel ratio.
// Non-positive and non-finite values are ignored.
func SetPlatformDevicePixelRatio(r float64) {
	if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return
	}
	platformDPR.Store(math.Float64bits(r))
}
