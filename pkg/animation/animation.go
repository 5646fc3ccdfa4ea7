// Package animation provides the linear interpolation helpers and the
// per-frame relaxation used for widget visual state. The host's frame loop
// is the only scheduling authority: all motion is pull-based, advanced by
// the dt passed to a widget's Update, never by background timers.
package animation

import (
	"math"

	"github.com/go-ember/ember/pkg/rendering"
)

// SettleEpsilon is the gap below which a relaxing value counts as settled.
const SettleEpsilon = 0.001

// Approach relaxes current toward target at the given rate over dt seconds
// and reports whether the value has settled. The step is exponential decay
// sampled per frame: current += (target - current) * rate * dt, with the
// step clamped so large dt values cannot overshoot the target.
func Approach(current, target, rate, dt float64) (next float64, settled bool) {
	delta := target - current
	if math.Abs(delta) <= SettleEpsilon {
		return target, true
	}
	step := delta * rate * dt
	if math.Abs(step) > math.Abs(delta) {
		step = delta
	}
	return current + step, false
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two Offset values.
func LerpOffset(a, b rendering.Offset, t float64) rendering.Offset {
	return rendering.Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// LerpColor linearly interpolates between two Color values per channel.
func LerpColor(a, b rendering.Color, t float64) rendering.Color {
	return a.Lerp(b, t)
}
