package score

// Dilation factor bounds. The factor scales every entity's dt, so the
// floor keeps a motionless world crawling instead of frozen.
const (
	DilationFloor = 0.01
	DilationPeak  = 5.0
)

// DilationFactor maps aggregate motion (ship speed + shooting bonus +
// turn contribution, in speed units) to the time-dilation factor for
// the next tick. The curve rises through 1.0 at motion 1000, peaks at
// 5.0 at motion 2000, then falls back to 0.1 by 10000 and stays there.
// The rise-then-fall shape is intentional: the reward sits in a sweet
// spot, and overdriving past it slows the world again.
func DilationFactor(motion float64) float64 {
	var f float64
	switch {
	case motion < 0:
		f = DilationFloor
	case motion < 1000:
		f = DilationFloor + motion/1000*(1.0-DilationFloor)
	case motion < 2000:
		f = 1.0 + (motion-1000)/1000*(DilationPeak-1.0)
	case motion <= 10000:
		f = DilationPeak + (motion-2000)/8000*(0.1-DilationPeak)
	default:
		f = 0.1
	}
	if f < DilationFloor {
		f = DilationFloor
	}
	return f
}

// TurnTerm converts a turning rate in degrees per second into its
// aggregate-motion contribution.
func TurnTerm(degPerSec float64) float64 {
	if degPerSec < 0 {
		degPerSec = -degPerSec
	}
	return 0.01 * degPerSec
}
