package engine

// NativeTickRate is the number of logical simulation steps per second the
// simulation is designed around.
const NativeTickRate = 30

// TickFrame decides whether frame performs a logical simulation step at the
// given display rate. At 60 every odd frame ticks; at 120 one frame in four
// ticks, always at the same phase so ticks stay evenly spaced. Any other
// rate ticks on every frame, which runs the simulation faster than
// NativeTickRate for rates above 30.
func TickFrame(frame uint64, rate int) bool {
	switch rate {
	case 60:
		return frame&1 == 1
	case 120:
		return frame&3 == 1
	default:
		return true
	}
}

// FrameMS returns the base frame duration in milliseconds for a display
// rate, using the NTSC 1000/1001 refresh so 60 maps to 16.683 ms.
func FrameMS(rate int) float64 {
	if rate <= 0 {
		rate = 60
	}
	return 1000.0 * 1.001 / float64(rate)
}

// FramesPerTick returns how many display frames share one logical tick.
func FramesPerTick(rate int) int {
	switch rate {
	case 60:
		return 2
	case 120:
		return 4
	default:
		return 1
	}
}
