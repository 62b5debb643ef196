package animation

// Timing describes the frame range and rate of a composition.
type Timing struct {
	StartFrame float64
	EndFrame   float64
	FrameRate  float64
}

// Frames returns the number of frames between start and end.
func (t Timing) Frames() float64 {
	return t.EndFrame - t.StartFrame
}

// Seconds returns the duration in seconds, or 0 without a frame rate.
func (t Timing) Seconds() float64 {
	if t.FrameRate <= 0 {
		return 0
	}
	return t.Frames() / t.FrameRate
}

// FrameAt maps a progress in [0, 1] to a frame. Progress is clamped.
func (t Timing) FrameAt(progress float64) float64 {
	return t.StartFrame + clamp01(progress)*t.Frames()
}

// ProgressAt maps a frame to a progress in [0, 1].
func (t Timing) ProgressAt(frame float64) float64 {
	n := t.Frames()
	if n <= 0 {
		return 0
	}
	return clamp01((frame - t.StartFrame) / n)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
