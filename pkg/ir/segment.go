package ir

// Segment splits a pulse sequence into frames. A frame ends with the first
// pulse whose space is at least ThresholdFrameGap; that pulse stays in the
// frame it terminates. Pulses after the last gap form the final frame.
func Segment(pulses []Pulse) ([]Frame, error) {
	if len(pulses) == 0 {
		return nil, ErrInputIsEmpty
	}

	var frames []Frame
	start := 0
	for i, p := range pulses {
		if p.Space >= ThresholdFrameGap {
			frames = append(frames, Frame(pulses[start:i+1]).Clone())
			start = i + 1
		}
	}
	if start < len(pulses) {
		frames = append(frames, Frame(pulses[start:]).Clone())
	}
	return frames, nil
}
