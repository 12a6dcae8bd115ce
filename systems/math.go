package systems

// axisStep returns +velocity when target lies above current on an axis,
// -velocity otherwise (including when they are equal).
func axisStep(target, current, velocity float32) float32 {
	if target > current {
		return velocity
	}
	return -velocity
}

// absf returns the absolute value of a float32.
func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// chebyshev returns the largest per-axis gap between two positions.
func chebyshev(dx, dy, dz float32) float32 {
	return max(absf(dx), absf(dy), absf(dz))
}
