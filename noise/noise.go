// Package noise provides the deterministic lattice value noise that drives
// the organic motion of the particle field.
package noise

import "math"

// Noise4 returns 4D value noise in [0, 1].
//
// The 16 integer corners of the hypercube enclosing (x, y, z, w) are hashed
// to pseudo-random values which are blended quadrilinearly with smoothstep
// weights, so the result is continuous across cell boundaries. Noise4 keeps
// no state and does not allocate.
func Noise4(x, y, z, w float64) float64 {
	fx, fy, fz, fw := math.Floor(x), math.Floor(y), math.Floor(z), math.Floor(w)
	ix, iy, iz, iw := int64(fx), int64(fy), int64(fz), int64(fw)
	tx, ty, tz, tw := fade(x-fx), fade(y-fy), fade(z-fz), fade(w-fw)

	var sum float64
	for c := 0; c < 16; c++ {
		dx, dy, dz, dw := int64(c&1), int64(c>>1&1), int64(c>>2&1), int64(c>>3&1)
		weight := pick(tx, dx) * pick(ty, dy) * pick(tz, dz) * pick(tw, dw)
		if weight == 0 {
			continue
		}
		sum += weight * lattice(ix+dx, iy+dy, iz+dz, iw+dw)
	}
	if sum > 1 {
		return 1
	}
	return sum
}

// Fractal4 sums octaves of Noise4 at doubling frequency and halving
// amplitude, normalized back to [0, 1].
func Fractal4(x, y, z, w float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var total, norm float64
	amp, freq := 1.0, 1.0
	for o := 0; o < octaves; o++ {
		// offset each octave so their lattices do not line up
		off := float64(o) * 17.31
		total += amp * Noise4(x*freq+off, y*freq+off, z*freq+off, w*freq+off)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return total / norm
}

// fade is the smoothstep curve 3t^2 - 2t^3.
func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

// pick returns the interpolation weight for the low (0) or high (1) corner.
func pick(t float64, bit int64) float64 {
	if bit == 0 {
		return 1 - t
	}
	return t
}

// lattice hashes integer coordinates to a value in [0, 1).
func lattice(x, y, z, w int64) float64 {
	h := uint32(x)*0x8da6b343 ^ uint32(y)*0xd8163841 ^ uint32(z)*0xcb1ab31f ^ uint32(w)*0x165667b1
	h ^= uint32(uint64(x)>>32) ^ uint32(uint64(w)>>32)*0x27d4eb2d
	h = (h ^ (h >> 16)) * 0x85ebca6b
	h = (h ^ (h >> 13)) * 0xc2b2ae35
	h ^= h >> 16
	return float64(h) / 4294967296.0
}
