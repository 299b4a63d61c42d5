//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	// Check for HWY_NO_SIMD environment variable first
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture.
	// We still check the cpu package for consistency.
	switch {
	case cpu.ARM64.HasSVE:
		// SVE width is implementation defined; report the 128-bit minimum
		// the lane loops are tuned for.
		currentLevel = DispatchSVE
		currentWidth = 16
		currentFeatures = []string{"asimd", "sve"}
	case cpu.ARM64.HasASIMD:
		currentLevel = DispatchNEON
		currentWidth = 16 // NEON is 128-bit (16 bytes)
		currentFeatures = []string{"asimd"}
	default:
		// Fallback to scalar (should never happen on ARMv8+)
		setScalarMode()
	}
}
