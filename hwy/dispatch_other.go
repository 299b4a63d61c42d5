//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64/arm64 architectures report scalar mode. The lane loops in
	// hwy/contrib still run; they just get no wide registers.
	setScalarMode()
}
