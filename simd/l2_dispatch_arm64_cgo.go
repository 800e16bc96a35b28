//go:build arm64 && cgo

package simd

import "golang.org/x/sys/cpu"

func init() {
	if cpu.ARM64.HasASIMD {
		squaredL2Impl = squaredL2NEON
		squaredL2ImplDesc = "NEON"
	} else {
		squaredL2Impl = squaredL2Go
		squaredL2ImplDesc = "Go"
	}
}
