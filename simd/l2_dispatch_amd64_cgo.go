//go:build amd64 && cgo

package simd

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX2 && cpu.X86.HasFMA {
		squaredL2Impl = squaredL2AVX2
		squaredL2ImplDesc = "AVX2"
	} else if cpu.X86.HasSSE41 {
		squaredL2Impl = squaredL2SSE4
		squaredL2ImplDesc = "SSE4"
	} else {
		squaredL2Impl = squaredL2Go
		squaredL2ImplDesc = "Go"
	}
}
