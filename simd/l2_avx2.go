//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -mavx2 -mfma -O3
#include <immintrin.h>
#include <stddef.h>

static float horizontal_sum_m256(__m256 v) {
	__m128 hi = _mm256_extractf128_ps(v, 1);
	__m128 lo = _mm256_extractf128_ps(v, 0);
	__m128 sum4 = _mm_add_ps(hi, lo);
	sum4 = _mm_hadd_ps(sum4, sum4);
	sum4 = _mm_hadd_ps(sum4, sum4);
	return _mm_cvtss_f32(sum4);
}

static float SquaredL2AVX2(const float* a, const float* b, size_t n) {
	__m256 sum = _mm256_setzero_ps();
	size_t i = 0;
	for (; i + 8 <= n; i += 8) {
		__m256 va = _mm256_loadu_ps(a + i);
		__m256 vb = _mm256_loadu_ps(b + i);
		__m256 d = _mm256_sub_ps(va, vb);
		sum = _mm256_fmadd_ps(d, d, sum);
	}
	float s = horizontal_sum_m256(sum);
	for (; i < n; i++) {
		float d = a[i] - b[i];
		s += d * d;
	}
	return s;
}
*/
import "C"

import "unsafe"

func squaredL2AVX2(a, b []float32) float64 {
	n := len(a)
	if n == 0 {
		return 0
	}
	return float64(C.SquaredL2AVX2(
		(*C.float)(unsafe.Pointer(&a[0])),
		(*C.float)(unsafe.Pointer(&b[0])),
		C.size_t(n),
	))
}
