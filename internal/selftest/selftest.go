// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package selftest holds independent reference implementations of the
// field arithmetic: a bitwise-long-division multiplier and brute-force
// matmul/addmul checkers. They exist only to cross-check the production
// tables and kernels from _test.go files; nothing in gf, linalg, or
// codec imports this package.
package selftest

// primitivePoly mirrors gf's unexported pp table; duplicated here (rather
// than exported from gf) because a reference implementation that shared
// the data it's meant to check would not catch a shared mistake.
var primitivePoly = [17]uint32{
	0x00000, 0x00000,
	0x00007, 0x0000b, 0x00013, 0x00025,
	0x00043, 0x00089, 0x0011d, 0x00211,
	0x00409, 0x00805, 0x01053, 0x0201b,
	0x04443, 0x08003, 0x1100b,
}

// RefMul multiplies x and y in GF(2^m) via bitwise polynomial long
// division modulo the primitive polynomial, one bit of y at a time.
func RefMul(m int, x, y uint32) uint32 {
	a, b := x, y
	var r uint32
	for i := 0; i < m; i++ {
		if b&1 != 0 {
			r ^= a
		}
		a <<= 1
		if a&(1<<uint(m)) != 0 {
			a ^= primitivePoly[m]
		}
		b >>= 1
	}
	return r
}

// CheckMatMul recomputes C = A*B (A: n*k, B: k*m) using RefMul and
// reports whether it matches the candidate result.
func CheckMatMul(mulBits int, a, b, c []uint16, n, k, m int) bool {
	for row := 0; row < n; row++ {
		for col := 0; col < m; col++ {
			var acc uint32
			for i := 0; i < k; i++ {
				acc ^= RefMul(mulBits, uint32(a[row*k+i]), uint32(b[i*m+col]))
			}
			if uint16(acc) != c[row*m+col] {
				return false
			}
		}
	}
	return true
}

// CheckAddMul verifies dst[i] == before[i] ^ RefMul(c, src[i]) for all i.
func CheckAddMul(mulBits int, before, src, dst []uint16, c uint16) bool {
	for i := range dst {
		want := before[i] ^ uint16(RefMul(mulBits, uint32(c), uint32(src[i])))
		if dst[i] != want {
			return false
		}
	}
	return true
}
