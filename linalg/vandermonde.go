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

package linalg

import "github.com/xtaci/vfec/gf"

// InvertVandermonde inverts, in place, a k*k Vandermonde matrix whose
// column 1 (src[i*k+1]) holds k distinct parameters p_0..p_{k-1}. It
// runs in O(k^2) field operations via Lagrange interpolation: build the
// coefficients of P(x) = prod(x - p_i), then synthetically divide out
// (x - p_row) per row. k==1 is the degenerate identity case and returns
// immediately without touching src.
func InvertVandermonde(tab *gf.Tables, src []gf.Element, k int) {
	if k == 1 {
		return
	}

	p := make([]gf.Element, k)
	c := make([]gf.Element, k)
	b := make([]gf.Element, k)

	for i, j := 0, 1; i < k; i, j = i+1, j+k {
		p[i] = src[j]
	}

	// c holds the coefficients of P(x) = Prod_{i=0}^{k-1} (x - p_i);
	// subtraction is addition in characteristic 2.
	c[k-1] = p[0]
	for i := 1; i < k; i++ {
		pi := p[i]
		for j := k - 1 - i; j < k-1; j++ {
			c[j] ^= tab.Mul(pi, c[j+1])
		}
		c[k-1] ^= pi
	}

	for row := 0; row < k; row++ {
		xx := p[row]
		var t gf.Element = 1
		b[k-1] = 1
		for i := k - 2; i >= 0; i-- {
			b[i] = c[i+1] ^ tab.Mul(xx, b[i+1])
			t = tab.Mul(xx, t) ^ b[i]
		}
		invT := tab.Inverse[t]
		for col := 0; col < k; col++ {
			src[col*k+row] = tab.Mul(invT, b[col])
		}
	}
}
