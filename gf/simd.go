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

package gf

import "github.com/klauspost/cpuid/v2"

// simdSupported reports whether the running CPU has a 16-byte
// table-shuffle instruction the nibble kernel maps onto (SSSE3 PSHUFB on
// amd64, NEON TBL on arm64); klauspost/reedsolomon gates its own
// shuffle-based Galois kernels on the same probe.
func simdSupported() bool {
	return cpuid.CPU.Supports(cpuid.SSSE3) || cpuid.CPU.Supports(cpuid.ASIMD)
}

// buildNibbleTables populates, for every scalar c in [0, Size], eight
// 16-entry tables giving the low/high output byte of c*(nibble<<shift)
// for shift in {0, 4, 8, 12}. A 16-bit multiply by the constant c then
// decomposes into four nibble lookups XORed together, one per table
// pair, which is the shape a 16-lane byte shuffle wants.
func (t *Tables) buildNibbleTables() {
	n := t.Size + 1
	t.nibble = make([][8][16]byte, n)
	for c := 0; c < n; c++ {
		var tabs [8][16]byte
		for j := 0; j < 16; j++ {
			v := t.Mul(Element(c), Element(j))
			tabs[0][j] = byte(v)
			tabs[1][j] = byte(v >> 8)

			v = t.Mul(Element(c), Element(j<<4))
			tabs[2][j] = byte(v)
			tabs[3][j] = byte(v >> 8)

			v = t.Mul(Element(c), Element(j<<8))
			tabs[4][j] = byte(v)
			tabs[5][j] = byte(v >> 8)

			v = t.Mul(Element(c), Element(j<<12))
			tabs[6][j] = byte(v)
			tabs[7][j] = byte(v >> 8)
		}
		t.nibble[c] = tabs
	}
}

// MulNibble multiplies c by a single field element through the nibble
// tables: the element is shredded into four 4-bit pieces, each piece
// indexes its own pair of 16-entry tables, and the partial products XOR
// together. Per lane this is exactly the work a PSHUFB/TBL kernel does
// across 16 lanes at once.
func (t *Tables) MulNibble(c, x Element) Element {
	tabs := &t.nibble[c]
	lo := x & 0xf
	hi := (x >> 4) & 0xf
	var v Element
	v ^= Element(tabs[0][lo]) | Element(tabs[1][lo])<<8
	v ^= (Element(tabs[2][hi]) | Element(tabs[3][hi])<<8)
	lo = (x >> 8) & 0xf
	hi = (x >> 12) & 0xf
	v ^= Element(tabs[4][lo]) | Element(tabs[5][lo])<<8
	v ^= Element(tabs[6][hi]) | Element(tabs[7][hi])<<8
	return v
}

// AddMulSIMD computes dst[i] ^= c*src[i] for every element using the
// nibble-table kernel. Elements are walked in 8-element (16-byte) batches
// with a scalar tail; Go has no portable intrinsic for the PSHUFB/TBL
// step, so the batch body does the same per-lane work as the tail, but
// the batch/tail split keeps the loop structure that a hand-written
// assembly body would drop into.
func (t *Tables) AddMulSIMD(dst, src []Element, c Element) {
	if c == 0 {
		return
	}
	n := len(src)
	i := 0
	for ; i+8 <= n; i += 8 {
		for j := 0; j < 8; j++ {
			dst[i+j] ^= t.MulNibble(c, src[i+j])
		}
	}
	for ; i < n; i++ {
		dst[i] ^= t.MulNibble(c, src[i])
	}
}
