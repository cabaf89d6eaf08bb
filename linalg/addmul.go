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

import (
	"unsafe"

	"github.com/templexxx/xorsimd"
	"github.com/xtaci/vfec/gf"
)

// AddMul computes dst[i] ^= c*src[i] for all i, no-opping when c == 0.
// Callers of AddMul1 must themselves guarantee c != 0.
func AddMul(tab *gf.Tables, dst, src []gf.Element, c gf.Element) {
	if c == 0 {
		return
	}
	AddMul1(tab, dst, src, c)
}

// AddMul1 computes dst[i] ^= c*src[i] for all i. The caller guarantees
// c != 0.
func AddMul1(tab *gf.Tables, dst, src []gf.Element, c gf.Element) {
	if c == 1 {
		// GF addition is XOR, so multiplying by the field's unity is a
		// pure merge: dispatch to the vectorised byte-XOR kernel instead
		// of walking the multiply table, exactly the fast path
		// klauspost/reedsolomon's galMulSliceXor takes for c==1.
		xorsimd.Bytes(bytesOf(dst), bytesOf(dst), bytesOf(src))
		return
	}

	if tab.M > 8 && tab.Kernel() == gf.KernelSIMD {
		tab.AddMulSIMD(dst, src, c)
		return
	}

	mulRow := mulRowFor(tab, c)
	for i := range src {
		dst[i] ^= mulRow(src[i])
	}
}

// mulRowFor returns a multiply closure bound to the constant c, so the
// element loop resolves Log[c] (or the c-th table row) once instead of
// on every element.
func mulRowFor(tab *gf.Tables, c gf.Element) func(gf.Element) gf.Element {
	if tab.M <= 8 {
		row := tab.MulTable[c]
		return func(x gf.Element) gf.Element { return row[x] }
	}
	logc := uint32(tab.Log[c])
	exp := tab.Exp
	logt := tab.Log
	return func(x gf.Element) gf.Element {
		if x == 0 {
			return 0
		}
		return exp[logc+uint32(logt[x])]
	}
}

// bytesOf reinterprets a []gf.Element as its underlying byte storage, so
// the pure-XOR (c==1) path can hand the buffer to xorsimd without an
// element-by-element copy. Safe because gf.Element is a fixed-size
// (uint16) value type and the slice's backing array outlives the call.
func bytesOf(s []gf.Element) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}
