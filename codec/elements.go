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

package codec

import "github.com/xtaci/vfec/gf"

// elementCount converts a packet's byte length to a field-element count:
// one byte per element for m <= 8, two little-endian bytes per 16-bit
// element otherwise. This is the single place the byte-to-element
// halving happens; Encode and Decode loop over elements, never bytes.
func elementCount(buf []byte, fieldBits int) int {
	if fieldBits <= 8 {
		return len(buf)
	}
	return len(buf) / 2
}

// loadElements decodes a packet's first n field elements from wire bytes.
func loadElements(buf []byte, fieldBits int, n int, out []gf.Element) {
	if fieldBits <= 8 {
		for i := 0; i < n; i++ {
			out[i] = gf.Element(buf[i])
		}
		return
	}
	for i := 0; i < n; i++ {
		out[i] = gf.Element(buf[2*i]) | gf.Element(buf[2*i+1])<<8
	}
}

// storeElements encodes n field elements back to wire bytes in dst.
func storeElements(dst []byte, fieldBits int, e []gf.Element) {
	if fieldBits <= 8 {
		for i, v := range e {
			dst[i] = byte(v)
		}
		return
	}
	for i, v := range e {
		dst[2*i] = byte(v)
		dst[2*i+1] = byte(v >> 8)
	}
}
