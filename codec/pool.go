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

import (
	"sync"

	"github.com/xtaci/vfec/gf"
)

// elementPool recycles the []gf.Element scratch buffers used to hold a
// parity row's running sum during Encode and a reconstructed row's
// accumulator during Decode: allocate only for the rows that actually
// need scratch space, and give the backing array back afterwards instead
// of letting every Encode/Decode call pay a fresh make().
var elementPool = sync.Pool{
	New: func() interface{} {
		return make([]gf.Element, 0, 2048)
	},
}

func acquireElements(n int) []gf.Element {
	buf := elementPool.Get().([]gf.Element)
	if cap(buf) < n {
		buf = make([]gf.Element, n)
	} else {
		buf = buf[:n]
		for i := range buf {
			buf[i] = 0
		}
	}
	return buf
}

func releaseElements(buf []gf.Element) {
	elementPool.Put(buf[:0])
}
