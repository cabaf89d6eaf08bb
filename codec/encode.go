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
	"github.com/pkg/errors"
	"github.com/xtaci/vfec/linalg"
)

// Encode produces the packet at the given index, 0 <= index < p.N, from
// the k source packets in src. For index < k this is a systematic copy
// of src[index]; for index >= k it is the linear combination of all k
// source packets weighted by EncMatrix's row `index`. For field widths
// above 8 bits every packet's byte length must be even: two bytes pack
// little-endian into one 16-bit field element, so the element count (half
// the byte count) drives every loop here.
func (p *Params) Encode(src [][]byte, index int, out []byte) error {
	if index < 0 || index >= p.N {
		return errors.Wrapf(ErrInvalidParams, "encode index %d out of [0,%d)", index, p.N)
	}
	if len(src) != p.K {
		return errors.Wrapf(ErrInvalidParams, "encode needs exactly %d source packets, got %d", p.K, len(src))
	}
	if p.FieldBits > 8 && len(out)%2 != 0 {
		return errors.Wrap(ErrInvalidParams, "encode: packet length must be even for field bits > 8")
	}

	if index < p.K {
		s := src[index]
		if s == nil {
			return errors.Wrapf(ErrInvalidParams, "encode: src[%d] is nil", index)
		}
		if len(s) != len(out) {
			return errors.Wrapf(ErrInvalidParams, "encode: out length %d != src[%d] length %d", len(out), index, len(s))
		}
		copy(out, s)
		p.stats.AddEncode()
		return nil
	}

	sz := elementCount(out, p.FieldBits)
	for i, s := range src {
		if s == nil {
			return errors.Wrapf(ErrInvalidParams, "encode: src[%d] is nil", i)
		}
		if elementCount(s, p.FieldBits) != sz {
			return errors.Wrapf(ErrInvalidParams, "encode: src[%d] has %d elements, out has %d", i, elementCount(s, p.FieldBits), sz)
		}
	}

	acc := acquireElements(sz)
	defer releaseElements(acc)
	tmp := acquireElements(sz)
	defer releaseElements(tmp)

	row := p.EncMatrix[index*p.K : index*p.K+p.K]
	for i := 0; i < p.K; i++ {
		c := row[i]
		if c == 0 {
			continue
		}
		loadElements(src[i], p.FieldBits, sz, tmp)
		linalg.AddMul(p.tab, acc, tmp, c)
	}
	storeElements(out, p.FieldBits, acc)

	p.stats.AddEncode()
	return nil
}
