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
	"github.com/xtaci/vfec/gf"
	"github.com/xtaci/vfec/linalg"
)

// shuffle permutes pkt and index in place so that, on return, every row
// i with index[i] < k holds the source packet for position i: it walks
// the array swapping each misplaced systematic packet into its home row
// until everything settles. A row claiming a systematic position that is
// already correctly occupied means the caller supplied the same index
// twice (ErrDuplicateIndex).
func shuffle(pkt [][]byte, index []int, k int) error {
	for i := 0; i < k; {
		if index[i] >= k || index[i] == i {
			i++
			continue
		}
		c := index[i]
		if index[c] == c {
			return errors.Wrapf(ErrDuplicateIndex, "index %d appears twice", c)
		}
		pkt[i], pkt[c] = pkt[c], pkt[i]
		index[i], index[c] = index[c], index[i]
	}
	return nil
}

// buildDecodeMatrix assembles the k*k matrix whose row i is the identity
// row i when index[i] < k, or EncMatrix's row index[i] otherwise, then
// inverts it. Built fresh per Decode call since it depends on which k
// packets arrived.
func (p *Params) buildDecodeMatrix(index []int) ([]gf.Element, error) {
	k := p.K
	m := make([]gf.Element, k*k)
	for i := 0; i < k; i++ {
		if index[i] < k {
			m[i*k+i] = 1
		} else {
			copy(m[i*k:i*k+k], p.EncMatrix[index[i]*k:index[i]*k+k])
		}
	}
	if err := linalg.InvertMatObserved(p.tab, m, k, p.stats); err != nil {
		return nil, errors.Wrap(ErrSingular, err.Error())
	}
	return m, nil
}

// Decode reconstructs every missing source packet in place. pkt and
// index must each have length p.K; index[i] names the systematic or
// parity slot pkt[i] actually holds, and all packets must share one
// byte length. On return, pkt[i] for every i holds source packet i's
// bytes, in order: Decode shuffles both slices in place, so callers must
// not assume pkt retains its original row order.
func (p *Params) Decode(pkt [][]byte, index []int) error {
	k := p.K
	if len(pkt) != k || len(index) != k {
		return errors.Wrapf(ErrInvalidParams, "decode needs exactly %d packets and indices", k)
	}
	for i := 0; i < k; i++ {
		if index[i] < 0 || index[i] >= p.N {
			return errors.Wrapf(ErrInvalidParams, "decode index %d out of [0,%d)", index[i], p.N)
		}
		if pkt[i] == nil {
			return errors.Wrapf(ErrInvalidParams, "decode: pkt[%d] is nil", i)
		}
		if len(pkt[i]) != len(pkt[0]) {
			return errors.Wrap(ErrInvalidParams, "decode: packet lengths disagree")
		}
	}
	if p.FieldBits > 8 && len(pkt[0])%2 != 0 {
		return errors.Wrap(ErrInvalidParams, "decode: packet length must be even for field bits > 8")
	}

	if err := shuffle(pkt, index, k); err != nil {
		return err
	}

	missing := make([]int, 0, k)
	for i := 0; i < k; i++ {
		if index[i] >= k {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		p.stats.AddDecode(0)
		return nil
	}

	decMat, err := p.buildDecodeMatrix(index)
	if err != nil {
		return err
	}

	sz := elementCount(pkt[0], p.FieldBits)

	// Recovered rows are computed into temp buffers and copied back only
	// after every row has been computed, so a later row's linear
	// combination never reads an already-overwritten parity packet.
	tmp := acquireElements(sz)
	defer releaseElements(tmp)

	recovered := make([][]gf.Element, len(missing))
	for idx, row := range missing {
		acc := acquireElements(sz)
		rowCoeffs := decMat[row*k : row*k+k]
		for col := 0; col < k; col++ {
			c := rowCoeffs[col]
			if c == 0 {
				continue
			}
			loadElements(pkt[col], p.FieldBits, sz, tmp)
			linalg.AddMul(p.tab, acc, tmp, c)
		}
		recovered[idx] = acc
	}

	for idx, row := range missing {
		storeElements(pkt[row], p.FieldBits, recovered[idx])
		releaseElements(recovered[idx])
	}

	p.stats.AddDecode(len(missing))
	return nil
}
