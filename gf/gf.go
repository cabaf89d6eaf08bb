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

// Package gf builds and exposes GF(2^m) Galois field arithmetic tables,
// 2 <= m <= 16, for use by the Reed-Solomon linear algebra in package
// linalg and the codec in package codec.
package gf

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Element is a field element. It is always stored as a uint16; for m <= 8
// the high byte is simply unused, which avoids threading a second numeric
// type through linalg and codec for the (common) 8-bit field.
type Element = uint16

// pp holds the primitive polynomials used to generate GF(2^m), 2 <= m <= 16,
// taken from Lin & Costello Appendix A; index 0 and 1 are unused
// placeholders. Encoded streams are only interoperable between parties
// that agree on these exact polynomials.
var pp = [17]uint32{
	0x00000, 0x00000,
	0x00007, 0x0000b, 0x00013, 0x00025,
	0x00043, 0x00089, 0x0011d, 0x00211,
	0x00409, 0x00805, 0x01053, 0x0201b,
	0x04443, 0x08003, 0x1100b,
}

// ErrInvalidFieldBits is returned by Init when m is outside [2,16].
var ErrInvalidFieldBits = errors.New("gf: field bits must be in [2,16]")

// Kernel selects the multiply/add-multiply strategy used over the field,
// chosen once at Init time rather than per call.
type Kernel int

const (
	// KernelAuto selects KernelSIMD when m > 8 and the CPU is detected to
	// support the nibble-shuffle instructions, KernelScalar otherwise.
	KernelAuto Kernel = iota
	KernelScalar
	KernelSIMD
)

func (k Kernel) String() string {
	switch k {
	case KernelScalar:
		return "scalar"
	case KernelSIMD:
		return "simd"
	default:
		return "auto"
	}
}

// Tables is the process-wide set of lookup tables for one field width m.
// Once built it is immutable and safe for unsynchronized concurrent reads.
type Tables struct {
	M    int // field bit-width
	Size int // GF_SIZE = 2^M - 1

	// Exp is doubled: Exp[i] == Exp[i+Size], so Exp[Log[x]+Log[y]] needs
	// no modular reduction.
	Exp     []Element // length 2*Size
	Log     []Element // length Size+1; Log[0] is a sentinel, never consulted
	Inverse []Element // length Size+1; Inverse[0] is a sentinel

	// MulTable is the full q*q product table, populated only for M <= 8.
	MulTable [][]Element

	// nibble holds the per-constant shuffle lookup tables, built only
	// when Kernel == KernelSIMD and M > 8.
	nibble [][8][16]byte

	kernel Kernel
}

type cacheKey struct {
	m      int
	kernel Kernel
}

var (
	cacheMu sync.Mutex
	cache   = map[cacheKey]*Tables{}
)

// Init builds (or returns the cached, previously built) field tables for
// GF(2^m) under the requested kernel strategy. It is idempotent per
// (m, kernel) pair and safe for concurrent callers: the first caller for
// a given pair builds the tables under cacheMu, and every subsequent
// caller observes the fully constructed result.
func Init(m int, kernel Kernel) (*Tables, error) {
	if m < 2 || m > 16 {
		return nil, ErrInvalidFieldBits
	}

	resolved := kernel
	if resolved == KernelAuto {
		if m > 8 && simdSupported() {
			resolved = KernelSIMD
		} else {
			resolved = KernelScalar
		}
	}
	if resolved == KernelSIMD && m <= 8 {
		return nil, errors.Wrap(ErrInvalidFieldBits, "gf: SIMD kernel requires m > 8")
	}

	key := cacheKey{m: m, kernel: resolved}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if t, ok := cache[key]; ok {
		return t, nil
	}

	t := &Tables{M: m, Size: (1 << uint(m)) - 1, kernel: resolved}
	t.generate()
	if m <= 8 {
		t.buildMulTable()
	} else if resolved == KernelSIMD {
		t.buildNibbleTables()
	}
	cache[key] = t
	return t, nil
}

// generate builds Exp/Log/Inverse by repeated multiplication of the
// primitive element: each step is a left shift, folded back through the
// primitive polynomial whenever the shift carries out of the field.
func (t *Tables) generate() {
	m := t.M
	size := t.Size
	Pp := pp[m]

	t.Exp = make([]Element, 2*size)
	t.Log = make([]Element, size+1)
	t.Inverse = make([]Element, size+1)

	var mask Element = 1
	t.Exp[m] = 0 // completed at the end of the first loop
	for i := 0; i < m; i++ {
		t.Exp[i] = mask
		t.Log[t.Exp[i]] = Element(i)
		if Pp&(1<<uint(i)) != 0 {
			t.Exp[m] ^= mask
		}
		mask <<= 1
	}
	t.Log[t.Exp[m]] = Element(m)

	mask = 1 << uint(m-1)
	for i := m + 1; i < size; i++ {
		if t.Exp[i-1] >= mask {
			t.Exp[i] = t.Exp[m] ^ ((t.Exp[i-1] ^ mask) << 1)
		} else {
			t.Exp[i] = t.Exp[i-1] << 1
		}
		t.Log[t.Exp[i]] = Element(i)
	}
	t.Log[0] = Element(size) // sentinel, never consulted

	for i := 0; i < size; i++ {
		t.Exp[i+size] = t.Exp[i]
	}

	t.Inverse[0] = 0
	t.Inverse[1] = 1
	for i := 2; i <= size; i++ {
		t.Inverse[i] = t.Exp[size-int(t.Log[i])]
	}
}

func (t *Tables) buildMulTable() {
	n := t.Size + 1
	t.MulTable = make([][]Element, n)
	for i := 0; i < n; i++ {
		t.MulTable[i] = make([]Element, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == 0 || j == 0 {
				continue
			}
			t.MulTable[i][j] = t.Exp[t.ModExp(uint32(t.Log[i])+uint32(t.Log[j]))]
		}
	}
}

// ModExp computes x % Size without a divide: Size is a Mersenne number
// (2^m - 1) so subtract-and-fold converges in a couple of steps. Used
// when seeding the Vandermonde matrix in codec.New, where the raw
// exponent row*col may exceed Size.
func (t *Tables) ModExp(x uint32) Element {
	size := uint32(t.Size)
	for x >= size {
		x -= size
		x = (x >> uint(t.M)) + (x & size)
	}
	return Element(x)
}

// Mul multiplies two field elements: a direct table lookup for m <= 8,
// exp/log arithmetic otherwise.
func (t *Tables) Mul(x, y Element) Element {
	if t.M <= 8 {
		return t.MulTable[x][y]
	}
	if x == 0 || y == 0 {
		return 0
	}
	return t.Exp[uint32(t.Log[x])+uint32(t.Log[y])]
}

// Kernel reports the multiply/add-multiply strategy these tables were
// built for.
func (t *Tables) Kernel() Kernel { return t.kernel }

func (t *Tables) String() string {
	return fmt.Sprintf("gf.Tables{M:%d,Size:%d,Kernel:%s}", t.M, t.Size, t.kernel)
}
