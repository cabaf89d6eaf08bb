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

// Package codec builds and runs a systematic Reed-Solomon erasure code
// over a gf.Tables field: k source packets encode into n >= k packets,
// any k of which are sufficient to reconstruct the original k.
package codec

import (
	"log"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/xtaci/vfec/fecstat"
	"github.com/xtaci/vfec/gf"
	"github.com/xtaci/vfec/linalg"
)

// fecMagic seeds the codec descriptor's tag, used by Free to catch
// double-Free and use of a corrupted Params. A debugging aid, not a
// security boundary.
const fecMagic = 0xFECC0DEC

// Params is a constructed codec: the encoding matrix and the parameters
// used to build it. It is immutable after New returns and safe for
// concurrent Encode/Decode calls; each call owns its own scratch buffers.
type Params struct {
	K, N      int
	FieldBits int
	tab       *gf.Tables

	// EncMatrix is the n*k systematic encoding matrix: EncMatrix[0:k*k]
	// is the identity, EncMatrix[k*k:] is the Vandermonde-derived parity
	// block. Any k of its n rows form a non-singular k*k matrix.
	EncMatrix []gf.Element

	magic uint32
	stats *fecstat.Stats
}

// Option configures New.
type Option func(*options)

type options struct {
	fieldBits int
	kernel    gf.Kernel
	stats     *fecstat.Stats
}

// WithFieldBits sets the field width m, 2 <= m <= 16. The default is 16.
func WithFieldBits(m int) Option {
	return func(o *options) { o.fieldBits = m }
}

// WithKernel selects the scalar or SIMD-nibble-table multiply strategy.
// The default is gf.KernelAuto.
func WithKernel(k gf.Kernel) Option {
	return func(o *options) { o.kernel = k }
}

// WithStats attaches a counters sink; nil (the default) disables all
// instrumentation overhead.
func WithStats(s *fecstat.Stats) Option {
	return func(o *options) { o.stats = s }
}

// New builds a codec for k source packets encoded into n packets total,
// n >= k. The parity rows are V_bot * V_top^-1 for the n*k Vandermonde
// matrix V, so the top k rows of the full encoding matrix reduce to the
// identity and the code is systematic.
func New(k, n int, opts ...Option) (*Params, error) {
	o := options{fieldBits: 16, kernel: gf.KernelAuto}
	for _, opt := range opts {
		opt(&o)
	}

	if o.fieldBits < 2 || o.fieldBits > 16 {
		return nil, errors.Wrapf(ErrInvalidParams, "field bits %d out of [2,16]", o.fieldBits)
	}
	if k <= 0 || n < k {
		return nil, errors.Wrapf(ErrInvalidParams, "need 0 < k <= n, got k=%d n=%d", k, n)
	}
	maxSyms := 1 << uint(o.fieldBits)
	if n > maxSyms {
		return nil, errors.Wrapf(ErrInvalidParams, "n=%d exceeds 2^m=%d for m=%d", n, maxSyms, o.fieldBits)
	}

	tab, err := gf.Init(o.fieldBits, o.kernel)
	if err != nil {
		return nil, errors.Wrap(err, "codec: field init")
	}

	start := time.Now()

	// Seed Vandermonde matrix: row 0 is e_0 and row r >= 1 holds
	// alpha^((r-1)*col). The shift by one keeps row 0 in the systematic
	// block once the top k*k submatrix is inverted away.
	tmp := make([]gf.Element, n*k)
	tmp[0] = 1
	for row := 1; row < n; row++ {
		for col := 0; col < k; col++ {
			tmp[row*k+col] = tab.Exp[tab.ModExp(uint32(row-1)*uint32(col))]
		}
	}

	linalg.InvertVandermonde(tab, tmp[0:k*k], k)

	enc := make([]gf.Element, n*k)
	for i := 0; i < k; i++ {
		enc[i*k+i] = 1
	}
	linalg.MatMul(tab, tmp[k*k:], tmp[0:k*k], enc[k*k:], n-k, k, k)

	p := &Params{
		K:         k,
		N:         n,
		FieldBits: o.fieldBits,
		tab:       tab,
		EncMatrix: enc,
		stats:     o.stats,
	}
	p.magic = p.computeMagic()

	o.stats.AddMatrixBuildNanos(uint64(time.Since(start).Nanoseconds()))

	return p, nil
}

// computeMagic tags the descriptor with fecMagic ^ k ^ n ^ a
// pointer-derived salt, so Free can detect double-free and gross memory
// corruption.
func (p *Params) computeMagic() uint32 {
	var salt uint32
	if len(p.EncMatrix) > 0 {
		salt = uint32(uintptr(unsafe.Pointer(&p.EncMatrix[0])))
	}
	return fecMagic ^ uint32(p.K) ^ uint32(p.N) ^ salt
}

// Free validates the codec descriptor's magic tag, then clears the tag
// and releases the encoding matrix. On a bad tag it logs, counts the
// corruption, and returns ErrCorrupted without touching the matrix. The
// GC reclaims the backing memory once Params becomes unreachable whether
// or not Free is called; Free exists so double-Free and handle
// corruption surface as errors instead of passing silently.
func (p *Params) Free() error {
	if p.magic != p.computeMagic() {
		p.stats.AddCorruption()
		log.Printf("codec: bad parameters in Free (k=%d n=%d)", p.K, p.N)
		return errors.Wrap(ErrCorrupted, "codec: Free called on a corrupted or already-freed Params")
	}
	p.magic = 0
	p.EncMatrix = nil
	return nil
}
