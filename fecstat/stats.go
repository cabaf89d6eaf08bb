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

// Package fecstat holds opt-in atomic counters for codec and linalg
// operations: plain uint64 fields updated with atomic.AddUint64, plus a
// Header/ToSlice pair for CSV logging.
package fecstat

import (
	"fmt"
	"sync/atomic"
)

// Stats accumulates counters across the lifetime of one or more
// codec.Params. A nil *Stats is valid everywhere it's accepted: every
// method on it is a no-op, so callers never need a nil check before
// passing codec.WithStats(nil).
type Stats struct {
	Encodes          uint64 // Encode calls
	Decodes          uint64 // Decode calls
	PacketsRecovered uint64 // missing rows reconstructed across all Decode calls
	PivotScans       uint64 // entries scanned while searching for a Gauss-Jordan pivot
	PivotSwaps       uint64 // row swaps performed during Gauss-Jordan elimination
	MatrixBuildNanos uint64 // time spent in codec.New's encoding-matrix synthesis
	Corruptions      uint64 // Free calls that observed a bad magic tag
}

func (s *Stats) AddEncode() {
	if s == nil {
		return
	}
	atomic.AddUint64(&s.Encodes, 1)
}

func (s *Stats) AddDecode(recovered int) {
	if s == nil {
		return
	}
	atomic.AddUint64(&s.Decodes, 1)
	if recovered > 0 {
		atomic.AddUint64(&s.PacketsRecovered, uint64(recovered))
	}
}

func (s *Stats) AddPivotScan() {
	if s == nil {
		return
	}
	atomic.AddUint64(&s.PivotScans, 1)
}

func (s *Stats) AddPivotSwap() {
	if s == nil {
		return
	}
	atomic.AddUint64(&s.PivotSwaps, 1)
}

func (s *Stats) AddMatrixBuildNanos(d uint64) {
	if s == nil {
		return
	}
	atomic.AddUint64(&s.MatrixBuildNanos, d)
}

func (s *Stats) AddCorruption() {
	if s == nil {
		return
	}
	atomic.AddUint64(&s.Corruptions, 1)
}

// Header returns the CSV column names, in the same order ToSlice emits
// values.
func (s *Stats) Header() []string {
	return []string{
		"Encodes", "Decodes", "PacketsRecovered",
		"PivotScans", "PivotSwaps", "MatrixBuildNanos", "Corruptions",
	}
}

// ToSlice snapshots every counter, formatted for CSV, in Header order.
func (s *Stats) ToSlice() []string {
	snap := s.Copy()
	return []string{
		fmt.Sprint(snap.Encodes),
		fmt.Sprint(snap.Decodes),
		fmt.Sprint(snap.PacketsRecovered),
		fmt.Sprint(snap.PivotScans),
		fmt.Sprint(snap.PivotSwaps),
		fmt.Sprint(snap.MatrixBuildNanos),
		fmt.Sprint(snap.Corruptions),
	}
}

// Copy returns an atomic-load snapshot of every counter. Valid on a nil
// receiver, which snapshots as all zeros.
func (s *Stats) Copy() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		Encodes:          atomic.LoadUint64(&s.Encodes),
		Decodes:          atomic.LoadUint64(&s.Decodes),
		PacketsRecovered: atomic.LoadUint64(&s.PacketsRecovered),
		PivotScans:       atomic.LoadUint64(&s.PivotScans),
		PivotSwaps:       atomic.LoadUint64(&s.PivotSwaps),
		MatrixBuildNanos: atomic.LoadUint64(&s.MatrixBuildNanos),
		Corruptions:      atomic.LoadUint64(&s.Corruptions),
	}
}
