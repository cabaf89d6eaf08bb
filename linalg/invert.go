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
	"github.com/pkg/errors"
	"github.com/xtaci/vfec/gf"
)

// PivotObserver receives Gauss-Jordan pivot-search instrumentation.
// fecstat.Stats implements it; InvertMatObserved accepts nil.
type PivotObserver interface {
	AddPivotScan()
	AddPivotSwap()
}

// InvertMat inverts a k*k matrix in place using Gauss-Jordan elimination
// with full pivoting, after Numerical Recipes in C. It returns
// ErrSingular if the matrix has no inverse.
func InvertMat(tab *gf.Tables, src []gf.Element, k int) error {
	return InvertMatObserved(tab, src, k, nil)
}

// InvertMatObserved is InvertMat with optional pivot-search/row-swap
// instrumentation reported to obs; nil disables all observation overhead.
func InvertMatObserved(tab *gf.Tables, src []gf.Element, k int, obs PivotObserver) error {
	ipiv := make([]int, k)
	indxr := make([]int, k)
	indxc := make([]int, k)
	idRow := make([]gf.Element, k)

	for col := 0; col < k; col++ {
		irow, icol := -1, -1

		if ipiv[col] != 1 && src[col*k+col] != 0 {
			irow, icol = col, col
		} else {
		searchPivot:
			for row := 0; row < k; row++ {
				if ipiv[row] == 1 {
					continue
				}
				for ix := 0; ix < k; ix++ {
					if obs != nil {
						obs.AddPivotScan()
					}
					if ipiv[ix] == 0 {
						if src[row*k+ix] != 0 {
							irow, icol = row, ix
							break searchPivot
						}
					} else if ipiv[ix] > 1 {
						return errors.Wrap(ErrSingular, "pivot already used twice")
					}
				}
			}
		}
		if icol == -1 {
			return errors.Wrap(ErrSingular, "pivot not found")
		}

		ipiv[icol]++

		if irow != icol {
			if obs != nil {
				obs.AddPivotSwap()
			}
			for ix := 0; ix < k; ix++ {
				src[irow*k+ix], src[icol*k+ix] = src[icol*k+ix], src[irow*k+ix]
			}
		}
		indxr[col] = irow
		indxc[col] = icol

		pivotRow := src[icol*k : icol*k+k]
		c := pivotRow[icol]
		if c == 0 {
			return errors.Wrap(ErrSingular, "zero pivot")
		}
		if c != 1 {
			c = tab.Inverse[c]
			pivotRow[icol] = 1
			for ix := 0; ix < k; ix++ {
				pivotRow[ix] = tab.Mul(c, pivotRow[ix])
			}
		}

		// Eliminate column icol from every other row. When the pivot row
		// already equals the identity row the whole elimination pass is a
		// no-op and is skipped outright.
		idRow[icol] = 1
		if !rowEqual(pivotRow, idRow) {
			for ix := 0; ix < k; ix++ {
				if ix == icol {
					continue
				}
				row := src[ix*k : ix*k+k]
				c := row[icol]
				row[icol] = 0
				AddMul(tab, row, pivotRow, c)
			}
		}
		idRow[icol] = 0
	}

	for col := k - 1; col >= 0; col-- {
		if indxr[col] < 0 || indxr[col] >= k || indxc[col] < 0 || indxc[col] >= k {
			// Out-of-range bookkeeping means a prior singularity that
			// should already have returned above; skip rather than panic.
			continue
		}
		if indxr[col] != indxc[col] {
			for row := 0; row < k; row++ {
				src[row*k+indxr[col]], src[row*k+indxc[col]] = src[row*k+indxc[col]], src[row*k+indxr[col]]
			}
		}
	}
	return nil
}

func rowEqual(a, b []gf.Element) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
