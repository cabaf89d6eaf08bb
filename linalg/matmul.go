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

// Package linalg implements the linear algebra used to build and run a
// Reed-Solomon systematic code over a gf.Tables field: matrix multiply,
// addmul, Gauss-Jordan inversion and the fast Vandermonde inversion.
package linalg

import (
	"runtime"
	"sync"

	"github.com/xtaci/vfec/gf"
)

// parallelRowThreshold is the n*k*m work size above which MatMul fans rows
// out across goroutines. Below it, goroutine setup costs more than the
// serial loop it would replace.
const parallelRowThreshold = 4096

// MatMul computes C = A*B where A is n*k, B is k*m, C is n*m, all
// row-major over tab's field. Output rows are independent, so above
// parallelRowThreshold they are fanned out across a worker pool sized to
// GOMAXPROCS; each worker writes disjoint rows of C and the only
// synchronization is the final join.
func MatMul(tab *gf.Tables, a, b, c []gf.Element, n, k, m int) {
	rowWork := func(row int) {
		pa := a[row*k : row*k+k]
		for col := 0; col < m; col++ {
			var acc gf.Element
			for i := 0; i < k; i++ {
				acc ^= tab.Mul(pa[i], b[i*m+col])
			}
			c[row*m+col] = acc
		}
	}

	if n*k*m < parallelRowThreshold || n == 1 {
		for row := 0; row < n; row++ {
			rowWork(row)
		}
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	rows := make(chan int, n)
	for row := 0; row < n; row++ {
		rows <- row
	}
	close(rows)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for row := range rows {
				rowWork(row)
			}
		}()
	}
	wg.Wait()
}
