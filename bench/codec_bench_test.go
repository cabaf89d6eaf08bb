// Package bench holds throughput benchmarks over gf, linalg and codec.
package bench

import (
	"math/rand"
	"testing"

	"github.com/xtaci/vfec/codec"
	"github.com/xtaci/vfec/gf"
	"github.com/xtaci/vfec/linalg"
)

func BenchmarkEncodeM8(b *testing.B) {
	const k, n, sz = 10, 16, 1400
	p, err := codec.New(k, n, codec.WithFieldBits(8))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	src := make([][]byte, k)
	for i := range src {
		src[i] = make([]byte, sz)
		rng.Read(src[i])
	}
	out := make([]byte, sz)

	b.ReportAllocs()
	b.SetBytes(sz)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.Encode(src, k+i%(n-k), out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeM16(b *testing.B) {
	const k, n, sz = 10, 16, 1400
	p, err := codec.New(k, n, codec.WithFieldBits(16))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	src := make([][]byte, k)
	for i := range src {
		src[i] = make([]byte, sz)
		rng.Read(src[i])
	}
	out := make([]byte, sz)

	b.ReportAllocs()
	b.SetBytes(sz)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.Encode(src, k+i%(n-k), out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeRecoverAll(b *testing.B) {
	const k, n, sz = 10, 20, 1400
	p, err := codec.New(k, n, codec.WithFieldBits(8))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(3))
	src := make([][]byte, k)
	for i := range src {
		src[i] = make([]byte, sz)
		rng.Read(src[i])
	}
	packets := make([][]byte, n)
	for i := 0; i < n; i++ {
		packets[i] = make([]byte, sz)
		if err := p.Encode(src, i, packets[i]); err != nil {
			b.Fatal(err)
		}
	}
	index := make([]int, k)
	for i := range index {
		index[i] = n - k + i // force every row to be a parity recovery
	}

	b.ReportAllocs()
	b.SetBytes(sz)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		recv := make([][]byte, k)
		idx := append([]int(nil), index...)
		for j, pos := range idx {
			recv[j] = append([]byte(nil), packets[pos]...)
		}
		if err := p.Decode(recv, idx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatMul(b *testing.B) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		b.Fatal(err)
	}
	const n, k, m = 16, 10, 1400
	rng := rand.New(rand.NewSource(4))
	a := make([]gf.Element, n*k)
	bmat := make([]gf.Element, k*m)
	for i := range a {
		a[i] = gf.Element(rng.Intn(tab.Size + 1))
	}
	for i := range bmat {
		bmat[i] = gf.Element(rng.Intn(tab.Size + 1))
	}
	c := make([]gf.Element, n*m)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		linalg.MatMul(tab, a, bmat, c, n, k, m)
	}
}
