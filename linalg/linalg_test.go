package linalg

import (
	"math/rand"
	"testing"

	"github.com/xtaci/vfec/gf"
	"github.com/xtaci/vfec/internal/selftest"
)

func TestMatMulMatchesReference(t *testing.T) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	n, k, m := 5, 4, 6
	a := randElements(rng, tab, n*k)
	b := randElements(rng, tab, k*m)
	c := make([]gf.Element, n*m)

	MatMul(tab, a, b, c, n, k, m)

	if !selftest.CheckMatMul(tab.M, a, b, c, n, k, m) {
		t.Fatal("MatMul result does not match reference implementation")
	}
}

func TestMatMulParallelMatchesSerial(t *testing.T) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n, k, m := 64, 16, 16 // n*k*m well above parallelRowThreshold
	a := randElements(rng, tab, n*k)
	b := randElements(rng, tab, k*m)
	c := make([]gf.Element, n*m)

	MatMul(tab, a, b, c, n, k, m)
	if !selftest.CheckMatMul(tab.M, a, b, c, n, k, m) {
		t.Fatal("parallel MatMul result does not match reference implementation")
	}
}

func TestAddMulLaw(t *testing.T) {
	cases := []struct {
		m      int
		kernel gf.Kernel
	}{
		{8, gf.KernelScalar},
		{16, gf.KernelScalar},
		{16, gf.KernelSIMD},
	}
	for _, tc := range cases {
		tab, err := gf.Init(tc.m, tc.kernel)
		if err != nil {
			t.Fatal(err)
		}
		rng := rand.New(rand.NewSource(int64(tc.m)))
		const sz = 37
		dst := randElements(rng, tab, sz)
		before := append([]gf.Element(nil), dst...)
		src := randElements(rng, tab, sz)
		c := gf.Element(rng.Intn(tab.Size) + 1)

		AddMul1(tab, dst, src, c)

		if !selftest.CheckAddMul(tc.m, before, src, dst, c) {
			t.Fatalf("AddMul1 (m=%d, %s) violates dst[i] == before[i] ^ ref_mul(c, src[i])", tc.m, tc.kernel)
		}
	}
}

func TestAddMulNoopOnZero(t *testing.T) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	dst := []gf.Element{1, 2, 3}
	before := append([]gf.Element(nil), dst...)
	AddMul(tab, dst, []gf.Element{9, 9, 9}, 0)
	for i := range dst {
		if dst[i] != before[i] {
			t.Fatalf("AddMul with c=0 must be a no-op, got %v want %v", dst, before)
		}
	}
}

func TestInvertMatLaw(t *testing.T) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	const k = 5

	// Build an invertible matrix via the Vandermonde construction, which
	// is known non-singular for distinct parameters.
	src := make([]gf.Element, k*k)
	src[0] = 1
	for row := 1; row < k; row++ {
		for col := 0; col < k; col++ {
			src[row*k+col] = tab.Exp[tab.ModExp(uint32(row-1)*uint32(col))]
		}
	}
	orig := append([]gf.Element(nil), src...)

	if err := InvertMat(tab, src, k); err != nil {
		t.Fatalf("InvertMat: %v", err)
	}

	got := make([]gf.Element, k*k)
	MatMul(tab, orig, src, got, k, k, k)
	if !isIdentity(got, k) {
		t.Fatalf("M * invert(M) != I: %v", got)
	}
}

func TestInvertMatSingular(t *testing.T) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	const k = 3
	src := make([]gf.Element, k*k) // all zero: singular
	if err := InvertMat(tab, src, k); err == nil {
		t.Fatal("expected ErrSingular for the zero matrix")
	}
}

func TestInvertVandermondeLaw(t *testing.T) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	const k = 6
	v := make([]gf.Element, k*k)
	// V[i][j] = p_i^j with distinct non-zero p_i = i+1.
	for i := 0; i < k; i++ {
		pi := gf.Element(i + 1)
		v[i*k] = 1
		acc := gf.Element(1)
		for j := 1; j < k; j++ {
			acc = tab.Mul(acc, pi)
			v[i*k+j] = acc
		}
	}
	orig := append([]gf.Element(nil), v...)

	InvertVandermonde(tab, v, k)

	got := make([]gf.Element, k*k)
	MatMul(tab, v, orig, got, k, k, k)
	if !isIdentity(got, k) {
		t.Fatalf("invert_vdm(V) * V != I: %v", got)
	}
}

func TestInvertVandermondeDegenerate(t *testing.T) {
	tab, err := gf.Init(8, gf.KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	v := []gf.Element{7, 9}
	before := append([]gf.Element(nil), v...)
	InvertVandermonde(tab, v, 1)
	for i := range v {
		if v[i] != before[i] {
			t.Fatalf("k=1 InvertVandermonde must leave src untouched, got %v want %v", v, before)
		}
	}
}

func randElements(rng *rand.Rand, tab *gf.Tables, n int) []gf.Element {
	out := make([]gf.Element, n)
	for i := range out {
		out[i] = gf.Element(rng.Intn(tab.Size + 1))
	}
	return out
}

func isIdentity(m []gf.Element, k int) bool {
	for row := 0; row < k; row++ {
		for col := 0; col < k; col++ {
			want := gf.Element(0)
			if row == col {
				want = 1
			}
			if m[row*k+col] != want {
				return false
			}
		}
	}
	return true
}
