package gf

import (
	"testing"

	"github.com/xtaci/vfec/internal/selftest"
)

func TestFieldLaws(t *testing.T) {
	for _, m := range []int{4, 8, 16} {
		m := m
		t.Run(modeName(m), func(t *testing.T) {
			tab, err := Init(m, KernelScalar)
			if err != nil {
				t.Fatalf("Init(%d): %v", m, err)
			}

			// spot-check the whole field for small m, sample for m=16.
			step := 1
			if tab.Size > 4096 {
				step = tab.Size / 4096
			}
			for i := 0; i <= tab.Size; i += step {
				x := Element(i)
				if tab.Mul(x, 0) != 0 || tab.Mul(0, x) != 0 {
					t.Fatalf("mul(%d,0) or mul(0,%d) != 0", i, i)
				}
				if x != 0 {
					if tab.Mul(x, tab.Inverse[x]) != 1 {
						t.Fatalf("mul(%d, inverse(%d)) != 1", i, i)
					}
					if tab.Exp[tab.Log[x]] != x {
						t.Fatalf("exp(log(%d)) != %d", i, i)
					}
				}
			}

			// commutativity + reference-multiplier cross-check on a denser
			// but still bounded sample.
			refStep := step
			if tab.Size > 512 {
				refStep = tab.Size / 512
			}
			for i := 0; i <= tab.Size; i += refStep {
				for j := 0; j <= tab.Size; j += refStep {
					got := tab.Mul(Element(i), Element(j))
					if got != tab.Mul(Element(j), Element(i)) {
						t.Fatalf("mul(%d,%d) != mul(%d,%d)", i, j, j, i)
					}
					want := uint16(selftest.RefMul(m, uint32(i), uint32(j)))
					if got != want {
						t.Fatalf("mul(%d,%d) = %d, want %d (ref)", i, j, got, want)
					}
				}
			}
		})
	}
}

func TestInitRejectsOutOfRangeFieldBits(t *testing.T) {
	if _, err := Init(1, KernelScalar); err == nil {
		t.Fatal("expected error for m=1")
	}
	if _, err := Init(17, KernelScalar); err == nil {
		t.Fatal("expected error for m=17")
	}
}

func TestInitCachesTables(t *testing.T) {
	a, err := Init(8, KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Init(8, KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("Init(8,...) should return the cached singleton on the second call")
	}
}

func TestModExp(t *testing.T) {
	tab, err := Init(8, KernelScalar)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []uint32{0, 1, 254, 255, 256, 257, 1000, 65535} {
		want := x % uint32(tab.Size)
		if got := uint32(tab.ModExp(x)); got != want {
			t.Fatalf("ModExp(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestNibbleKernelMatchesScalar(t *testing.T) {
	tab, err := Init(16, KernelSIMD)
	if err != nil {
		t.Fatal(err)
	}
	step := tab.Size / 256
	for c := 0; c <= tab.Size; c += step {
		for x := 0; x <= tab.Size; x += step + 1 {
			want := tab.Mul(Element(c), Element(x))
			if got := tab.MulNibble(Element(c), Element(x)); got != want {
				t.Fatalf("MulNibble(%d,%d) = %d, want %d", c, x, got, want)
			}
		}
	}
}

func TestAddMulSIMD(t *testing.T) {
	tab, err := Init(16, KernelSIMD)
	if err != nil {
		t.Fatal(err)
	}
	// 19 elements: two full 8-element batches plus a 3-element tail.
	src := make([]Element, 19)
	dst := make([]Element, 19)
	before := make([]Element, 19)
	for i := range src {
		src[i] = Element(i*2654 + 1)
		dst[i] = Element(i * 40503)
		before[i] = dst[i]
	}
	const c = 0x1234

	tab.AddMulSIMD(dst, src, c)

	for i := range dst {
		want := before[i] ^ tab.Mul(c, src[i])
		if dst[i] != want {
			t.Fatalf("dst[%d] = %#x, want %#x", i, dst[i], want)
		}
	}
}

func modeName(m int) string {
	switch m {
	case 4:
		return "m4"
	case 8:
		return "m8"
	default:
		return "m16"
	}
}
