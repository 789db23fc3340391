package buf

import "testing"

func TestModeAlternate(t *testing.T) {
	if ModeA.Alternate() != ModeB || ModeB.Alternate() != ModeA {
		t.Fatal("Alternate must toggle between ModeA and ModeB")
	}
}

// TestModeSwapParity checks the invariant the tree strategies rely on to
// select the final buffer: after d swaps the current mode is A iff d is even.
func TestModeSwapParity(t *testing.T) {
	m := ModeA
	for d := 1; d <= 9; d++ {
		m.Swap()
		want := ModeA
		if d%2 == 1 {
			want = ModeB
		}
		if m != want {
			t.Fatalf("after %d swaps mode = %v, want %v", d, m, want)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeA.String() != "ModeA" || ModeB.String() != "ModeB" {
		t.Errorf("unexpected strings: %v, %v", ModeA, ModeB)
	}
}

func TestDoubleBuffer(t *testing.T) {
	a := []int64{1}
	b := []int64{2}
	db := NewDoubleBuffer(a, b)
	if db.Mode() != ModeA {
		t.Fatalf("initial mode = %v, want ModeA", db.Mode())
	}
	if &db.Current()[0] != &a[0] || &db.Next()[0] != &b[0] {
		t.Fatal("ModeA: Current must be a and Next must be b")
	}
	db.Swap()
	if &db.Current()[0] != &b[0] || &db.Next()[0] != &a[0] {
		t.Fatal("ModeB: Current must be b and Next must be a")
	}
	db.Swap()
	if &db.Current()[0] != &a[0] {
		t.Fatal("two swaps must return to buffer a")
	}
}
