package rowbuf

import (
	"math"
	"testing"
)

func TestAddOverflowSafeArenaOffsetArithmetic(t *testing.T) {
	// A STRDEF offset (at most 255) plus a row count derived from a 7-bit
	// length never legitimately overflows; this only guards against a
	// corrupt descriptor claiming an absurd length.
	if sum, ok := AddOverflowSafe(16, 64); !ok || sum != 80 {
		t.Fatalf("AddOverflowSafe(16,64)=%d,%v want 80,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestSliceCarvesArenaRowsLikeDecoder(t *testing.T) {
	// Mirrors decoder.Decode's use of Slice: header rows 0-15 followed by a
	// two-row string starting at the first legal arena offset.
	rows := make([]uint16, 18)
	rows[16], rows[17] = 0x0041, 0x0042
	if got, ok := Slice(rows, 16, 2); !ok || len(got) != 2 || got[0] != 0x0041 || got[1] != 0x0042 {
		t.Fatalf("Slice returned unexpected arena rows: %v, %v", got, ok)
	}
	if _, ok := Slice(rows, 16, 3); ok {
		t.Fatalf("Slice should fail when a descriptor claims more rows than were supplied")
	}
	if _, ok := Slice(rows, -1, 1); ok {
		t.Fatalf("Slice should reject a negative offset")
	}
	if _, ok := Slice(rows, 16, -1); ok {
		t.Fatalf("Slice should reject a negative length")
	}
}

func TestToBytesFromBytesRoundTrip(t *testing.T) {
	rows := []uint16{0x0041, 0xD83D, 0xDE00, 0x0000}
	b := ToBytes(rows)
	want := []byte{0x41, 0x00, 0x3D, 0xD8, 0x00, 0xDE, 0x00, 0x00}
	if len(b) != len(want) {
		t.Fatalf("ToBytes length = %d, want %d", len(b), len(want))
	}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("ToBytes[%d] = %#x, want %#x", i, b[i], want[i])
		}
	}
	back := FromBytes(b)
	if len(back) != len(rows) {
		t.Fatalf("FromBytes length = %d, want %d", len(back), len(rows))
	}
	for i := range rows {
		if back[i] != rows[i] {
			t.Fatalf("FromBytes[%d] = %#x, want %#x", i, back[i], rows[i])
		}
	}
}

func TestFromBytesOddLengthPadsZero(t *testing.T) {
	rows := FromBytes([]byte{0x41})
	if len(rows) != 1 || rows[0] != 0x0041 {
		t.Fatalf("FromBytes odd length = %#v, want [0x0041]", rows)
	}
}

func TestCeilDiv2(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3}
	for n, want := range cases {
		if got := CeilDiv2(n); got != want {
			t.Fatalf("CeilDiv2(%d) = %d, want %d", n, got, want)
		}
	}
}
