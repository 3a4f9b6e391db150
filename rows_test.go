package rasterpng

import (
	"bytes"
	"testing"
)

func TestRowStride(t *testing.T) {
	cases := []struct {
		width, bitDepth, channels, want int
	}{
		{8, 1, 1, 1},
		{9, 1, 1, 2},
		{4, 2, 1, 1},
		{4, 4, 1, 2},
		{2, 8, 3, 6},
		{2, 16, 4, 16},
	}
	for _, c := range cases {
		if got := rowStride(c.width, c.bitDepth, c.channels); got != c.want {
			t.Errorf("rowStride(%d,%d,%d) = %d, want %d", c.width, c.bitDepth, c.channels, got, c.want)
		}
	}
}

type fakeSource struct {
	vals [][]uint16 // indexed [x][c]
}

func (f fakeSource) sample(y, x, c int) uint16 {
	return f.vals[x][c]
}

func TestPackRowsBitDepth1(t *testing.T) {
	// 5 single-bit samples: 1 0 1 1 0 -> packed MSB-first into one byte,
	// zero-padded: 1011 0000 = 0xB0
	src := fakeSource{vals: [][]uint16{{1}, {0}, {1}, {1}, {0}}}
	out := packRows(src, 1, 5, 1, 1)
	if len(out) != 2 {
		t.Fatalf("got %d bytes, want 2 (filter byte + 1 data byte)", len(out))
	}
	if out[0] != 0 {
		t.Errorf("filter byte = %d, want 0", out[0])
	}
	if out[1] != 0xB0 {
		t.Errorf("data byte = %#02x, want 0xb0", out[1])
	}
}

func TestPackRowsBitDepth8(t *testing.T) {
	src := fakeSource{vals: [][]uint16{{10, 20}, {30, 40}}}
	out := packRows(src, 1, 2, 8, 2)
	want := []byte{0, 10, 20, 30, 40}
	if !bytes.Equal(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestPackRowsBitDepth16(t *testing.T) {
	src := fakeSource{vals: [][]uint16{{0x0102}}}
	out := packRows(src, 1, 1, 16, 1)
	want := []byte{0, 0x01, 0x02}
	if !bytes.Equal(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}
