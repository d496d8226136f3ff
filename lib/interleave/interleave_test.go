package interleave

import (
	"bytes"
	"sort"
	"testing"
)

func TestTargetLength(t *testing.T) {
	cases := []struct {
		name   string
		length int
		want   int
	}{
		{"undersized rounds up to one chunk", 512 * 1024, chunkSize},
		{"exact chunk stays put", chunkSize, chunkSize},
		{"12 Mbit rounds up to 16 Mbit", 12 * mbit, 16 * mbit},
		{"24 Mbit exact multiple stays put", 24 * mbit, 24 * mbit},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TargetLength(c.length); got != c.want {
				t.Errorf("TargetLength(%d) = %d, want %d", c.length, got, c.want)
			}
		})
	}
}

func TestInterleave_LengthInvariant(t *testing.T) {
	for _, length := range []int{256 * 1024, chunkSize, 12 * mbit, 20 * mbit, 32 * mbit} {
		data := make([]byte, length)
		for i := range data {
			data[i] = byte(i)
		}
		out := Interleave(data)
		want := TargetLength(length)
		if len(out) != want {
			t.Errorf("length %d: Interleave produced %d bytes, want %d", length, len(out), want)
		}
	}
}

func TestInterleave_ByteConservation(t *testing.T) {
	data := make([]byte, chunkSize)
	for i := range data {
		data[i] = byte(i % 251)
	}
	out := Interleave(data)

	want := append([]byte(nil), data...)
	got := append([]byte(nil), out...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	if !bytes.Equal(want, got) {
		t.Error("Interleave changed the byte multiset")
	}
}

func TestInterleave_BlockPairMapping(t *testing.T) {
	data := make([]byte, chunkSize)
	for i := range data {
		data[i] = byte(i)
	}
	out := Interleave(data)
	half := len(out) / 2

	for i := 0; i < len(data)/pairSize; i++ {
		lower := data[i*pairSize : i*pairSize+blockSize]
		upper := data[i*pairSize+blockSize : i*pairSize+pairSize]

		gotLower := out[half+i*blockSize : half+i*blockSize+blockSize]
		gotUpper := out[i*blockSize : i*blockSize+blockSize]

		if !bytes.Equal(gotLower, lower) {
			t.Fatalf("pair %d: output[H+i*32KB] != input lower half", i)
		}
		if !bytes.Equal(gotUpper, upper) {
			t.Fatalf("pair %d: output[i*32KB] != input upper half", i)
		}
	}
}

func TestInterleave_MirrorExtendsUndersizedRom(t *testing.T) {
	// 12 Mbit input: bytes 8-12 Mbit should be duplicated into bytes 12-16 Mbit
	// before the block swap is applied.
	data := make([]byte, 12*mbit)
	for i := range data {
		data[i] = byte(i % 256)
	}
	extended := mirrorExtend(data, TargetLength(len(data)))
	if len(extended) != 16*mbit {
		t.Fatalf("mirrorExtend length = %d, want %d", len(extended), 16*mbit)
	}
	if !bytes.Equal(extended[12*mbit:16*mbit], data[8*mbit:12*mbit]) {
		t.Error("mirror-extended tail does not duplicate bytes 8-12 Mbit")
	}
}
