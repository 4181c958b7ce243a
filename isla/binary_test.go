package isla

import (
	"bytes"
	"errors"
	"testing"
)

func binHeader() []byte {
	return []byte("ISLAb\x00\x00\x01")
}

// ============================================================
// Decoding
// ============================================================

func TestDecodeBinary_BadHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("ISLA")},
		{"wrong magic", []byte("ISLAc\x00\x00\x01")},
		{"wrong version", []byte("ISLAb\x00\x00\x02")},
		{"text magic", []byte("ISLA1\x00\x00\x01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBinary(tt.data)
			var bad *BadHeaderError
			if !errors.As(err, &bad) {
				t.Fatalf("expected BadHeaderError, got %v", err)
			}
		})
	}
}

func TestDecodeBinary_LeavesAndEmpties(t *testing.T) {
	// A list of four leaves; element 2 is the empty leaf.
	data := append(binHeader(),
		0x04, 0x00, 0x00, 0x10, // list, count 4
		0x02, 0x00, 0x00, 0x00, ';', ')',
		0x02, 0x00, 0x00, 0x00, ':', '3',
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, ':',
	)
	v, err := DecodeBinary(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := BinLeaves([]byte(";)"), []byte(":3"), nil, []byte(":"))
	if !v.Equal(want) {
		t.Errorf("decoded %s, want %s", v, want)
	}
	e, err := v.Index(2)
	if err != nil {
		t.Fatalf("index 2: %v", err)
	}
	if b := e.AsLeafOrNull(); len(b) != 0 {
		t.Errorf("element 2 = % X, want empty leaf", b)
	}
}

func TestDecodeBinary_Map(t *testing.T) {
	data := append(binHeader(),
		0x01, 0x00, 0x00, 0x20, // map, 1 entry
		0x03, 0x00, 0x00, 0x00, 'k', 'e', 'y', // key length has no type tag
		0x02, 0x00, 0x00, 0x00, 'h', 'i',
	)
	v, err := DecodeBinary(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := v.GetLeafKey([]byte("key"), nil); !bytes.Equal(got, []byte("hi")) {
		t.Errorf("key = % X, want %q", got, "hi")
	}
}

func TestDecodeBinary_DuplicateKeysLastWins(t *testing.T) {
	data := append(binHeader(),
		0x02, 0x00, 0x00, 0x20, // map, 2 entries
		0x01, 0x00, 0x00, 0x00, 'k',
		0x01, 0x00, 0x00, 0x00, 'a',
		0x01, 0x00, 0x00, 0x00, 'k',
		0x01, 0x00, 0x00, 0x00, 'b',
	)
	v, err := DecodeBinary(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	m := v.AsMapOrNull()
	if len(m) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m))
	}
	if got := v.GetLeafKey([]byte("k"), nil); !bytes.Equal(got, []byte("b")) {
		t.Errorf("k = % X, want %q", got, "b")
	}
}

func TestDecodeBinary_InvalidType(t *testing.T) {
	data := append(binHeader(), 0x00, 0x00, 0x00, 0x30) // tag 3
	_, err := DecodeBinary(data)
	var invalid *InvalidTypeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTypeError, got %v", err)
	}
	if invalid.Tag != 3 {
		t.Errorf("tag = %d, want 3", invalid.Tag)
	}
}

func TestDecodeBinary_OutOfBounds(t *testing.T) {
	// Leaf claims 4 payload bytes, only 2 present.
	data := append(binHeader(), 0x04, 0x00, 0x00, 0x00, 'a', 'b')
	_, err := DecodeBinary(data)
	var oob *DecodeOutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected DecodeOutOfBoundsError, got %v", err)
	}
	if oob.Needed != 4 || oob.Remaining != 2 {
		t.Errorf("needed %d remaining %d, want 4 and 2", oob.Needed, oob.Remaining)
	}
}

func TestDecodeBinary_TruncatedPrefixes(t *testing.T) {
	v := NewBinMap(
		BinEntry{Key: []byte("grid"), Value: NewBinList(
			BinLeaves([]byte{1}, []byte{2}),
			NewBinLeaf([]byte("tail")),
		)},
	)
	data, err := EncodeBinary(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	for i := 0; i < len(data); i++ {
		_, err := DecodeBinary(data[:i])
		if err == nil {
			t.Fatalf("prefix of %d bytes decoded without error", i)
		}
		var bad *BadHeaderError
		var oob *DecodeOutOfBoundsError
		if !errors.As(err, &bad) && !errors.As(err, &oob) {
			t.Errorf("prefix %d: unexpected error %v", i, err)
		}
	}
}

func TestDecodeBinary_TrailingBytesIgnored(t *testing.T) {
	data, err := EncodeBinary(NewBinLeaf([]byte("x")))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	v, err := DecodeBinary(append(data, 0xDE, 0xAD))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := v.AsLeafOrNull(); !bytes.Equal(got, []byte("x")) {
		t.Errorf("decoded % X, want %q", got, "x")
	}
}

// ============================================================
// Encoding
// ============================================================

func TestEncodeBinary_WireBytes(t *testing.T) {
	data, err := EncodeBinary(NewBinLeaf([]byte("hi")))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := append(binHeader(), 0x02, 0x00, 0x00, 0x00, 'h', 'i')
	if !bytes.Equal(data, want) {
		t.Errorf("encoded % X, want % X", data, want)
	}
}

func TestEncodeBinary_MapWire(t *testing.T) {
	v := NewBinMap(BinEntry{Key: []byte("k"), Value: NewBinLeaf([]byte("v"))})
	data, err := EncodeBinary(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := append(binHeader(),
		0x01, 0x00, 0x00, 0x20,
		0x01, 0x00, 0x00, 0x00, 'k',
		0x01, 0x00, 0x00, 0x00, 'v',
	)
	if !bytes.Equal(data, want) {
		t.Errorf("encoded % X, want % X", data, want)
	}
}

func TestEncodeBinary_NoneRejected(t *testing.T) {
	_, err := EncodeBinary(BinValue{kind: KindNone})
	var ne *NotEncodableError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotEncodableError, got %v", err)
	}
	if ne.Reason != "none at top" {
		t.Errorf("reason = %q", ne.Reason)
	}
}

// ============================================================
// Round Trips
// ============================================================

func TestBinaryRoundTrip(t *testing.T) {
	tests := map[string]BinValue{
		"leaf at top":  NewBinLeaf([]byte("solo")),
		"empty leaf":   NewBinLeaf(nil),
		"empty list":   NewBinList(),
		"empty map":    NewBinMap(),
		"binary bytes": NewBinLeaf([]byte{0x00, 0xFF, 0x10, 0x0A}),
		"nested": NewBinMap(
			BinEntry{Key: []byte("rows"), Value: NewBinList(
				BinLeaves([]byte{1}, []byte{2}),
				NewBinList(NewBinMap(BinEntry{Key: nil, Value: NewBinLeaf(nil)})),
			)},
			BinEntry{Key: []byte{0x00, 0x01}, Value: NewBinLeaf([]byte("binary key"))},
		),
	}

	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := EncodeBinary(v)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			decoded, err := DecodeBinary(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if !decoded.Equal(v) {
				t.Errorf("round trip mismatch:\ngot:  %s\nwant: %s", decoded, v)
			}
		})
	}
}

func TestBinaryRoundTrip_NestedGrid(t *testing.T) {
	v := NewBinMap(BinEntry{Key: []byte("grid"), Value: NewBinList(
		BinLeaves([]byte{1}, []byte{2}, []byte{3}),
		BinLeaves([]byte{4}, []byte{5}, []byte{6}),
	)})
	data, err := EncodeBinary(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeBinary(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	grid := decoded.GetKey([]byte("grid"), BinValue{})
	row, err := grid.Index(1)
	if err != nil {
		t.Fatalf("grid[1]: %v", err)
	}
	cell, err := row.Index(2)
	if err != nil {
		t.Fatalf("grid[1][2]: %v", err)
	}
	got, err := cell.AsLeaf()
	if err != nil {
		t.Fatalf("grid[1][2] leaf: %v", err)
	}
	if !bytes.Equal(got, []byte{6}) {
		t.Errorf("grid[1][2] = % X, want 06", got)
	}
}

func TestBinaryEncodeIdempotent(t *testing.T) {
	v := NewBinMap(
		BinEntry{Key: []byte("a"), Value: BinLeaves([]byte("x"), nil)},
		BinEntry{Key: []byte("b"), Value: NewBinLeaf([]byte{7})},
	)
	first, err := EncodeBinary(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeBinary(first)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	second, err := EncodeBinary(decoded)
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("encode not idempotent:\nfirst:  % X\nsecond: % X", first, second)
	}
}
