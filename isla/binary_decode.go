package isla

import "encoding/binary"

// Binary format framing. Every document opens with the 5-byte magic and
// a 3-byte big-endian version; every value carries a 4-byte little-endian
// header word whose top nibble is the type tag and whose low 28 bits are
// a byte length (leaf) or element count (list, map).
const (
	binMagic   = "ISLAb"
	binVersion = 0x000001

	binHeaderSize = 8

	// maxBinLen is the largest length or count the 28-bit header field
	// can carry.
	maxBinLen = 1<<28 - 1
)

const (
	binTagLeaf = 0
	binTagList = 1
	binTagMap  = 2
)

// DecodeBinary parses an ISLA binary document into a BinValue. Trailing
// bytes after the top-level value are ignored.
func DecodeBinary(data []byte) (BinValue, error) {
	if len(data) < binHeaderSize {
		return BinValue{}, &BadHeaderError{Got: string(data)}
	}
	if string(data[:len(binMagic)]) != binMagic {
		return BinValue{}, &BadHeaderError{Got: string(data[:binHeaderSize])}
	}
	ver := uint32(data[5])<<16 | uint32(data[6])<<8 | uint32(data[7])
	if ver != binVersion {
		return BinValue{}, &BadHeaderError{Got: string(data[:binHeaderSize])}
	}
	d := &binDecoder{data: data, off: binHeaderSize}
	return d.decodeValue()
}

// binDecoder is a bounds-checked cursor over the input slice. Every read
// verifies the remaining byte count first, so a truncated document fails
// with DecodeOutOfBounds instead of yielding a partial value.
type binDecoder struct {
	data []byte
	off  int
}

func (d *binDecoder) remaining() int {
	return len(d.data) - d.off
}

func (d *binDecoder) read(what string, n int) ([]byte, error) {
	if n < 0 || n > d.remaining() {
		return nil, &DecodeOutOfBoundsError{What: what, Needed: n, Remaining: d.remaining()}
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *binDecoder) readWord(what string) (uint32, error) {
	b, err := d.read(what, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *binDecoder) decodeValue() (BinValue, error) {
	word, err := d.readWord("value header")
	if err != nil {
		return BinValue{}, err
	}
	tag := byte(word >> 28)
	n := int(word & maxBinLen)

	switch tag {
	case binTagLeaf:
		payload, err := d.read("leaf payload", n)
		if err != nil {
			return BinValue{}, err
		}
		return NewBinLeaf(append([]byte(nil), payload...)), nil

	case binTagList:
		// Each element needs at least a 4-byte header, so cap the
		// initial allocation by what the input could possibly hold.
		capHint := n
		if most := d.remaining() / 4; capHint > most {
			capHint = most
		}
		items := make([]BinValue, 0, capHint)
		for i := 0; i < n; i++ {
			e, err := d.decodeValue()
			if err != nil {
				return BinValue{}, err
			}
			items = append(items, e)
		}
		return BinValue{kind: KindList, list: items}, nil

	case binTagMap:
		// Duplicate keys: last write wins.
		v := BinValue{kind: KindMap, entries: []BinEntry{}}
		for i := 0; i < n; i++ {
			klen, err := d.readWord("map key length")
			if err != nil {
				return BinValue{}, err
			}
			kb, err := d.read("map key", int(klen))
			if err != nil {
				return BinValue{}, err
			}
			e, err := d.decodeValue()
			if err != nil {
				return BinValue{}, err
			}
			v.SetKey(append([]byte(nil), kb...), e)
		}
		return v, nil

	default:
		return BinValue{}, &InvalidTypeError{Tag: tag}
	}
}
